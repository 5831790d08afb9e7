package domain

// CartLine pairs a product with the quantity the shopper intends to buy.
// Quantity is always >= 1; a product appears in at most one line.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the live price of the line, computed from the current
// product price rather than any cached value.
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}
