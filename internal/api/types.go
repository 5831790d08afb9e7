package api

// Wire shapes of the backend. They differ slightly from the domain model
// (English statuses, image arrays, category counts), so everything is mapped
// before leaving this package.

type apiProduct struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	CategoryID     string            `json:"categoryId"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	Stock          int               `json:"stock"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	IsAvailable    bool              `json:"isAvailable"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// productsEnvelope is the paginated /products response. Some endpoints
// return a bare array instead; Products handles both.
type productsEnvelope struct {
	Products    []apiProduct `json:"products"`
	Total       int          `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"currentPage"`
}

type apiCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Count       struct {
		Products int `json:"products"`
	} `json:"_count"`
}

type apiOrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type apiOrder struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	Items           []apiOrderItem `json:"items"`
	TotalAmount     int64          `json:"totalAmount"`
	Status          string         `json:"status"`
	DeliveryAddress string         `json:"deliveryAddress"`
	Phone           string         `json:"phone"`
	Notes           string         `json:"notes"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

// CheckoutCustomer is the customer/delivery block of the checkout payload.
type CheckoutCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

type CheckoutItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// CheckoutPayload is the POST /checkout body the order-submission service
// accepts.
type CheckoutPayload struct {
	Customer    CheckoutCustomer `json:"customer"`
	Items       []CheckoutItem   `json:"items"`
	Subtotal    int64            `json:"subtotal"`
	DeliveryFee int64            `json:"deliveryFee"`
	Total       int64            `json:"total"`
}

// CheckoutConfirmation is the service's answer to a checkout submission.
type CheckoutConfirmation struct {
	OrderNumber string `json:"orderNumber"`
}
