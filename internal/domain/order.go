package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "EN_ATTENTE"
	OrderStatusConfirmed  OrderStatus = "CONFIRMEE"
	OrderStatusPreparing  OrderStatus = "EN_PREPARATION"
	OrderStatusReady      OrderStatus = "PRETE"
	OrderStatusShipped    OrderStatus = "EXPEDIEE"
	OrderStatusDelivering OrderStatus = "EN_LIVRAISON"
	OrderStatusDelivered  OrderStatus = "LIVREE"
	OrderStatusCancelled  OrderStatus = "ANNULEE"
)

// transitions holds, per status, the statuses an order may move to next.
// LIVREE and ANNULEE are terminal and have no outgoing edges.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusReady, OrderStatusShipped, OrderStatusDelivering},
	OrderStatusReady:      {OrderStatusShipped, OrderStatusDelivering},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivering: {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsCancellable reports whether an order in this status may still be
// cancelled by the shopper. Once preparation starts the order is committed.
func (s OrderStatus) IsCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the status machine permits moving from
// one status to another. A same-status transition is always permitted so
// that replayed updates stay idempotent.
func CanTransitionTo(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderLine is a frozen record of one purchased product. Name and price are
// captured at order time and never track later catalog changes.
type OrderLine struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

func (l OrderLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Lines           []OrderLine `json:"items"`
	TotalAmount     int64       `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	DeliveryAddress string      `json:"deliveryAddress"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// User is the authenticated shopper profile.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
