// Package checkout turns the current cart into a submitted order. The
// sequence is atomic from the shopper's side: the order is recorded locally
// and the cart cleared only after the remote service accepts the submission;
// any failure leaves both stores untouched.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/api"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/store"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to checkout")
	ErrMissingPhone   = errors.New("a contact phone is required")
	ErrMissingAddress = errors.New("a delivery address is required")
)

const (
	defaultCity     = "Ouagadougou"
	defaultUserID   = "1"
	fallbackNameOne = "Client"
	fallbackNameTwo = "Mobile"
)

// OrderSubmitter is the remote order-creation service as the orchestration
// sees it. api.Client satisfies it; LocalSubmitter serves offline runs.
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, payload api.CheckoutPayload) (api.CheckoutConfirmation, error)
}

// CustomerInfo is what the checkout screen collects.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Notes   string
}

type Service struct {
	cart        *store.CartStore
	orders      *store.OrdersStore
	users       *store.UserStore
	submitter   OrderSubmitter
	deliveryFee int64
	newID       func() string
	now         func() time.Time
	logger      *zap.Logger
}

// Option tweaks Service construction.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides the fallback order id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// WithDeliveryFee sets a flat delivery fee added to the checkout total.
func WithDeliveryFee(fee int64) Option {
	return func(s *Service) { s.deliveryFee = fee }
}

func NewService(cart *store.CartStore, orders *store.OrdersStore, users *store.UserStore, submitter OrderSubmitter, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		cart:      cart,
		orders:    orders,
		users:     users,
		submitter: submitter,
		newID:     func() string { return "ORDER-" + uuid.NewString() },
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder freezes the cart into order lines, submits them, and on success
// records the order and clears the cart. On any error neither store changes.
func (s *Service) PlaceOrder(ctx context.Context, customer CustomerInfo) (domain.Order, error) {
	if strings.TrimSpace(customer.Phone) == "" {
		return domain.Order{}, ErrMissingPhone
	}
	if strings.TrimSpace(customer.Address) == "" {
		return domain.Order{}, ErrMissingAddress
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	// Freeze name, price and quantity now; later catalog changes must not
	// touch this order.
	orderLines := make([]domain.OrderLine, len(lines))
	items := make([]api.CheckoutItem, len(lines))
	var subtotal int64
	for i, line := range lines {
		orderLines[i] = domain.OrderLine{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
		}
		items[i] = api.CheckoutItem{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Image:    line.Product.Image,
			Quantity: line.Quantity,
		}
		subtotal += orderLines[i].Subtotal()
	}

	firstName, lastName := splitName(customer.Name)
	city := customer.City
	if city == "" {
		city = defaultCity
	}

	payload := api.CheckoutPayload{
		Customer: api.CheckoutCustomer{
			FirstName: firstName,
			LastName:  lastName,
			Email:     customer.Email,
			Phone:     customer.Phone,
			City:      city,
			Address:   customer.Address,
			Notes:     customer.Notes,
		},
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
		Total:       subtotal + s.deliveryFee,
	}

	confirmation, err := s.submitter.CreateOrder(ctx, payload)
	if err != nil {
		s.logger.Warn("order submission failed, cart preserved",
			zap.Int("lines", len(lines)),
			zap.Int64("total", payload.Total),
			zap.Error(err))
		return domain.Order{}, fmt.Errorf("order submission failed: %w", err)
	}

	orderID := confirmation.OrderNumber
	if orderID == "" {
		orderID = s.newID()
	}

	now := s.now()
	order := domain.Order{
		ID:              orderID,
		UserID:          s.userID(),
		Lines:           orderLines,
		TotalAmount:     subtotal,
		Status:          domain.OrderStatusPending,
		DeliveryAddress: customer.Address,
		Phone:           customer.Phone,
		Notes:           customer.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.orders.Add(order)
	s.cart.Clear()

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Lines)),
		zap.Int64("total", order.TotalAmount))
	return order, nil
}

func (s *Service) userID() string {
	if s.users != nil {
		if user, ok := s.users.User(); ok {
			return user.ID
		}
	}
	return defaultUserID
}

// splitName turns a free-form customer name into the first/last pair the
// checkout endpoint expects.
func splitName(name string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return fallbackNameOne, fallbackNameTwo
	}
	if len(parts) == 1 {
		return parts[0], fallbackNameTwo
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// LocalSubmitter fulfils checkouts without a remote backend: it accepts the
// payload and mints a local order number. Used when the app is configured
// to run offline.
type LocalSubmitter struct{}

func (LocalSubmitter) CreateOrder(_ context.Context, payload api.CheckoutPayload) (api.CheckoutConfirmation, error) {
	if len(payload.Items) == 0 {
		return api.CheckoutConfirmation{}, ErrEmptyCart
	}
	return api.CheckoutConfirmation{OrderNumber: "ORDER-" + uuid.NewString()}, nil
}
