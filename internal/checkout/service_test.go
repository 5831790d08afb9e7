package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/api"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/storage"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/store"
)

type mockSubmitter struct {
	m            sync.Mutex
	confirmation api.CheckoutConfirmation
	err          error
	payloads     []api.CheckoutPayload
}

func (m *mockSubmitter) CreateOrder(_ context.Context, payload api.CheckoutPayload) (api.CheckoutConfirmation, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.payloads = append(m.payloads, payload)
	if m.err != nil {
		return api.CheckoutConfirmation{}, m.err
	}
	return m.confirmation, nil
}

type fixture struct {
	cart      *store.CartStore
	orders    *store.OrdersStore
	users     *store.UserStore
	submitter *mockSubmitter
	service   *Service
}

func setup(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		cart:      store.NewCartStore(storage.NewMemoryKV(), nil),
		orders:    store.NewOrdersStore(storage.NewMemoryKV(), nil),
		users:     store.NewUserStore(storage.NewMemoryKV(), nil),
		submitter: &mockSubmitter{confirmation: api.CheckoutConfirmation{OrderNumber: "CMD-2024-042"}},
	}
	f.service = NewService(f.cart, f.orders, f.users, f.submitter, nil, opts...)
	return f
}

func productA() domain.Product {
	return domain.Product{ID: "PROD-A", Name: "Produit A", Price: 1000, Stock: 10, IsAvailable: true}
}

func productB() domain.Product {
	return domain.Product{ID: "PROD-B", Name: "Produit B", Price: 5000, Stock: 10, IsAvailable: true}
}

func validCustomer() CustomerInfo {
	return CustomerInfo{
		Name:    "Awa Ouedraogo",
		Phone:   "+226 70 00 00 00",
		Address: "Ouagadougou, Secteur 15",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	f := setup(t)
	f.cart.Add(productA(), 2)
	f.cart.Add(productB(), 1)

	order, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.NoError(t, err)

	assert.Equal(t, "CMD-2024-042", order.ID)
	assert.Equal(t, int64(7000), order.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, 2, order.Lines[0].Quantity)
	assert.Equal(t, int64(1000), order.Lines[0].Price)
	assert.Equal(t, 1, order.Lines[1].Quantity)
	assert.Equal(t, int64(5000), order.Lines[1].Price)

	// Order recorded, cart cleared: the atomic pair.
	assert.Equal(t, 0, f.cart.TotalItems())
	recorded, ok := f.orders.OrderByID("CMD-2024-042")
	require.True(t, ok)
	assert.Equal(t, order.TotalAmount, recorded.TotalAmount)
}

func TestPlaceOrder_SubmissionFailureLeavesStoresUntouched(t *testing.T) {
	f := setup(t)
	f.cart.Add(productA(), 2)
	f.cart.Add(productB(), 1)
	f.submitter.err = &api.APIError{StatusCode: 503, Message: "service unavailable"}

	_, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.Error(t, err)

	var apiErr *api.APIError
	assert.ErrorAs(t, err, &apiErr)

	assert.Equal(t, 3, f.cart.TotalItems(), "cart must keep its lines")
	assert.Len(t, f.cart.Lines(), 2)
	assert.Empty(t, f.orders.Orders(), "no order may be recorded")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := setup(t)

	_, err := f.service.PlaceOrder(context.Background(), validCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.submitter.payloads, "nothing must be submitted")
}

func TestPlaceOrder_RequiresPhoneAndAddress(t *testing.T) {
	f := setup(t)
	f.cart.Add(productA(), 1)

	customer := validCustomer()
	customer.Phone = "  "
	_, err := f.service.PlaceOrder(context.Background(), customer)
	assert.ErrorIs(t, err, ErrMissingPhone)

	customer = validCustomer()
	customer.Address = ""
	_, err = f.service.PlaceOrder(context.Background(), customer)
	assert.ErrorIs(t, err, ErrMissingAddress)

	assert.Equal(t, 1, f.cart.TotalItems())
}

func TestPlaceOrder_PayloadShape(t *testing.T) {
	f := setup(t, WithDeliveryFee(2500))
	f.cart.Add(productA(), 2)

	customer := validCustomer()
	customer.Email = "awa@example.com"
	customer.Notes = "Appeler avant livraison"

	_, err := f.service.PlaceOrder(context.Background(), customer)
	require.NoError(t, err)

	require.Len(t, f.submitter.payloads, 1)
	payload := f.submitter.payloads[0]
	assert.Equal(t, "Awa", payload.Customer.FirstName)
	assert.Equal(t, "Ouedraogo", payload.Customer.LastName)
	assert.Equal(t, "Ouagadougou", payload.Customer.City)
	assert.Equal(t, "Appeler avant livraison", payload.Customer.Notes)
	assert.Equal(t, int64(2000), payload.Subtotal)
	assert.Equal(t, int64(2500), payload.DeliveryFee)
	assert.Equal(t, int64(4500), payload.Total)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "PROD-A", payload.Items[0].ID)
}

func TestPlaceOrder_FreezesPricesAtSubmission(t *testing.T) {
	f := setup(t)
	f.cart.Add(productA(), 2)

	order, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.NoError(t, err)

	// A later catalog reprice must not affect the recorded order.
	assert.Equal(t, int64(2000), order.TotalAmount)
	recorded, _ := f.orders.OrderByID(order.ID)
	assert.Equal(t, int64(1000), recorded.Lines[0].Price)
}

func TestPlaceOrder_FallbackIDWhenServerReturnsNone(t *testing.T) {
	f := setup(t, WithIDGenerator(func() string { return "ORDER-LOCAL-1" }))
	f.submitter.confirmation = api.CheckoutConfirmation{}
	f.cart.Add(productA(), 1)

	order, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "ORDER-LOCAL-1", order.ID)
}

func TestPlaceOrder_UsesSignedInUserID(t *testing.T) {
	f := setup(t)
	f.users.SetUser(domain.User{ID: "42", Name: "Awa"}, "token")
	f.cart.Add(productA(), 1)

	order, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "42", order.UserID)
}

func TestPlaceOrder_TimestampsFromClock(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	f := setup(t, WithClock(func() time.Time { return at }))
	f.cart.Add(productA(), 1)

	order, err := f.service.PlaceOrder(context.Background(), validCustomer())
	require.NoError(t, err)
	assert.Equal(t, at, order.CreatedAt)
	assert.Equal(t, at, order.UpdatedAt)
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"Awa Ouedraogo", "Awa", "Ouedraogo"},
		{"Awa Marie Ouedraogo", "Awa", "Marie Ouedraogo"},
		{"Awa", "Awa", "Mobile"},
		{"", "Client", "Mobile"},
		{"   ", "Client", "Mobile"},
	}
	for _, tc := range cases {
		first, last := splitName(tc.in)
		assert.Equal(t, tc.first, first, "input %q", tc.in)
		assert.Equal(t, tc.last, last, "input %q", tc.in)
	}
}

func TestLocalSubmitter(t *testing.T) {
	var sub LocalSubmitter

	confirmation, err := sub.CreateOrder(context.Background(), api.CheckoutPayload{
		Items: []api.CheckoutItem{{ID: "PROD-A", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, confirmation.OrderNumber)

	_, err = sub.CreateOrder(context.Background(), api.CheckoutPayload{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
