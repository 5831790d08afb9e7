package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_HappyPath(t *testing.T) {
	path := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusPreparing,
		OrderStatusDelivering,
		OrderStatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, CanTransitionTo(path[i], path[i+1]),
			"%s -> %s should be allowed", path[i], path[i+1])
	}
}

func TestCanTransitionTo_ShippingVariants(t *testing.T) {
	assert.True(t, CanTransitionTo(OrderStatusPreparing, OrderStatusReady))
	assert.True(t, CanTransitionTo(OrderStatusReady, OrderStatusShipped))
	assert.True(t, CanTransitionTo(OrderStatusPreparing, OrderStatusShipped))
	assert.True(t, CanTransitionTo(OrderStatusShipped, OrderStatusDelivered))
}

func TestCanTransitionTo_Cancellation(t *testing.T) {
	assert.True(t, CanTransitionTo(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanTransitionTo(OrderStatusConfirmed, OrderStatusCancelled))

	assert.False(t, CanTransitionTo(OrderStatusPreparing, OrderStatusCancelled))
	assert.False(t, CanTransitionTo(OrderStatusDelivering, OrderStatusCancelled))
	assert.False(t, CanTransitionTo(OrderStatusDelivered, OrderStatusCancelled))
}

func TestCanTransitionTo_TerminalStatesHaveNoExit(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusShipped, OrderStatusDelivering,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, to := range all {
			if to == terminal {
				continue
			}
			assert.False(t, CanTransitionTo(terminal, to),
				"%s -> %s should be refused", terminal, to)
		}
	}
}

func TestCanTransitionTo_SameStatusIsIdempotent(t *testing.T) {
	assert.True(t, CanTransitionTo(OrderStatusCancelled, OrderStatusCancelled))
	assert.True(t, CanTransitionTo(OrderStatusPending, OrderStatusPending))
}

func TestCanTransitionTo_NoBackwardsMoves(t *testing.T) {
	assert.False(t, CanTransitionTo(OrderStatusConfirmed, OrderStatusPending))
	assert.False(t, CanTransitionTo(OrderStatusDelivering, OrderStatusPreparing))
}

func TestOrderStatus_IsCancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.IsCancellable())
	assert.True(t, OrderStatusConfirmed.IsCancellable())
	assert.False(t, OrderStatusPreparing.IsCancellable())
	assert.False(t, OrderStatusDelivered.IsCancellable())
	assert.False(t, OrderStatusCancelled.IsCancellable())
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusDelivering.Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderLine_Subtotal(t *testing.T) {
	line := OrderLine{ProductID: "PROD-1", Quantity: 3, Price: 175000}
	assert.Equal(t, int64(525000), line.Subtotal())
}

func TestCartLine_Subtotal_TracksLivePrice(t *testing.T) {
	line := CartLine{Product: Product{ID: "PROD-1", Price: 1000}, Quantity: 2}
	assert.Equal(t, int64(2000), line.Subtotal())

	line.Product.Price = 1500
	assert.Equal(t, int64(3000), line.Subtotal())
}
