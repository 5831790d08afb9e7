package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/store"
)

type OrdersHandler struct {
	orders *store.OrdersStore
}

func NewOrdersHandler(orders *store.OrdersStore) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orders.Orders())
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.orders.OrderByID(chi.URLParam(r, "order_id"))
	if !ok {
		respondError(w, http.StatusNotFound, "order_not_found", "no order with that id")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	err := h.orders.Cancel(orderID)
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "no order with that id")
		return
	case errors.Is(err, store.ErrNotCancellable):
		respondError(w, http.StatusConflict, "not_cancellable", "order is already being prepared or delivered")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "cancel_failed", err.Error())
		return
	}

	order, _ := h.orders.OrderByID(orderID)
	respondJSON(w, http.StatusOK, order)
}
