package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/checkout"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
)

// OrderPlacer is the checkout orchestration as the facade consumes it.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, customer checkout.CustomerInfo) (domain.Order, error)
}

type CheckoutHandler struct {
	service OrderPlacer
	timeout time.Duration
}

func NewCheckoutHandler(service OrderPlacer, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type CheckoutRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.PlaceOrder(ctx, checkout.CustomerInfo{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	})
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "the cart has no items")
		return
	case errors.Is(err, checkout.ErrMissingPhone), errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusBadRequest, "missing_field", err.Error())
		return
	case err != nil:
		// Submission failed: cart and ledger are untouched, the shopper may retry.
		handleAPIError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
