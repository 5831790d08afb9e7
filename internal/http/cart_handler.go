package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/api"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
	"github.com/SouliMathieu/zida-solaire-mobile/internal/store"
)

// ProductFetcher resolves a product id against the catalog so an add-to-cart
// request carries a full product snapshot into the store.
type ProductFetcher interface {
	ProductByID(ctx context.Context, id string) (domain.Product, error)
}

type CartHandler struct {
	cart    *store.CartStore
	catalog ProductFetcher
	timeout time.Duration
}

func NewCartHandler(cart *store.CartStore, catalog ProductFetcher, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
	Badge      string            `json:"badge"`
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	return CartResponseDTO{
		Items:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
		Badge:      h.cart.BadgeLabel(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	product, err := h.catalog.ProductByID(ctx, req.ProductID)
	if err != nil {
		handleAPIError(w, err)
		return
	}

	if !h.cart.CanAdd(product, req.Quantity) {
		respondError(w, http.StatusConflict, "insufficient_stock", "requested quantity exceeds available stock")
		return
	}

	h.cart.Add(product, req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity > 0 && !h.cart.Contains(productID) {
		respondError(w, http.StatusNotFound, "not_in_cart", "product is not in the cart")
		return
	}

	h.cart.UpdateQuantity(productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// handleAPIError maps a catalog/backend failure onto the facade's responses.
func handleAPIError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			respondError(w, http.StatusNotFound, "product_not_found", apiErr.Message)
		case apiErr.StatusCode >= 500:
			respondError(w, http.StatusBadGateway, "upstream_error", apiErr.Message)
		default:
			respondError(w, http.StatusBadGateway, "upstream_error", apiErr.Message)
		}
		return
	}
	respondError(w, http.StatusBadGateway, "upstream_unreachable", err.Error())
}
