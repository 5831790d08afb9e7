package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
)

// CreateOrder submits the checkout payload. The server answers with its
// order number; the caller builds the local Order record around it.
func (c *Client) CreateOrder(ctx context.Context, payload CheckoutPayload) (CheckoutConfirmation, error) {
	if len(payload.Items) == 0 {
		return CheckoutConfirmation{}, errors.New("checkout payload has no items")
	}

	var confirmation CheckoutConfirmation
	if err := c.post(ctx, "/checkout", payload, &confirmation); err != nil {
		return CheckoutConfirmation{}, err
	}
	return confirmation, nil
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var raw []apiOrder
	if err := c.get(ctx, "/orders", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Order, len(raw))
	for i, o := range raw {
		out[i] = mapOrder(o)
	}
	return out, nil
}

func (c *Client) OrderByID(ctx context.Context, id string) (domain.Order, error) {
	var o apiOrder
	if err := c.get(ctx, "/orders/"+url.PathEscape(id), nil, &o); err != nil {
		return domain.Order{}, err
	}
	return mapOrder(o), nil
}

// UpdateOrderStatus pushes a status change to the backend.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	body := map[string]string{"status": status.String()}
	return c.patch(ctx, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}
