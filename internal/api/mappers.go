package api

import (
	"time"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
)

const placeholderImage = "https://via.placeholder.com/400"

// statusFromAPI translates the backend's English order statuses into the
// domain's French ones. Unknown statuses fall back to EN_ATTENTE.
var statusFromAPI = map[string]domain.OrderStatus{
	"PENDING":    domain.OrderStatusPending,
	"CONFIRMED":  domain.OrderStatusConfirmed,
	"PROCESSING": domain.OrderStatusPreparing,
	"READY":      domain.OrderStatusReady,
	"SHIPPED":    domain.OrderStatusShipped,
	"DELIVERING": domain.OrderStatusDelivering,
	"DELIVERED":  domain.OrderStatusDelivered,
	"CANCELLED":  domain.OrderStatusCancelled,
}

func mapOrderStatus(raw string) domain.OrderStatus {
	if status, ok := statusFromAPI[raw]; ok {
		return status
	}
	// The backend already speaks French for some tenants.
	if s := domain.OrderStatus(raw); s.Valid() {
		return s
	}
	return domain.OrderStatusPending
}

func mapProduct(p apiProduct) domain.Product {
	image := p.Image
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	if image == "" {
		image = placeholderImage
	}
	images := p.Images
	if len(images) == 0 {
		images = []string{image}
	}

	return domain.Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		CategoryID:     p.CategoryID,
		Image:          image,
		Images:         images,
		Stock:          p.Stock,
		Features:       p.Features,
		Specifications: p.Specifications,
		IsAvailable:    p.IsAvailable,
		CreatedAt:      parseTime(p.CreatedAt),
		UpdatedAt:      parseTime(p.UpdatedAt),
	}
}

func mapCategory(c apiCategory) domain.Category {
	return domain.Category{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Image:        c.Image,
		ProductCount: c.Count.Products,
	}
}

func mapOrder(o apiOrder) domain.Order {
	lines := make([]domain.OrderLine, len(o.Items))
	for i, item := range o.Items {
		lines[i] = domain.OrderLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	return domain.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Lines:           lines,
		TotalAmount:     o.TotalAmount,
		Status:          mapOrderStatus(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Notes:           o.Notes,
		CreatedAt:       parseTime(o.CreatedAt),
		UpdatedAt:       parseTime(o.UpdatedAt),
	}
}

// parseTime tolerates missing or malformed timestamps; the zero time is
// harmless for display purposes.
func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
