package domain

import "time"

// Product is catalog data, read-only to the stores. Price is an integer
// amount in XOF (no minor units).
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	CategoryID     string            `json:"categoryId"`
	Image          string            `json:"image"`
	Images         []string          `json:"images,omitempty"`
	Stock          int               `json:"stock"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	IsAvailable    bool              `json:"isAvailable"`
	CreatedAt      time.Time         `json:"createdAt,omitzero"`
	UpdatedAt      time.Time         `json:"updatedAt,omitzero"`
}

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	ProductCount int    `json:"productCount,omitempty"`
}
