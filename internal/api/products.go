package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/SouliMathieu/zida-solaire-mobile/internal/domain"
)

// ProductQuery filters the product listing. Zero values mean no filter.
type ProductQuery struct {
	CategoryID string
	Search     string
}

// Products fetches the catalog. Identical in-flight requests are collapsed
// into one round-trip, so a screen full of widgets asking for the same list
// costs a single call.
func (c *Client) Products(ctx context.Context, query ProductQuery) ([]domain.Product, error) {
	params := url.Values{}
	if query.CategoryID != "" {
		params.Set("category", query.CategoryID)
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}

	key := "products?" + params.Encode()
	v, err, _ := c.catalog.Do(key, func() (interface{}, error) {
		var raw json.RawMessage
		if err := c.get(ctx, "/products", params, &raw); err != nil {
			return nil, err
		}
		products, err := decodeProducts(raw)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Product, len(products))
		for i, p := range products {
			out[i] = mapProduct(p)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// decodeProducts accepts both the paginated envelope and a bare array.
func decodeProducts(raw json.RawMessage) ([]apiProduct, error) {
	var envelope productsEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Products != nil {
		return envelope.Products, nil
	}
	var plain []apiProduct
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("unexpected products response shape: %w", err)
	}
	return plain, nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (domain.Product, error) {
	var p apiProduct
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &p); err != nil {
		return domain.Product{}, err
	}
	return mapProduct(p), nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	v, err, _ := c.catalog.Do("categories", func() (interface{}, error) {
		var categories []apiCategory
		if err := c.get(ctx, "/categories", nil, &categories); err != nil {
			return nil, err
		}
		out := make([]domain.Category, len(categories))
		for i, cat := range categories {
			out[i] = mapCategory(cat)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

func (c *Client) CategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var cat apiCategory
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), nil, &cat); err != nil {
		return domain.Category{}, err
	}
	return mapCategory(cat), nil
}
