// internal/api/products.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// SizeOption is a size variant with its own price in minor currency units
type SizeOption struct {
	Size  string `json:"size"`
	Price int64  `json:"price"`
}

// Product is a catalog product. Sizes carry the size-specific prices the
// cart captures at add time; Colors are free-form variant selectors.
type Product struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Image    string       `json:"image"`
	Category string       `json:"category"`
	Price    int64        `json:"price"` // base price when no size is chosen
	Stock    int          `json:"stock"`
	Sizes    []SizeOption `json:"sizes,omitempty"`
	Colors   []string     `json:"colors,omitempty"`
}

// PriceFor returns the price for the chosen size, falling back to the base
// price when the product has no such size.
func (p *Product) PriceFor(size string) int64 {
	for _, opt := range p.Sizes {
		if opt.Size == size {
			return opt.Price
		}
	}
	return p.Price
}

// Category is a product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListProductsOptions filters a product listing
type ListProductsOptions struct {
	Category string
	Page     int
	Limit    int
}

// GetProduct fetches one product by ID
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if _, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts fetches a page of the catalog
func (c *Client) ListProducts(ctx context.Context, opts ListProductsOptions) ([]Product, error) {
	query := url.Values{}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Page > 0 {
		query.Set("page", fmt.Sprintf("%d", opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	path := "/products"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var products []Product
	if _, err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories fetches all product categories
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
