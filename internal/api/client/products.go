package client

import (
	"context"
	"fmt"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// ProductsResponse wraps the products listing response.
type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProducts returns all current listings.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var resp ProductsResponse
	if err := c.get(ctx, "/api/v1/products", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, fmt.Sprintf("/api/v1/products/%s", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct lists a new product and returns the server's entity.
func (c *Client) CreateProduct(
	ctx context.Context,
	in *domain.NewProductInput,
) (*domain.Product, error) {
	var p domain.Product
	if err := c.post(ctx, "/api/v1/products", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// statusPatch names only the status field. The full entity is never
// resent so concurrent edits to other fields are not clobbered.
type statusPatch struct {
	Status domain.Status `json:"status"`
}

// UpdateProductStatus issues a partial update of the product's status
// and returns the server's authoritative updated entity.
func (c *Client) UpdateProductStatus(
	ctx context.Context,
	id string,
	status domain.Status,
) (*domain.Product, error) {
	var p domain.Product
	path := fmt.Sprintf("/api/v1/products/%s/status", id)
	if err := c.patch(ctx, path, statusPatch{Status: status}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
