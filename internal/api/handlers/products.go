package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/campuskart/campuskart/internal/auth"
	"github.com/campuskart/campuskart/internal/store"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// ProductsHandler handles product listing and lifecycle endpoints.
type ProductsHandler struct {
	store    store.Store
	verifier auth.Verifier
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store, v auth.Verifier) *ProductsHandler {
	return &ProductsHandler{store: s, verifier: v}
}

// --- Input/Output types ---

// ListProductsInput is the input for listing products with optional filters.
type ListProductsInput struct {
	Status   string `query:"status"    doc:"Filter by status"      enum:"available,sold,"`
	SellerID string `query:"seller_id" doc:"Filter by seller"`
	Limit    int    `query:"limit"     doc:"Number of results (default 50)" minimum:"1" maximum:"1000"`
	Offset   int    `query:"offset"    doc:"Pagination offset"              minimum:"0"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
}

// GetProductInput is the input for getting a single product.
type GetProductInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// GetProductOutput is the response for getting a single product.
type GetProductOutput struct {
	Body domain.Product
}

// CreateProductInput is the input for listing a new product.
type CreateProductInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          domain.NewProductInput
}

// CreateProductOutput is the response for creating a product.
type CreateProductOutput struct {
	Body domain.Product
}

// UpdateProductStatusInput is the input for the status transition. The
// body names only the status field; nothing else about the entity can
// be changed through this endpoint.
type UpdateProductStatusInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Product UUID"`
	Body          struct {
		Status domain.Status `json:"status" doc:"Target status" enum:"sold"`
	}
}

// UpdateProductStatusOutput returns the authoritative updated entity.
type UpdateProductStatusOutput struct {
	Body domain.Product
}

// --- Handlers ---

// ListProducts returns products with optional status and seller filters.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	q := &store.ProductQuery{
		Offset: input.Offset,
	}

	if input.Status != "" {
		status := domain.Status(input.Status)
		q.Status = &status
	}

	if input.SellerID != "" {
		q.SellerID = &input.SellerID
	}

	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	products, total, err := h.store.ListProducts(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}

	if products == nil {
		products = []domain.Product{}
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetProduct returns a single product by ID.
func (h *ProductsHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*GetProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("product not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("product lookup failed: " + err.Error())
	}

	return &GetProductOutput{Body: *p}, nil
}

// CreateProduct lists a new product on behalf of the authenticated
// user. Entities are always created available.
func (h *ProductsHandler) CreateProduct(
	ctx context.Context,
	input *CreateProductInput,
) (*CreateProductOutput, error) {
	userID, err := authenticate(ctx, h.verifier, input.Authorization)
	if err != nil {
		return nil, err
	}

	if input.Body.Title == "" || input.Body.Price <= 0 {
		return nil, huma.Error400BadRequest("title and a positive price are required")
	}

	p := &domain.Product{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Price:       input.Body.Price,
		Condition:   input.Body.Condition,
		ImageURL:    input.Body.ImageURL,
		SellerID:    userID,
	}

	if err := h.store.CreateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("creating product: " + err.Error())
	}

	return &CreateProductOutput{Body: *p}, nil
}

// UpdateProductStatus applies the sold transition. The store evaluates
// every guard against current state; stale client views change nothing
// here.
func (h *ProductsHandler) UpdateProductStatus(
	ctx context.Context,
	input *UpdateProductStatusInput,
) (*UpdateProductStatusOutput, error) {
	userID, err := authenticate(ctx, h.verifier, input.Authorization)
	if err != nil {
		return nil, err
	}

	if input.Body.Status != domain.StatusSold {
		return nil, huma.Error400BadRequest("unsupported status transition")
	}

	p, err := h.store.MarkProductSold(ctx, input.ID, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, huma.Error404NotFound("product not found")
	case errors.Is(err, store.ErrNotSeller):
		return nil, huma.Error403Forbidden("only the seller can mark this product as sold")
	case errors.Is(err, store.ErrAlreadySold):
		return nil, huma.Error409Conflict("product is already sold")
	case err != nil:
		return nil, huma.Error500InternalServerError("updating product status: " + err.Error())
	}

	return &UpdateProductStatusOutput{Body: *p}, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns products with optional status and seller filters.",
		Tags:        []string{"products"},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product by ID",
		Description: "Returns a single product by its UUID.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Create a product",
		Description:   "Lists a new product owned by the authenticated user.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnauthorized},
	}, h.CreateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "update-product-status",
		Method:      http.MethodPatch,
		Path:        "/api/v1/products/{id}/status",
		Summary:     "Update a product's status",
		Description: "Transitions a product to sold on behalf of its seller.",
		Tags:        []string{"products"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusForbidden,
			http.StatusNotFound,
			http.StatusConflict,
		},
	}, h.UpdateProductStatus)
}
