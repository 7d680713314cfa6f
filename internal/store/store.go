// Package store defines the datastore abstraction for the CampusKart
// server. Handlers depend on the Store interface, never on concrete
// implementations, so they can be tested with mocks and no database.
package store

import (
	"context"
	"errors"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// Typed errors. The status update distinguishes all three so the API
// layer can map them to distinct HTTP responses.
var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotSeller is returned when a status change is attempted by a
	// user other than the listing's seller.
	ErrNotSeller = errors.New("acting user is not the seller")

	// ErrAlreadySold is returned when a status change targets a
	// product whose status is already terminal.
	ErrAlreadySold = errors.New("product already sold")
)

// ProductQuery defines optional filters for product listing queries.
type ProductQuery struct {
	Status   *domain.Status
	SellerID *string
	Limit    int // default 50
	Offset   int
}

// Store defines all data access operations for the CampusKart server.
type Store interface {
	// Products
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, opts *ProductQuery) ([]domain.Product, int, error)

	// MarkProductSold transitions a product to sold on behalf of
	// sellerID. The guard conditions are evaluated atomically against
	// current state: ErrNotFound if the product does not exist,
	// ErrNotSeller if sellerID does not own it, ErrAlreadySold if the
	// status is already terminal. On success the updated entity is
	// returned.
	MarkProductSold(ctx context.Context, id, sellerID string) (*domain.Product, error)

	// Messages
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessagesByProduct(ctx context.Context, productID string) ([]domain.Message, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
