package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// MemoryStore implements Store with in-process maps. It backs the dev
// server mode and exercises the same guard semantics as Postgres, so
// client integration tests can run against it without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	messages map[string][]domain.Message
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*domain.Product),
		messages: make(map[string][]domain.Message),
	}
}

// CreateProduct inserts a new listing, always available.
func (s *MemoryStore) CreateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Status = domain.StatusAvailable
	p.CreatedAt = time.Now().UTC()

	cp := *p
	s.products[p.ID] = &cp
	return nil
}

// GetProduct retrieves a product by ID.
func (s *MemoryStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// ListProducts queries products with optional filters.
func (s *MemoryStore) ListProducts(
	_ context.Context,
	opts *ProductQuery,
) ([]domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Product
	for _, p := range s.products {
		if opts.Status != nil && p.Status != *opts.Status {
			continue
		}
		if opts.SellerID != nil && p.SellerID != *opts.SellerID {
			continue
		}
		matched = append(matched, *p)
	}

	// Newest first, matching the Postgres ordering.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	offset := opts.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

// MarkProductSold applies the guarded transition under the write lock,
// mirroring the atomic UPDATE of the Postgres implementation.
func (s *MemoryStore) MarkProductSold(
	_ context.Context,
	id, sellerID string,
) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !p.OwnedBy(sellerID) {
		return nil, ErrNotSeller
	}
	if p.Status.Terminal() {
		return nil, ErrAlreadySold
	}

	p.Status = domain.StatusSold
	cp := *p
	return &cp, nil
}

// CreateMessage appends a message to a product's thread.
func (s *MemoryStore) CreateMessage(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[m.ProductID]; !ok {
		return ErrNotFound
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now().UTC()

	s.messages[m.ProductID] = append(s.messages[m.ProductID], *m)
	return nil
}

// ListMessagesByProduct returns a product's messages, oldest first.
func (s *MemoryStore) ListMessagesByProduct(
	_ context.Context,
	productID string,
) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[productID]
	return append([]domain.Message(nil), msgs...), nil
}

// Migrate is a no-op for the in-memory store.
func (s *MemoryStore) Migrate(_ context.Context) error {
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
