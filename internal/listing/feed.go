// Package listing implements the listing grid's data source: a cache
// of products keyed by the refresh token, plus a cron refresher that
// keeps the grid from going stale during long sessions.
package listing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/campuskart/campuskart/internal/appstate"
	"github.com/campuskart/campuskart/internal/metrics"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// API is the read side of the products endpoint.
type API interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Feed serves the listing grid. The refresh token is the only
// staleness signal: any token the cache was not built at means
// "discard and refetch from the source of truth".
type Feed struct {
	api   API
	state *appstate.Controller
	log   *slog.Logger

	mu       sync.Mutex
	cached   []domain.Product
	cachedAt uint64
	warm     bool
}

// NewFeed creates a Feed bound to the given state controller.
func NewFeed(api API, state *appstate.Controller, log *slog.Logger) *Feed {
	return &Feed{api: api, state: state, log: log}
}

// Products returns the current listings, refetching when the cache was
// built at an older refresh token. The token is sampled before the
// fetch: a bump that lands mid-fetch makes the next call refetch again,
// which preserves the at-least-once invalidation property.
func (f *Feed) Products(ctx context.Context) ([]domain.Product, error) {
	token := f.state.RefreshToken()

	f.mu.Lock()
	if f.warm && f.cachedAt == token {
		cached := f.cached
		f.mu.Unlock()
		return cached, nil
	}
	f.mu.Unlock()

	products, err := f.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	metrics.ListingRefetchesTotal.Inc()
	f.log.Debug("listing feed refetched", "token", token, "count", len(products))

	f.mu.Lock()
	f.cached = products
	f.cachedAt = token
	f.warm = true
	f.mu.Unlock()

	return products, nil
}
