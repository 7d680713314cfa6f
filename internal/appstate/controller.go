// Package appstate owns the client's shared UI state: the focused
// product, the active view, and the refresh token that invalidates
// cached listings. State lives in one explicitly passed Controller,
// never in package globals, so transitions stay testable in isolation.
package appstate

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/campuskart/campuskart/internal/metrics"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// Controller is the single writer of view focus, active view, and the
// refresh token. The refresh token is a monotonic counter starting at
// 0; every increment means "cached listing data is stale, refetch".
type Controller struct {
	log *slog.Logger

	mu          sync.Mutex
	selected    *domain.Product
	view        domain.View
	subscribers []func(uint64)

	refreshToken atomic.Uint64
}

// New creates a Controller with no focus and the products view active.
func New(log *slog.Logger) *Controller {
	return &Controller{
		log:  log,
		view: domain.ViewProducts,
	}
}

// SelectProduct sets the detail-view focus. The caller supplies an
// already-fetched entity; selection never fetches. A previous selection
// is replaced wholesale.
func (c *Controller) SelectProduct(p *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = p
}

// ClearSelection dismisses the detail view. It does not cancel any
// in-flight mutation for the previously focused product; that
// mutation's completion still bumps the refresh token.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Selected returns the currently focused product, or nil.
func (c *Controller) Selected() *domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// ActiveView returns the active top-level view.
func (c *Controller) ActiveView() domain.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// SetActiveView switches the active top-level view.
func (c *Controller) SetActiveView(v domain.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// ApplyUpdatedProduct folds a server-confirmed entity back into the UI:
// if the focused product shares the update's id the focus is replaced
// in place, so an open detail view reflects the new status without a
// refetch round-trip. The refresh token is bumped unconditionally so
// the listing surface refetches either way.
func (c *Controller) ApplyUpdatedProduct(updated *domain.Product) {
	c.mu.Lock()
	if c.selected != nil && c.selected.ID == updated.ID {
		c.selected = updated
	}
	c.mu.Unlock()

	c.BumpRefresh()
}

// BumpRefresh increments the refresh token and notifies subscribers.
// Called after every successful mutating operation that should
// invalidate cached listings.
func (c *Controller) BumpRefresh() {
	token := c.refreshToken.Add(1)
	metrics.RefreshBumpsTotal.Inc()
	c.log.Debug("refresh token bumped", "token", token)

	c.mu.Lock()
	subs := make([]func(uint64), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
}

// RefreshToken returns the current refresh token.
func (c *Controller) RefreshToken() uint64 {
	return c.refreshToken.Load()
}

// OnRefresh registers fn to run with the new token on every bump.
// Subscribers must tolerate at-least-once delivery and out-of-order
// observation; the monotonic token makes any observed increase a valid
// invalidation signal.
func (c *Controller) OnRefresh(fn func(uint64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}
