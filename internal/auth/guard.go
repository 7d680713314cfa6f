// Package auth resolves the user's session from the external auth
// provider and exposes it to the rest of the application.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// ErrNoSession is returned when the provider reports no active session.
// The caller must route the user to the external authentication flow;
// the guard never retries on its own.
var ErrNoSession = errors.New("no active session")

// Provider supplies a session from the external auth system.
type Provider interface {
	GetSession(ctx context.Context) (*domain.Session, error)
}

// Guard queries the Provider exactly once per process and caches the
// outcome. A failed resolution is sticky: every later call observes the
// same failure until the process restarts with new credentials.
type Guard struct {
	provider Provider
	log      *slog.Logger

	once    sync.Once
	session *domain.Session
	err     error
}

// NewGuard creates a Guard around the given provider.
func NewGuard(p Provider, log *slog.Logger) *Guard {
	return &Guard{provider: p, log: log}
}

// Resolve returns the process session, consulting the provider on the
// first call only.
func (g *Guard) Resolve(ctx context.Context) (*domain.Session, error) {
	g.once.Do(func() {
		s, err := g.provider.GetSession(ctx)
		if err != nil {
			g.err = err
			g.log.Warn("session resolution failed", "error", err)
			return
		}
		g.session = s
		g.log.Info("session resolved", "user_id", s.UserID)
	})

	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

// Session returns the cached session, if resolution succeeded.
func (g *Guard) Session() (*domain.Session, bool) {
	if g.session == nil {
		return nil, false
	}
	return g.session, true
}

// Authenticated reports whether a session was resolved.
func (g *Guard) Authenticated() bool {
	_, ok := g.Session()
	return ok
}

// StaticProvider returns a pre-issued session. Used in development and
// tests where the external auth flow has already happened.
type StaticProvider struct {
	UserID string
	Token  string
}

// GetSession implements Provider.
func (p *StaticProvider) GetSession(context.Context) (*domain.Session, error) {
	if p.UserID == "" || p.Token == "" {
		return nil, ErrNoSession
	}
	return &domain.Session{UserID: p.UserID, Token: p.Token}, nil
}
