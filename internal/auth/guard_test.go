package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskart/campuskart/internal/auth"
	"github.com/campuskart/campuskart/pkg/logger"
	domain "github.com/campuskart/campuskart/pkg/types"
)

type countingProvider struct {
	mu      sync.Mutex
	calls   int
	session *domain.Session
	err     error
}

func (p *countingProvider) GetSession(context.Context) (*domain.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.session, p.err
}

func (p *countingProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestGuard_ResolvesOnce(t *testing.T) {
	t.Parallel()

	p := &countingProvider{session: &domain.Session{UserID: "u1", Token: "tok"}}
	g := auth.NewGuard(p, logger.Discard())

	for range 3 {
		s, err := g.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
	}

	assert.Equal(t, 1, p.callCount(), "provider must be consulted exactly once")
	assert.True(t, g.Authenticated())

	s, ok := g.Session()
	require.True(t, ok)
	assert.Equal(t, "tok", s.Token)
}

func TestGuard_FailureIsSticky(t *testing.T) {
	t.Parallel()

	p := &countingProvider{err: auth.ErrNoSession}
	g := auth.NewGuard(p, logger.Discard())

	_, err := g.Resolve(context.Background())
	require.ErrorIs(t, err, auth.ErrNoSession)

	// No retry on later calls; same terminal outcome.
	_, err = g.Resolve(context.Background())
	require.ErrorIs(t, err, auth.ErrNoSession)
	assert.Equal(t, 1, p.callCount())

	assert.False(t, g.Authenticated())
	_, ok := g.Session()
	assert.False(t, ok)
}

func TestGuard_ProviderError(t *testing.T) {
	t.Parallel()

	p := &countingProvider{err: errors.New("provider down")}
	g := auth.NewGuard(p, logger.Discard())

	_, err := g.Resolve(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrNoSession)
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := &auth.StaticProvider{UserID: "u1", Token: "tok"}
	s, err := p.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Session{UserID: "u1", Token: "tok"}, s)

	empty := &auth.StaticProvider{}
	_, err = empty.GetSession(context.Background())
	require.ErrorIs(t, err, auth.ErrNoSession)
}
