// Package lifecycle implements the product status state machine: the
// authorized available -> sold transition and its failure taxonomy.
package lifecycle

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/campuskart/campuskart/internal/api/client"
	"github.com/campuskart/campuskart/internal/metrics"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// API is the remote endpoint the service mutates through.
type API interface {
	UpdateProductStatus(ctx context.Context, id string, status domain.Status) (*domain.Product, error)
}

// Service performs authorized status transitions. Calls are
// single-flight per product id: a second MarkSold for the same product
// while one is outstanding is rejected synchronously, never queued.
type Service struct {
	api API
	log *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService creates a Service around the given remote API.
func NewService(api API, log *slog.Logger) *Service {
	return &Service{
		api:      api,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// MarkSold transitions the product to sold and returns the server's
// authoritative updated entity. The client-side precondition checks are
// a UX fast path only; the remote system re-enforces both rules.
//
// A RemoteError may mean the server committed but the response was
// lost; no automatic reconciliation happens here. Callers wanting a
// refetch-on-error policy hook it in above this method.
func (s *Service) MarkSold(
	ctx context.Context,
	p *domain.Product,
	actingUserID string,
) (*domain.Product, error) {
	if actingUserID == "" {
		return nil, s.fail(ErrUnauthenticated)
	}
	if !p.OwnedBy(actingUserID) {
		return nil, s.fail(ErrUnauthorized)
	}
	if p.Status.Terminal() {
		return nil, s.fail(ErrAlreadySold)
	}

	if !s.acquire(p.ID) {
		return nil, s.fail(ErrTransitionPending)
	}
	defer s.release(p.ID)

	updated, err := s.api.UpdateProductStatus(ctx, p.ID, domain.StatusSold)
	if err != nil {
		mapped := classifyRemote(err)
		s.log.Warn("mark sold failed",
			"product_id", p.ID,
			"reason", FailureReason(mapped),
			"error", err,
		)
		return nil, s.fail(mapped)
	}

	metrics.TransitionsTotal.Inc()
	s.log.Info("product marked sold", "product_id", updated.ID, "title", updated.Title)

	return updated, nil
}

func (s *Service) fail(err error) error {
	metrics.TransitionFailuresTotal.WithLabelValues(FailureReason(err)).Inc()
	return err
}

func (s *Service) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *Service) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// classifyRemote maps an API transport error to the failure taxonomy.
// The server is the authority: its verdicts override whatever the
// local fast path believed.
func classifyRemote(err error) error {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return &RemoteError{Detail: err.Error(), Err: err}
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrAlreadySold
	default:
		return &RemoteError{Detail: apiErr.Body, Err: err}
	}
}
