package lifecycle_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskart/campuskart/internal/api/client"
	"github.com/campuskart/campuskart/internal/lifecycle"
	"github.com/campuskart/campuskart/pkg/logger"
	domain "github.com/campuskart/campuskart/pkg/types"
)

type fakeAPI struct {
	mu      sync.Mutex
	calls   int
	result  *domain.Product
	err     error
	block   chan struct{} // if set, calls block until closed
	started chan struct{} // if set, closed when the first call starts
}

func (f *fakeAPI) UpdateProductStatus(
	_ context.Context,
	_ string,
	_ domain.Status,
) (*domain.Product, error) {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	f.mu.Unlock()

	if first && f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.result, f.err
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func availableBike() *domain.Product {
	return &domain.Product{
		ID:       "p1",
		Title:    "Bike",
		Price:    120,
		SellerID: "seller-1",
		Status:   domain.StatusAvailable,
	}
}

func TestService_MarkSold_Success(t *testing.T) {
	t.Parallel()

	sold := availableBike()
	sold.Status = domain.StatusSold

	api := &fakeAPI{result: sold}
	svc := lifecycle.NewService(api, logger.Discard())

	got, err := svc.MarkSold(context.Background(), availableBike(), "seller-1")
	require.NoError(t, err)

	// The server's entity, not a locally synthesized one.
	assert.Same(t, sold, got)
	assert.Equal(t, domain.StatusSold, got.Status)
	assert.Equal(t, "Bike", got.Title, "other fields unchanged")
	assert.Equal(t, 1, api.callCount())
}

func TestService_MarkSold_Unauthorized_NoNetworkCall(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	svc := lifecycle.NewService(api, logger.Discard())

	_, err := svc.MarkSold(context.Background(), availableBike(), "buyer-2")
	require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	assert.Equal(t, 0, api.callCount(), "violation must short-circuit before the network")
}

func TestService_MarkSold_AlreadyTerminal_NoNetworkCall(t *testing.T) {
	t.Parallel()

	p := availableBike()
	p.Status = domain.StatusSold

	api := &fakeAPI{}
	svc := lifecycle.NewService(api, logger.Discard())

	_, err := svc.MarkSold(context.Background(), p, "seller-1")
	require.ErrorIs(t, err, lifecycle.ErrAlreadySold)
	assert.Equal(t, 0, api.callCount())
}

func TestService_MarkSold_Unauthenticated(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	svc := lifecycle.NewService(api, logger.Discard())

	_, err := svc.MarkSold(context.Background(), availableBike(), "")
	require.ErrorIs(t, err, lifecycle.ErrUnauthenticated)
	assert.Equal(t, 0, api.callCount())
}

func TestService_MarkSold_SingleFlight(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		result:  availableBike(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	svc := lifecycle.NewService(api, logger.Discard())

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.MarkSold(context.Background(), availableBike(), "seller-1")
		firstDone <- err
	}()

	// Wait until the first request is actually in flight.
	select {
	case <-api.started:
	case <-time.After(time.Second):
		t.Fatal("first request never started")
	}

	// Second rapid click: rejected locally, no second network request.
	_, err := svc.MarkSold(context.Background(), availableBike(), "seller-1")
	require.ErrorIs(t, err, lifecycle.ErrTransitionPending)

	close(api.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, api.callCount(), "exactly one network mutation issued")

	// Once settled, the product id is free again.
	_, err = svc.MarkSold(context.Background(), availableBike(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 2, api.callCount())
}

func TestService_MarkSold_DifferentProductsNotSerialized(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{
		result:  availableBike(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	svc := lifecycle.NewService(api, logger.Discard())

	done := make(chan error, 1)
	go func() {
		_, err := svc.MarkSold(context.Background(), availableBike(), "seller-1")
		done <- err
	}()

	select {
	case <-api.started:
	case <-time.After(time.Second):
		t.Fatal("first request never started")
	}

	// A transition for a different product proceeds concurrently.
	other := &domain.Product{ID: "p2", SellerID: "seller-1", Status: domain.StatusAvailable}
	otherDone := make(chan error, 1)
	go func() {
		_, err := svc.MarkSold(context.Background(), other, "seller-1")
		otherDone <- err
	}()

	close(api.block)
	require.NoError(t, <-done)
	require.NoError(t, <-otherDone)
	assert.Equal(t, 2, api.callCount())
}

func TestService_MarkSold_RemoteClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		apiErr  error
		wantErr error
		remote  bool
	}{
		{
			name:    "server says forbidden",
			apiErr:  &client.APIError{Status: http.StatusForbidden, Body: "not the seller"},
			wantErr: lifecycle.ErrUnauthorized,
		},
		{
			name:    "server says conflict",
			apiErr:  &client.APIError{Status: http.StatusConflict, Body: "already sold"},
			wantErr: lifecycle.ErrAlreadySold,
		},
		{
			name:    "server says unauthenticated",
			apiErr:  &client.APIError{Status: http.StatusUnauthorized, Body: "bad token"},
			wantErr: lifecycle.ErrUnauthenticated,
		},
		{
			name:   "server fault",
			apiErr: &client.APIError{Status: http.StatusInternalServerError, Body: "boom"},
			remote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &fakeAPI{err: tt.apiErr}
			svc := lifecycle.NewService(api, logger.Discard())

			_, err := svc.MarkSold(context.Background(), availableBike(), "seller-1")
			require.Error(t, err)

			if tt.remote {
				var remote *lifecycle.RemoteError
				require.ErrorAs(t, err, &remote)
				assert.Contains(t, remote.Detail, "boom")
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFailureReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unauthorized", lifecycle.FailureReason(lifecycle.ErrUnauthorized))
	assert.Equal(t, "already_sold", lifecycle.FailureReason(lifecycle.ErrAlreadySold))
	assert.Equal(t, "pending", lifecycle.FailureReason(lifecycle.ErrTransitionPending))
	assert.Equal(t, "unauthenticated", lifecycle.FailureReason(lifecycle.ErrUnauthenticated))
	assert.Equal(t, "remote", lifecycle.FailureReason(&lifecycle.RemoteError{Detail: "x"}))
	assert.Equal(t, "unknown", lifecycle.FailureReason(context.Canceled))
}
