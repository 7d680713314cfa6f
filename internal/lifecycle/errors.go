package lifecycle

import (
	"errors"
	"fmt"
)

// Failure taxonomy for status transitions. Unauthorized and
// AlreadyTerminal are detected locally before any network call and
// short-circuit with zero side effects.
var (
	// ErrUnauthenticated means there is no session at all; the entire
	// mutation path is disabled upstream.
	ErrUnauthenticated = errors.New("not signed in")

	// ErrUnauthorized means the acting user is not the seller.
	ErrUnauthorized = errors.New("only the seller can mark a product as sold")

	// ErrAlreadySold means the product's status is already terminal.
	ErrAlreadySold = errors.New("product is already sold")

	// ErrTransitionPending means another transition for the same
	// product is still in flight; the call is rejected, not queued.
	ErrTransitionPending = errors.New("a status change for this product is already in flight")
)

// RemoteError is a network or server fault. It carries the opaque
// detail for user-facing messaging; no local state was mutated and the
// operation is safely retryable.
type RemoteError struct {
	Detail string
	Err    error
}

// Error implements error.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: %s", e.Detail)
}

// Unwrap exposes the underlying fault.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// FailureReason maps a transition error to a stable label used for
// metrics and user messaging.
func FailureReason(err error) string {
	var remote *RemoteError
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrAlreadySold):
		return "already_sold"
	case errors.Is(err, ErrTransitionPending):
		return "pending"
	case errors.As(err, &remote):
		return "remote"
	default:
		return "unknown"
	}
}
