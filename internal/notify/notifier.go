// Package notify delivers user-facing outcome notifications. Every
// operation produces exactly one notification: a success or a failure,
// never both, never silence.
package notify

import (
	"context"
)

// Outcome is the result of one user-initiated operation.
type Outcome struct {
	Success bool
	Title   string // short, e.g. the product title
	Detail  string // user-facing message
}

// Notifier defines the interface for delivering outcome notifications.
type Notifier interface {
	Notify(ctx context.Context, o Outcome) error
}
