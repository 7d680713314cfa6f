package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded outcomes. It is
// used when no notification backend is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards outcomes with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Notify logs and discards an outcome.
func (n *NoOpNotifier) Notify(_ context.Context, o Outcome) error {
	n.log.Debug("notification discarded (no backend configured)",
		"success", o.Success,
		"title", o.Title,
	)
	return nil
}
