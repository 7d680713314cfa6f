package notify

import (
	"context"
	"fmt"
	"io"
)

// TerminalNotifier writes outcomes to a terminal stream. This is the
// CLI's stand-in for the original app's toast notifications.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminalNotifier creates a TerminalNotifier writing to out.
func NewTerminalNotifier(out io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: out}
}

// Notify implements Notifier.
func (n *TerminalNotifier) Notify(_ context.Context, o Outcome) error {
	prefix := "ok"
	if !o.Success {
		prefix = "error"
	}

	if _, err := fmt.Fprintf(n.out, "%s: %s\n", prefix, o.Detail); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}
