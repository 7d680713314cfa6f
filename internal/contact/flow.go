// Package contact implements the contact-seller flow: an immediate
// switch to the messaging surface plus a fire-and-forget opening
// message to the listing's seller.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/campuskart/campuskart/internal/api/client"
	"github.com/campuskart/campuskart/internal/appstate"
	"github.com/campuskart/campuskart/internal/metrics"
	domain "github.com/campuskart/campuskart/pkg/types"
)

const sendTimeout = 10 * time.Second

// API is the message-send side of the remote endpoint.
type API interface {
	SendMessage(ctx context.Context, in *client.SendMessageInput) error
}

// Flow sends the templated opening message. The view switch is never
// gated on network success and a failed send is never retried here;
// the user retries manually from the messaging surface.
type Flow struct {
	api   API
	state *appstate.Controller
	log   *slog.Logger
	tmpl  *template.Template

	wg sync.WaitGroup
}

// NewFlow creates a Flow with the given opening-message template. The
// template receives the product as dot.
func NewFlow(
	api API,
	state *appstate.Controller,
	messageTemplate string,
	log *slog.Logger,
) (*Flow, error) {
	tmpl, err := template.New("contact").Parse(messageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing contact template: %w", err)
	}

	return &Flow{api: api, state: state, log: log, tmpl: tmpl}, nil
}

// InitiateContact switches the active view to messages immediately and
// sends the opening message in the background. This flow never touches
// product status; callers gate the action on status themselves.
func (f *Flow) InitiateContact(p *domain.Product) {
	// The user sees the messaging surface at once, regardless of how
	// the send goes.
	f.state.SetActiveView(domain.ViewMessages)

	body, err := f.compose(p)
	if err != nil {
		metrics.MessageSendFailuresTotal.Inc()
		f.log.Error("composing contact message failed", "product_id", p.ID, "error", err)
		return
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.send(p, body)
	}()
}

// Wait blocks until all in-flight sends settle. Intended for tests and
// shutdown.
func (f *Flow) Wait() {
	f.wg.Wait()
}

func (f *Flow) compose(p *domain.Product) (string, error) {
	var sb strings.Builder
	if err := f.tmpl.Execute(&sb, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (f *Flow) send(p *domain.Product, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	err := f.api.SendMessage(ctx, &client.SendMessageInput{
		ProductID:  p.ID,
		ReceiverID: p.SellerID,
		Message:    body,
	})
	if err != nil {
		// Reported, not retried; the view switch stands.
		metrics.MessageSendFailuresTotal.Inc()
		f.log.Error("contact message send failed",
			"product_id", p.ID,
			"receiver_id", p.SellerID,
			"error", err,
		)
		return
	}

	metrics.MessagesSentTotal.Inc()
	f.log.Info("contact message sent", "product_id", p.ID, "receiver_id", p.SellerID)
}
