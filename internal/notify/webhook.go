package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	colorGreen = 0x2ECC71
	colorRed   = 0xE74C3C
)

// WebhookNotifier delivers outcomes to a Discord-compatible webhook.
// Useful for sellers who want sold/failed notifications off-terminal.
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier.
func NewWebhookNotifier(webhookURL string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WebhookOption configures a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		n.client = c
	}
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Color       int    `json:"color"`
	Description string `json:"description,omitempty"`
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, o Outcome) error {
	color := colorGreen
	if !o.Success {
		color = colorRed
	}

	payload := webhookPayload{
		Embeds: []webhookEmbed{{
			Title:       o.Title,
			Color:       color,
			Description: o.Detail,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		n.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("webhook rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("webhook returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
