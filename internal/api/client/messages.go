package client

import (
	"context"
	"fmt"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// SendMessageInput is the body for POST /messages/send. ProductID
// correlates the message into the right conversation thread.
type SendMessageInput struct {
	ProductID  string `json:"product_id"`
	ReceiverID string `json:"receiver_id"`
	Message    string `json:"message"`
}

// SendMessage sends one message. The response drives no state; the
// caller only needs to know whether the send failed.
func (c *Client) SendMessage(ctx context.Context, in *SendMessageInput) error {
	return c.post(ctx, "/api/v1/messages/send", in, nil)
}

// ListMessages returns the conversation thread for a product.
func (c *Client) ListMessages(ctx context.Context, productID string) ([]domain.Message, error) {
	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	path := fmt.Sprintf("/api/v1/products/%s/messages", productID)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}
