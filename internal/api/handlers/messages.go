package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/campuskart/campuskart/internal/auth"
	"github.com/campuskart/campuskart/internal/store"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// MessagesHandler handles conversation endpoints.
type MessagesHandler struct {
	store    store.Store
	verifier auth.Verifier
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(s store.Store, v auth.Verifier) *MessagesHandler {
	return &MessagesHandler{store: s, verifier: v}
}

// --- Input/Output types ---

// SendMessageInput is the input for sending a message. The sender is
// always the authenticated user.
type SendMessageInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		ProductID  string `json:"product_id"  doc:"Product the conversation is about"`
		ReceiverID string `json:"receiver_id" doc:"Recipient user id"`
		Message    string `json:"message"     doc:"Message body"`
	}
}

// SendMessageOutput is the response for sending a message.
type SendMessageOutput struct {
	Body domain.Message
}

// ListMessagesInput is the input for reading a product's thread.
type ListMessagesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Product UUID"`
}

// ListMessagesOutput is the response for reading a product's thread.
type ListMessagesOutput struct {
	Body struct {
		Messages []domain.Message `json:"messages"`
	}
}

// --- Handlers ---

// SendMessage appends a message to a product's conversation thread.
// Messaging never touches product status; a thread about a sold
// product remains readable and writable.
func (h *MessagesHandler) SendMessage(
	ctx context.Context,
	input *SendMessageInput,
) (*SendMessageOutput, error) {
	userID, err := authenticate(ctx, h.verifier, input.Authorization)
	if err != nil {
		return nil, err
	}

	if input.Body.ProductID == "" || input.Body.ReceiverID == "" || input.Body.Message == "" {
		return nil, huma.Error400BadRequest("product_id, receiver_id, and message are required")
	}

	if _, err := h.store.GetProduct(ctx, input.Body.ProductID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("product lookup failed: " + err.Error())
	}

	m := &domain.Message{
		ProductID:  input.Body.ProductID,
		SenderID:   userID,
		ReceiverID: input.Body.ReceiverID,
		Body:       input.Body.Message,
	}

	if err := h.store.CreateMessage(ctx, m); err != nil {
		return nil, huma.Error500InternalServerError("creating message: " + err.Error())
	}

	return &SendMessageOutput{Body: *m}, nil
}

// ListMessages returns a product's conversation thread, oldest first.
func (h *MessagesHandler) ListMessages(
	ctx context.Context,
	input *ListMessagesInput,
) (*ListMessagesOutput, error) {
	if _, err := authenticate(ctx, h.verifier, input.Authorization); err != nil {
		return nil, err
	}

	messages, err := h.store.ListMessagesByProduct(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("message query failed: " + err.Error())
	}

	if messages == nil {
		messages = []domain.Message{}
	}

	resp := &ListMessagesOutput{}
	resp.Body.Messages = messages

	return resp, nil
}

// RegisterMessageRoutes registers message endpoints with the Huma API.
func RegisterMessageRoutes(api huma.API, h *MessagesHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "send-message",
		Method:        http.MethodPost,
		Path:          "/api/v1/messages/send",
		Summary:       "Send a message",
		Description:   "Appends a message to a product's conversation thread.",
		Tags:          []string{"messages"},
		DefaultStatus: http.StatusAccepted,
		Errors: []int{
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusNotFound,
		},
	}, h.SendMessage)

	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/messages",
		Summary:     "List a product's messages",
		Description: "Returns a product's conversation thread, oldest first.",
		Tags:        []string{"messages"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.ListMessages)
}
