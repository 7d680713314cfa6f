package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuskart/campuskart/internal/api/handlers"
	"github.com/campuskart/campuskart/internal/store"
	storeMocks "github.com/campuskart/campuskart/internal/store/mocks"
	domain "github.com/campuskart/campuskart/pkg/types"
)

func newMessagesAPI(t *testing.T, mockStore *storeMocks.MockStore) humatest.TestAPI {
	t.Helper()
	h := handlers.NewMessagesHandler(mockStore, testVerifier())
	_, api := humatest.New(t)
	handlers.RegisterMessageRoutes(api, h)
	return api
}

func TestMessagesHandler_SendMessage(t *testing.T) {
	t.Parallel()

	validBody := map[string]any{
		"product_id":  "p1",
		"receiver_id": "seller-1",
		"message":     "Hi! I'm interested in your Bike",
	}

	tests := []struct {
		name       string
		token      string
		body       map[string]any
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "sender is the authenticated user",
			token: "buyer-token",
			body:  validBody,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					GetProduct(mock.Anything, "p1").
					Return(&domain.Product{ID: "p1", Title: "Bike"}, nil).
					Once()
				m.EXPECT().
					CreateMessage(mock.Anything, mock.MatchedBy(func(msg *domain.Message) bool {
						return msg.SenderID == "buyer-2" &&
							msg.ReceiverID == "seller-1" &&
							msg.ProductID == "p1"
					})).
					Return(nil).
					Once()
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `"sender_id":"buyer-2"`,
		},
		{
			name:       "missing token returns 401",
			token:      "",
			body:       validBody,
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:  "empty message returns 400",
			token: "buyer-token",
			body: map[string]any{
				"product_id":  "p1",
				"receiver_id": "seller-1",
				"message":     "",
			},
			setupMock:  func(_ *storeMocks.MockStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "unknown product returns 404",
			token: "buyer-token",
			body:  validBody,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					GetProduct(mock.Anything, "p1").
					Return(nil, store.ErrNotFound).
					Once()
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := storeMocks.NewMockStore(t)
			tt.setupMock(mockStore)

			api := newMessagesAPI(t, mockStore)

			args := []any{tt.body}
			if tt.token != "" {
				args = []any{"Authorization: Bearer " + tt.token, tt.body}
			}

			resp := api.Post("/api/v1/messages/send", args...)
			assert.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

// Sending a message about a sold product is accepted: messaging never
// depends on or alters product status.
func TestMessagesHandler_SendMessage_SoldProductAllowed(t *testing.T) {
	t.Parallel()

	mockStore := storeMocks.NewMockStore(t)
	mockStore.EXPECT().
		GetProduct(mock.Anything, "p1").
		Return(&domain.Product{ID: "p1", Status: domain.StatusSold}, nil).
		Once()
	mockStore.EXPECT().
		CreateMessage(mock.Anything, mock.Anything).
		Return(nil).
		Once()

	api := newMessagesAPI(t, mockStore)

	resp := api.Post("/api/v1/messages/send",
		"Authorization: Bearer buyer-token",
		map[string]any{
			"product_id":  "p1",
			"receiver_id": "seller-1",
			"message":     "Is pickup still possible?",
		},
	)
	assert.Equal(t, http.StatusAccepted, resp.Code)
}

func TestMessagesHandler_ListMessages(t *testing.T) {
	t.Parallel()

	t.Run("returns thread oldest first", func(t *testing.T) {
		t.Parallel()

		mockStore := storeMocks.NewMockStore(t)
		mockStore.EXPECT().
			ListMessagesByProduct(mock.Anything, "p1").
			Return([]domain.Message{
				{ID: "m1", ProductID: "p1", SenderID: "buyer-2", Body: "Hi!"},
				{ID: "m2", ProductID: "p1", SenderID: "seller-1", Body: "Hello"},
			}, nil).
			Once()

		api := newMessagesAPI(t, mockStore)

		resp := api.Get("/api/v1/products/p1/messages",
			"Authorization: Bearer buyer-token",
		)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"id":"m1"`)
		assert.Contains(t, resp.Body.String(), `"id":"m2"`)
	})

	t.Run("empty thread returns empty array", func(t *testing.T) {
		t.Parallel()

		mockStore := storeMocks.NewMockStore(t)
		mockStore.EXPECT().
			ListMessagesByProduct(mock.Anything, "p1").
			Return(nil, nil).
			Once()

		api := newMessagesAPI(t, mockStore)

		resp := api.Get("/api/v1/products/p1/messages",
			"Authorization: Bearer buyer-token",
		)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"messages":[]`)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		t.Parallel()

		api := newMessagesAPI(t, storeMocks.NewMockStore(t))

		resp := api.Get("/api/v1/products/p1/messages")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
