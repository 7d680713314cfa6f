package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// TokenExchangeProvider implements Provider by exchanging a stored
// refresh token for an access token and user identity at the auth
// provider's session endpoint.
type TokenExchangeProvider struct {
	endpoint     string
	refreshToken string
	client       *http.Client
}

// TokenExchangeOption configures the TokenExchangeProvider.
type TokenExchangeOption func(*TokenExchangeProvider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) TokenExchangeOption {
	return func(p *TokenExchangeProvider) {
		p.client = c
	}
}

// NewTokenExchangeProvider creates a provider hitting the given session
// endpoint with the stored refresh token.
func NewTokenExchangeProvider(
	endpoint, refreshToken string,
	opts ...TokenExchangeOption,
) *TokenExchangeProvider {
	p := &TokenExchangeProvider{
		endpoint:     endpoint,
		refreshToken: refreshToken,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type sessionRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// GetSession implements Provider. A 401 or 403 from the endpoint means
// no active session; everything else is a provider error.
func (p *TokenExchangeProvider) GetSession(ctx context.Context) (*domain.Session, error) {
	body, err := json.Marshal(sessionRequest{RefreshToken: p.refreshToken})
	if err != nil {
		return nil, fmt.Errorf("marshaling session request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("creating session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing session request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading session response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, ErrNoSession
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf(
			"session request failed (status %d): %s",
			resp.StatusCode, respBody,
		)
	}

	var sr sessionResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("parsing session response: %w", err)
	}

	if sr.AccessToken == "" || sr.UserID == "" {
		return nil, ErrNoSession
	}

	return &domain.Session{UserID: sr.UserID, Token: sr.AccessToken}, nil
}
