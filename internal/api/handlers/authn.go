package handlers

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/campuskart/campuskart/internal/auth"
)

// authenticate resolves the acting user from an Authorization header.
// Every mutating endpoint goes through here; the server never trusts a
// caller-supplied user id.
func authenticate(ctx context.Context, v auth.Verifier, header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", huma.Error401Unauthorized("authentication required")
	}

	userID, err := v.VerifyToken(ctx, token)
	if err != nil {
		return "", huma.Error401Unauthorized("authentication required")
	}
	return userID, nil
}
