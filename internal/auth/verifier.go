package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a bearer token does not resolve to
// a known user.
var ErrInvalidToken = errors.New("invalid token")

// Verifier resolves a bearer token to the user it authenticates. It is
// the server-side counterpart of the client's session Provider.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (userID string, err error)
}

// StaticVerifier resolves tokens from a fixed token-to-user map. It
// backs the reference server, where tokens are issued out of band.
type StaticVerifier struct {
	Tokens map[string]string
}

// VerifyToken implements Verifier.
func (v *StaticVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	userID, ok := v.Tokens[token]
	if !ok || token == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
