// Package auth provides token verification for the API boundary. Token
// issuance belongs to an external service; this package only checks
// presented credentials.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"codereview-backend/internal/shared/server/middleware"
)

// SharedSecret verifies bearer tokens of the form "<secret>:<user-id>".
// It is the dev-mode stand-in for a real token service: callers that
// know the shared secret can assert any identity.
type SharedSecret struct {
	Secret string
}

// Verify checks the token's secret half and extracts the identity.
func (v SharedSecret) Verify(token string) (middleware.Identity, error) {
	if v.Secret == "" {
		return middleware.Identity{}, errors.New("no shared secret configured")
	}
	secret, userID, ok := strings.Cut(token, ":")
	if !ok || userID == "" {
		return middleware.Identity{}, errors.New("malformed token")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(v.Secret)) != 1 {
		return middleware.Identity{}, errors.New("invalid token")
	}
	return middleware.Identity{UserID: userID}, nil
}

var _ middleware.TokenVerifier = SharedSecret{}
