// Package identity resolves the authenticated principal from session credentials
// issued by the external identity provider.
package identity

import (
	"context"
	"errors"
)

// Principal is the authenticated identity making a request.
type Principal struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

// Authenticated reports whether p carries a user id.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// ErrInvalidToken is returned by verifiers for tokens that do not verify.
var ErrInvalidToken = errors.New("invalid session token")

// Verifier turns a raw session token into a principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}
