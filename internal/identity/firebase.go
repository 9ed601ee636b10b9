package identity

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the part of *auth.Client the resolver needs.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client IDTokenVerifier
}

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Principal, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Principal{}, ErrInvalidToken
	}

	p := Principal{UserID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		p.Email = email
	}
	if admin, ok := token.Claims["admin"].(bool); ok {
		p.Admin = admin
	}
	return p, nil
}
