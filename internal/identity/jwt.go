package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier verifies HS256 tokens signed with a shared secret.
// Used for local development and by services that mint their own session tokens.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (Principal, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{UserID: userID, Email: claims.Email, Admin: claims.Admin}, nil
}

// Sign issues a token for p valid for ttl.
func (v *JWTVerifier) Sign(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: p.UserID,
		Email:  p.Email,
		Admin:  p.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
