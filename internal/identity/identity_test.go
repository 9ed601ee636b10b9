package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("test-secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := v.Sign(Principal{UserID: "u1", Email: "u1@example.com"}, time.Hour)
		require.NoError(t, err)

		p, err := v.Verify(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, Principal{UserID: "u1", Email: "u1@example.com"}, p)
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := NewJWTVerifier("other").Sign(Principal{UserID: "u1"}, time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := v.Sign(Principal{UserID: "u1"}, -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

type mockIDTokenVerifier struct {
	mock.Mock
}

func (m *mockIDTokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*auth.Token)
	return token, args.Error(1)
}

func TestFirebaseVerifier(t *testing.T) {
	client := &mockIDTokenVerifier{}
	client.On("VerifyIDToken", mock.Anything, "good").Return(&auth.Token{
		UID:    "fb-uid",
		Claims: map[string]interface{}{"email": "kim@example.com", "admin": true},
	}, nil)
	client.On("VerifyIDToken", mock.Anything, "bad").Return(nil, errors.New("token expired"))

	v := NewFirebaseVerifier(client)

	p, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "fb-uid", Email: "kim@example.com", Admin: true}, p)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
	client.AssertExpectations(t)
}

func TestResolver(t *testing.T) {
	v := NewJWTVerifier("test-secret")
	token, err := v.Sign(Principal{UserID: "u1", Email: "Ops@Example.com"}, time.Hour)
	require.NoError(t, err)

	r := NewResolver(v, "session", []string{"ops@example.com"})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		p, ok := r.Resolve(req)
		require.True(t, ok)
		assert.Equal(t, "u1", p.UserID)
		assert.True(t, p.Admin, "admin by configured email")
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: token})

		p, ok := r.Resolve(req)
		require.True(t, ok)
		assert.Equal(t, "u1", p.UserID)
	})

	t.Run("no credentials", func(t *testing.T) {
		p, ok := r.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
		assert.False(t, p.Authenticated())
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", token)
		_, ok := r.Resolve(req)
		assert.False(t, ok)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		_, ok := r.Resolve(req)
		assert.False(t, ok)
	})
}
