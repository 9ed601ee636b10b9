package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/pkg/config"
	"github.com/anonto42/vinahome/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutesWithMemoryStorage(t *testing.T) {
	cfg := &config.Config{
		Community: config.CommunityConfig{
			EditWindow:       24 * time.Hour,
			CommentMaxLength: 1000,
			Cities: []config.CitySeed{{
				ID:   "hcmc",
				Name: "Ho Chi Minh City",
				Apartments: []config.ApartmentSeed{
					{ID: "6f1c2b7e-6a53-4a0e-9d43-3c8a4f1f6b10", Name: "Vinhomes Central Park", Latitude: 10.7946, Longitude: 106.7218},
				},
			}},
		},
	}
	verifier := identity.NewJWTVerifier("secret")

	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	e.Validator = validators.NewValidator()
	require.NoError(t, SetupRoutes(context.Background(), e, cfg, MemoryStorage(), identity.NewResolver(verifier, "session", nil), nil))

	tests := []struct {
		method, path string
		cookie       bool
		status       int
	}{
		{method: http.MethodGet, path: "/health", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/cities/hcmc/apartments", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/community/posts", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/community/posts", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/notifications/unread-count", status: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/notifications/unread-count", cookie: true, status: http.StatusOK},
		{method: http.MethodGet, path: "/api/nope", status: http.StatusNotFound},
	}

	token, err := verifier.Sign(identity.Principal{UserID: "u1", Email: "u1@example.com"}, time.Hour)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.cookie {
				req.AddCookie(&http.Cookie{Name: "session", Value: token})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}
