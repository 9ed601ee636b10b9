package middleware

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// PrincipalResolver resolves the caller of a request.
type PrincipalResolver interface {
	Resolve(req *http.Request) (identity.Principal, bool)
}

// Identify resolves the principal for every request and stores it in the context.
// Anonymous requests pass through untouched.
func Identify(resolver PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, ok := resolver.Resolve(c.Request()); ok {
				c.Set(principalKey, p)
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests without a resolved principal.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := PrincipalFrom(c); !ok {
			return apperrors.Unauthenticated("login required")
		}
		return next(c)
	}
}

// PrincipalFrom returns the principal stored by Identify.
func PrincipalFrom(c echo.Context) (identity.Principal, bool) {
	p, ok := c.Get(principalKey).(identity.Principal)
	return p, ok && p.Authenticated()
}
