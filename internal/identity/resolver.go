package identity

import (
	"net/http"
	"strings"
)

// Resolver extracts and verifies session credentials from a request.
type Resolver struct {
	verifier   Verifier
	cookieName string
	admins     map[string]struct{}
}

// NewResolver builds a resolver. Principals whose email is in adminEmails are admins.
func NewResolver(verifier Verifier, cookieName string, adminEmails []string) *Resolver {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Resolver{verifier: verifier, cookieName: cookieName, admins: admins}
}

// Resolve returns the principal and true, or a zero principal and false when the
// request carries no valid credentials. It never fails otherwise.
func (r *Resolver) Resolve(req *http.Request) (Principal, bool) {
	token := r.token(req)
	if token == "" {
		return Principal{}, false
	}

	p, err := r.verifier.Verify(req.Context(), token)
	if err != nil || !p.Authenticated() {
		return Principal{}, false
	}
	if _, ok := r.admins[strings.ToLower(p.Email)]; ok {
		p.Admin = true
	}
	return p, true
}

func (r *Resolver) token(req *http.Request) string {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
		return ""
	}
	if r.cookieName == "" {
		return ""
	}
	if cookie, err := req.Cookie(r.cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
