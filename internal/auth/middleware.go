package auth

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
)

// contextKey is unexported so only this package can read or write the
// trust domain in a request context.
type contextKey string

const domainKey contextKey = "domain"

// RequireAuth enforces bearer authentication on protected routes.
//
// It reads the Authorization header, verifies the token, and stores
// the trust domain in the request context. Missing or invalid tokens
// stop the chain with 403 — the error message mirrors what Verify
// reports (missing bearer, invalid signature, expired, ...).
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			domain, err := tokens.Verify(r.Header.Get("Authorization"))
			if err != nil {
				writeForbidden(w, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), domainKey, domain)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DomainFromContext retrieves the verified trust domain set by
// RequireAuth. Returns ("", false) on routes the middleware did not
// cover.
func DomainFromContext(ctx context.Context) (Domain, bool) {
	domain, ok := ctx.Value(domainKey).(Domain)
	return domain, ok && domain != ""
}

func writeForbidden(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "auth_error",
		"message": message,
	})
}
