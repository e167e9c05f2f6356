package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates bearer tokens presented to protected endpoints.
type TokenValidator interface {
	ValidateToken(tokenString string) error
}

// RequireAuth rejects requests without a valid bearer token. When validator
// is nil the middleware is a passthrough, so deployments without a signing
// key keep working (the upstream gateway owns authentication there).
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			if err := validator.ValidateToken(token); err != nil {
				logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
