package middleware

import (
	"context"
	"net/http"
	"strings"

	"masterblog/app/services"
)

type identityKey struct{}

// AuthRequired rejects requests without a valid bearer token and stores the
// verified identity in the request context for downstream handlers.
func AuthRequired(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
				return
			}
			username, err := auth.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey{}, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the authenticated username stored by AuthRequired, or the
// empty string for anonymous requests.
func Identity(r *http.Request) string {
	if v, ok := r.Context().Value(identityKey{}).(string); ok {
		return v
	}
	return ""
}
