package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/myturn82/dragonj/internal/auth"
	"github.com/myturn82/dragonj/internal/storage/models"
)

type contextKey string

const userContextKey contextKey = "user"

// RequireAuth returns middleware that verifies the bearer token on
// every request and injects the owning user into the request context.
// Every schedule query and mutation downstream is scoped to this user.
func RequireAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "Missing bearer token")
				return
			}

			user, err := svc.Verify(r.Context(), token)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header, or from
// the access_token query parameter for WebSocket upgrades where headers
// cannot be set by browsers.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("access_token")
}

// CurrentUser returns the authenticated user injected by RequireAuth,
// or nil on unauthenticated routes.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userContextKey).(*models.User)
	return user
}
