package server

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
)

// RequireCookieAuth validates the access-token cookie and injects the user
// ID into the request context. Tokens are read only from the HttpOnly
// cookie, never from Authorization headers — the browser client has no
// access to token material.
func (s *Server) RequireCookieAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(accessTokenCookie)
			if err != nil || cookie.Value == "" {
				respondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided")
				return
			}

			claims, err := s.tokens.ParseAccessToken(cookie.Value)
			if err != nil {
				respondDetail(w, http.StatusUnauthorized, "Invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, claims.UserID)
			next(w, r.WithContext(ctx))
		}
	}
}

// userIDFromContext returns the authenticated user ID set by
// RequireCookieAuth, or "" when the request is unauthenticated.
func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyUserID).(string)
	return id
}
