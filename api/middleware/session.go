package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/orlecare/storefront-backend/pkg/logger"
)

const (
	sessionHeader = "X-Session-Id"
	sessionCookie = "orle_session"
)

type sessionCtxKey struct{}

// Session identifies the cart session for the request. The id travels in a
// cookie (browser storefront) or the X-Session-Id header (API clients); a
// request carrying neither gets a fresh id. Sessions only scope the
// in-memory cart, so an unknown or expired id simply means an empty cart.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionHeader)
			if sessionID == "" {
				if cookie, err := r.Cookie(sessionCookie); err == nil {
					sessionID = cookie.Value
				}
			}
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionHeader, sessionID)
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSessionID returns a context carrying the cart session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

// SessionIDFromContext returns the session id set by Session, or "".
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
