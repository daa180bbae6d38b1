package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verdantly/verdantly-backend/pkg/config"
	"github.com/verdantly/verdantly-backend/pkg/logger"
)

type sessionCtxKey struct{}

// Session resolves the storefront session ID for the request: the session
// header wins, then the session cookie, and a brand-new ID is minted when
// neither is present. The resolved ID is echoed on the response header and
// refreshed in the cookie so anonymous carts survive browser restarts.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cfg.Header))
			if sessionID == "" {
				if cookie, err := r.Cookie(cfg.CookieName); err == nil {
					sessionID = strings.TrimSpace(cookie.Value)
				}
			}
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(cfg.CookieTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(cfg.Header, sessionID)

			ctx := context.WithValue(r.Context(), sessionCtxKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the session ID resolved by the Session middleware, or ""
// when the middleware did not run.
func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionCtxKey{}).(string); ok {
		return id
	}
	return ""
}
