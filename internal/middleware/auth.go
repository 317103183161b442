package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/auth"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
)

// Auth resolves the session token into an Actor and stores it on the
// request context. A missing or invalid token is 401; a token whose
// backing user no longer exists is 403. The distinction is required:
// the second caller is authenticated, just not authorized.
func Auth(resolver auth.ActorResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)

			actor, err := resolver.ResolveActor(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					httputil.RespondKO(w, http.StatusUnauthorized, "authentication required")
				case errors.Is(err, domain.ErrActorNotFound):
					httputil.RespondKO(w, http.StatusForbidden, "account no longer exists")
				default:
					logger.Error("actor resolution failed",
						"error", err,
						"path", r.URL.Path,
					)
					httputil.RespondKO(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}

// bearerToken extracts the token from the Authorization header, with a
// session cookie fallback.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}
