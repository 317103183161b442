package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
)

// RequestID assigns each request a uuid, echoed in the X-Request-ID
// response header and attached to the context for log correlation. An
// incoming X-Request-ID is honored so upstream proxies can trace
// through.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, httputil.WithRequestID(r, id))
	})
}
