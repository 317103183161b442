package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
)

// handleError converts domain errors to envelope responses. Typed
// errors carry their own status; sentinel matches cover errors wrapped
// with %w; anything else is an opaque 500.
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondKO(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondKO(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		httputil.RespondKO(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrActorNotFound), errors.Is(err, domain.ErrForbidden):
		httputil.RespondKO(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondKO(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondKO(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondKO(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path segment as an int64
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Message: "invalid " + name}
	}
	return id, nil
}
