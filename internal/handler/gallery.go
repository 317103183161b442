package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/service/gallery"
)

// GalleryHandler handles gallery HTTP requests
type GalleryHandler struct {
	galleries *gallery.Service
	logger    *slog.Logger
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleries *gallery.Service, logger *slog.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleries: galleries,
		logger:    logger,
	}
}

// Create creates a new gallery
// POST /api/galleries
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	var req gallery.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.galleries.Create(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "gallery created", created)
}

// Get retrieves a gallery
// GET /api/galleries/{id}
func (h *GalleryHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	g, err := h.galleries.Get(r.Context(), actor, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", g)
}

// ListForUser lists a user's galleries as the requester may see them
// GET /api/users/{id}/galleries
func (h *GalleryHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	userID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	galleries, err := h.galleries.ListForUser(r.Context(), actor, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", galleries)
}

// ListPublic lists the public gallery feed
// GET /api/galleries
func (h *GalleryHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	galleries, err := h.galleries.ListPublic(r.Context(), actor, limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", galleries)
}

// Update updates a gallery
// PATCH /api/galleries/{id}
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req gallery.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.galleries.Update(r.Context(), actor, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "gallery updated", updated)
}

// Delete deletes a gallery
// DELETE /api/galleries/{id}
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.galleries.Delete(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "gallery deleted", nil)
}
