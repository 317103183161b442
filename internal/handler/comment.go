package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/service/comment"
)

// CommentHandler handles gallery comment HTTP requests
type CommentHandler struct {
	comments *comment.Service
	logger   *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *comment.Service, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logger,
	}
}

// List returns the filtered comment feed for a gallery
// GET /api/galleries/{id}/comments
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	feed, err := h.comments.ListForGallery(r.Context(), actor, galleryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", feed)
}

// Create posts a comment on a gallery
// POST /api/galleries/{id}/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req comment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.comments.Create(r.Context(), actor, galleryID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "comment created", created)
}

// Update edits a comment
// PATCH /api/comments/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	var req comment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondKO(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.comments.Update(r.Context(), actor, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "comment updated", updated)
}

// Delete removes a comment
// DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.comments.Delete(r.Context(), actor, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "comment deleted", nil)
}
