package handler

import (
	"log/slog"
	"net/http"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/service/block"
)

// BlockHandler handles user blocking HTTP requests
type BlockHandler struct {
	blocks *block.Service
	logger *slog.Logger
}

// NewBlockHandler creates a new block handler
func NewBlockHandler(blocks *block.Service, logger *slog.Logger) *BlockHandler {
	return &BlockHandler{
		blocks: blocks,
		logger: logger,
	}
}

// Block creates a block edge toward the target user
// POST /api/blocks/{id}
func (h *BlockHandler) Block(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	targetID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.blocks.Block(r.Context(), actor, targetID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "user blocked", nil)
}

// Unblock removes a block edge
// DELETE /api/blocks/{id}
func (h *BlockHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	targetID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.blocks.Unblock(r.Context(), actor, targetID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "user unblocked", nil)
}

// Check reports whether the requester blocks the target user
// GET /api/blocks/{id}
func (h *BlockHandler) Check(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	targetID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	blocking, err := h.blocks.IsBlocking(r.Context(), actor, targetID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", map[string]bool{"blocking": blocking})
}

// List returns the ids the requester blocks
// GET /api/blocks
func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	ids, err := h.blocks.ListBlocking(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", ids)
}
