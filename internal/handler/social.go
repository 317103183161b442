package handler

import (
	"log/slog"
	"net/http"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/httputil"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/service/social"
)

// SocialHandler handles like and favorite HTTP requests
type SocialHandler struct {
	social *social.Service
	logger *slog.Logger
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(svc *social.Service, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{
		social: svc,
		logger: logger,
	}
}

// Like likes a gallery
// POST /api/galleries/{id}/like
func (h *SocialHandler) Like(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.Like(r.Context(), actor, galleryID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "gallery liked", nil)
}

// Unlike removes a like
// DELETE /api/galleries/{id}/like
func (h *SocialHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.Unlike(r.Context(), actor, galleryID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "gallery unliked", nil)
}

// LikeCount returns the like count for a gallery
// GET /api/galleries/{id}/likes
func (h *SocialHandler) LikeCount(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	count, err := h.social.LikeCount(r.Context(), actor, galleryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", map[string]int{"likes": count})
}

// Liked reports whether the requester liked a gallery
// GET /api/galleries/{id}/liked
func (h *SocialHandler) Liked(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	liked, err := h.social.HasLiked(r.Context(), actor, galleryID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", map[string]bool{"liked": liked})
}

// FavoriteGallery bookmarks a gallery
// POST /api/favorites/galleries/{id}
func (h *SocialHandler) FavoriteGallery(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.FavoriteGallery(r.Context(), actor, galleryID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "gallery added to favorites", nil)
}

// UnfavoriteGallery removes a gallery bookmark
// DELETE /api/favorites/galleries/{id}
func (h *SocialHandler) UnfavoriteGallery(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleryID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.UnfavoriteGallery(r.Context(), actor, galleryID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "gallery removed from favorites", nil)
}

// ListFavoriteGalleries lists the requester's bookmarked galleries
// GET /api/favorites/galleries
func (h *SocialHandler) ListFavoriteGalleries(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	galleries, err := h.social.ListFavoriteGalleries(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", galleries)
}

// FavoriteFurniture bookmarks a catalog item
// POST /api/favorites/furniture/{id}
func (h *SocialHandler) FavoriteFurniture(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	furnitureID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.FavoriteFurniture(r.Context(), actor, furnitureID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusCreated, "furniture added to favorites", nil)
}

// UnfavoriteFurniture removes a furniture bookmark
// DELETE /api/favorites/furniture/{id}
func (h *SocialHandler) UnfavoriteFurniture(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	furnitureID, err := pathID(r, "id")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.social.UnfavoriteFurniture(r.Context(), actor, furnitureID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "furniture removed from favorites", nil)
}

// ListFavoriteFurniture lists the requester's bookmarked catalog items
// GET /api/favorites/furniture
func (h *SocialHandler) ListFavoriteFurniture(w http.ResponseWriter, r *http.Request) {
	actor := httputil.GetActor(r)

	items, err := h.social.ListFavoriteFurniture(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondOK(w, http.StatusOK, "OK", items)
}
