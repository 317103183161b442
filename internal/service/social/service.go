// Package social implements likes and favorites, the simple engagement
// actions over galleries and catalog furniture.
package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/policy"
)

// Service implements like and favorite operations
type Service struct {
	likes     repositories.LikeRepository
	favorites repositories.FavoriteRepository
	galleries repositories.GalleryRepository
	catalog   repositories.CatalogRepository
	engine    *policy.Engine
	logger    *slog.Logger
}

// NewService creates a new social service
func NewService(
	likes repositories.LikeRepository,
	favorites repositories.FavoriteRepository,
	galleries repositories.GalleryRepository,
	catalog repositories.CatalogRepository,
	engine *policy.Engine,
	logger *slog.Logger,
) *Service {
	return &Service{
		likes:     likes,
		favorites: favorites,
		galleries: galleries,
		catalog:   catalog,
		engine:    engine,
		logger:    logger,
	}
}

// Like records the actor's like on a viewable gallery. A second like
// of the same gallery fails with a conflict.
func (s *Service) Like(ctx context.Context, actor *models.Actor, galleryID int64) error {
	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return err
	}

	if err := s.likes.Create(ctx, galleryID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return &domain.ConflictError{Message: "gallery already liked"}
		}
		return fmt.Errorf("like gallery: %w", err)
	}

	s.logger.Info("gallery liked", "gallery_id", galleryID, "user_id", actor.ID)
	return nil
}

// Unlike removes the actor's like
func (s *Service) Unlike(ctx context.Context, actor *models.Actor, galleryID int64) error {
	if err := s.likes.Remove(ctx, galleryID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ConflictError{Message: "gallery not liked"}
		}
		return fmt.Errorf("unlike gallery: %w", err)
	}

	s.logger.Info("gallery unliked", "gallery_id", galleryID, "user_id", actor.ID)
	return nil
}

// LikeCount returns the number of likes on a viewable gallery
func (s *Service) LikeCount(ctx context.Context, actor *models.Actor, galleryID int64) (int, error) {
	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return 0, err
	}
	return s.likes.Count(ctx, galleryID)
}

// HasLiked reports whether the actor already liked a viewable gallery
func (s *Service) HasLiked(ctx context.Context, actor *models.Actor, galleryID int64) (bool, error) {
	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return false, err
	}
	return s.likes.Exists(ctx, galleryID, actor.ID)
}

// FavoriteGallery bookmarks a viewable gallery for the actor
func (s *Service) FavoriteGallery(ctx context.Context, actor *models.Actor, galleryID int64) error {
	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return err
	}

	if err := s.favorites.AddGallery(ctx, galleryID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return &domain.ConflictError{Message: "gallery already in favorites"}
		}
		return fmt.Errorf("favorite gallery: %w", err)
	}

	s.logger.Info("gallery favorited", "gallery_id", galleryID, "user_id", actor.ID)
	return nil
}

// UnfavoriteGallery removes a gallery bookmark
func (s *Service) UnfavoriteGallery(ctx context.Context, actor *models.Actor, galleryID int64) error {
	if err := s.favorites.RemoveGallery(ctx, galleryID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ConflictError{Message: "gallery not in favorites"}
		}
		return fmt.Errorf("unfavorite gallery: %w", err)
	}
	return nil
}

// ListFavoriteGalleries returns the actor's bookmarked galleries,
// content-filtered: a favorite whose owner has since blocked the actor
// (or gone private) disappears from the list rather than erroring.
func (s *Service) ListFavoriteGalleries(ctx context.Context, actor *models.Actor) ([]models.Gallery, error) {
	galleries, err := s.favorites.ListGalleries(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	blocked, err := s.engine.BlockedSet(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return policy.Filter(actor, blocked, galleries), nil
}

// FavoriteFurniture bookmarks a catalog item for the actor. Inactive
// items are favoritable only by their owning company or an admin;
// anyone else gets the same not-found an ordinary read would, so the
// bookmark cannot be used to discover hidden items.
func (s *Service) FavoriteFurniture(ctx context.Context, actor *models.Actor, furnitureID int64) error {
	item, err := s.catalog.GetByID(ctx, furnitureID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "resource not found"}
		}
		return err
	}
	if !item.Active && item.CompanyID != actor.ID && !actor.IsAdmin() {
		return &domain.NotFoundError{Message: "resource not found"}
	}

	if err := s.favorites.AddFurniture(ctx, furnitureID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return &domain.ConflictError{Message: "furniture already in favorites"}
		}
		return fmt.Errorf("favorite furniture: %w", err)
	}

	s.logger.Info("furniture favorited", "furniture_id", furnitureID, "user_id", actor.ID)
	return nil
}

// UnfavoriteFurniture removes a furniture bookmark
func (s *Service) UnfavoriteFurniture(ctx context.Context, actor *models.Actor, furnitureID int64) error {
	if err := s.favorites.RemoveFurniture(ctx, furnitureID, actor.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ConflictError{Message: "furniture not in favorites"}
		}
		return fmt.Errorf("unfavorite furniture: %w", err)
	}
	return nil
}

// ListFavoriteFurniture returns the actor's bookmarked catalog items.
// Inactive items stay visible only to their owning company or admins.
func (s *Service) ListFavoriteFurniture(ctx context.Context, actor *models.Actor) ([]models.CatalogItem, error) {
	items, err := s.favorites.ListFurniture(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]models.CatalogItem, 0, len(items))
	for _, it := range items {
		if !it.Active && it.CompanyID != actor.ID && !actor.IsAdmin() {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *Service) checkGalleryView(ctx context.Context, actor *models.Actor, galleryID int64) error {
	gallery, err := s.galleries.GetByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "resource not found"}
		}
		return err
	}

	decision, err := s.engine.Decide(ctx, actor, gallery, policy.ActionView)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return decision.Err()
	}
	return nil
}
