package repositories

import (
	"context"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// GalleryRepository defines data access operations for galleries
type GalleryRepository interface {
	// Create creates a new gallery and fills in its generated ID
	Create(ctx context.Context, gallery *models.Gallery) error

	// GetByID retrieves a gallery by ID regardless of visibility;
	// access control is the policy engine's job, not the store's
	GetByID(ctx context.Context, id int64) (*models.Gallery, error)

	// ListByUser retrieves all galleries owned by a user, newest first
	ListByUser(ctx context.Context, userID int64) ([]models.Gallery, error)

	// ListPublic retrieves visible galleries, newest first
	ListPublic(ctx context.Context, limit, offset int) ([]models.Gallery, error)

	// Update persists gallery field changes
	Update(ctx context.Context, gallery *models.Gallery) error

	// Delete removes a gallery and its dependent rows
	Delete(ctx context.Context, id int64) error
}

// CommentRepository defines data access operations for gallery comments
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)

	// ListByGallery returns the full unfiltered feed with denormalized
	// author names, oldest first. Filtering is the caller's job.
	ListByGallery(ctx context.Context, galleryID int64) ([]models.Comment, error)

	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}

// LikeRepository defines data access operations for gallery likes
type LikeRepository interface {
	// Create inserts a like; domain.ErrConflict if already liked
	Create(ctx context.Context, galleryID, userID int64) error

	// Remove deletes a like; domain.ErrNotFound if absent
	Remove(ctx context.Context, galleryID, userID int64) error

	// Count returns the number of likes on a gallery
	Count(ctx context.Context, galleryID int64) (int, error)

	// Exists reports whether the user already liked the gallery
	Exists(ctx context.Context, galleryID, userID int64) (bool, error)
}

// FavoriteRepository defines data access for gallery and furniture
// bookmarks.
type FavoriteRepository interface {
	// AddGallery inserts a gallery favorite; domain.ErrConflict on duplicate
	AddGallery(ctx context.Context, galleryID, userID int64) error

	// RemoveGallery deletes a gallery favorite; domain.ErrNotFound if absent
	RemoveGallery(ctx context.Context, galleryID, userID int64) error

	// ListGalleries returns the favorited galleries themselves so the
	// caller can content-filter them
	ListGalleries(ctx context.Context, userID int64) ([]models.Gallery, error)

	// AddFurniture inserts a furniture favorite; domain.ErrConflict on duplicate
	AddFurniture(ctx context.Context, furnitureID, userID int64) error

	// RemoveFurniture deletes a furniture favorite; domain.ErrNotFound if absent
	RemoveFurniture(ctx context.Context, furnitureID, userID int64) error

	// ListFurniture returns favorited catalog items
	ListFurniture(ctx context.Context, userID int64) ([]models.CatalogItem, error)
}
