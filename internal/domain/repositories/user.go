package repositories

import (
	"context"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// UserRepository defines read access to user accounts. Registration and
// profile management live outside this engine.
type UserRepository interface {
	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// WallDisplaySettings returns, for the given user ids, which of
	// them permit public display of their last name on comment feeds.
	WallDisplaySettings(ctx context.Context, userIDs []int64) (map[int64]bool, error)
}

// BlockRepository stores the directed block graph.
type BlockRepository interface {
	// Blocks reports whether an edge blocker->blocked exists
	Blocks(ctx context.Context, blocker, blocked int64) (bool, error)

	// MutualBlock reports whether an edge exists in either direction
	MutualBlock(ctx context.Context, a, b int64) (bool, error)

	// Create inserts an edge. Returns domain.ErrConflict (via the pair
	// uniqueness constraint) if the edge already exists.
	Create(ctx context.Context, blocker, blocked int64) error

	// Remove deletes an edge. Returns domain.ErrNotFound if absent.
	Remove(ctx context.Context, blocker, blocked int64) error

	// ListBlocking returns ids the user blocks
	ListBlocking(ctx context.Context, userID int64) ([]int64, error)

	// ListBlockedBy returns ids blocking the user
	ListBlockedBy(ctx context.Context, userID int64) ([]int64, error)

	// BlockedSet returns the union of ListBlocking and ListBlockedBy as
	// a membership set, in one query.
	BlockedSet(ctx context.Context, userID int64) (map[int64]struct{}, error)
}
