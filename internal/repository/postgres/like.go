package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresLikeRepository implements the LikeRepository interface. The
// (gallery_id, user_id) pair is unique, so a double-like surfaces as a
// duplicate error rather than a second row.
type PostgresLikeRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(config *RepositoryConfig) repositories.LikeRepository {
	return &PostgresLikeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a like
func (r *PostgresLikeRepository) Create(ctx context.Context, galleryID, userID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (gallery_id, user_id, created_at)
		VALUES ($1, $2, now())
	`, r.tables.Likes)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, galleryID, userID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("gallery %d already liked: %w", galleryID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("gallery %d: %w", galleryID, domain.ErrNotFound)
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// Remove deletes a like
func (r *PostgresLikeRepository) Remove(ctx context.Context, galleryID, userID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE gallery_id = $1 AND user_id = $2
	`, r.tables.Likes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, galleryID, userID)
	if err != nil {
		return fmt.Errorf("remove like: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("like on gallery %d: %w", galleryID, domain.ErrNotFound)
	}
	return nil
}

// Count returns the number of likes on a gallery
func (r *PostgresLikeRepository) Count(ctx context.Context, galleryID int64) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE gallery_id = $1`, r.tables.Likes)

	var count int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, galleryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// Exists reports whether the user already liked the gallery
func (r *PostgresLikeRepository) Exists(ctx context.Context, galleryID, userID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE gallery_id = $1 AND user_id = $2
		)
	`, r.tables.Likes)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, galleryID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return exists, nil
}
