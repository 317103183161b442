package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresFavoriteRepository implements the FavoriteRepository interface
type PostgresFavoriteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(config *RepositoryConfig) repositories.FavoriteRepository {
	return &PostgresFavoriteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// AddGallery inserts a gallery favorite
func (r *PostgresFavoriteRepository) AddGallery(ctx context.Context, galleryID, userID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (gallery_id, user_id, created_at)
		VALUES ($1, $2, now())
	`, r.tables.FavoriteGalleries)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, galleryID, userID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("gallery %d already favorited: %w", galleryID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("gallery %d: %w", galleryID, domain.ErrNotFound)
		}
		return fmt.Errorf("add gallery favorite: %w", err)
	}
	return nil
}

// RemoveGallery deletes a gallery favorite
func (r *PostgresFavoriteRepository) RemoveGallery(ctx context.Context, galleryID, userID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE gallery_id = $1 AND user_id = $2
	`, r.tables.FavoriteGalleries)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, galleryID, userID)
	if err != nil {
		return fmt.Errorf("remove gallery favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite of gallery %d: %w", galleryID, domain.ErrNotFound)
	}
	return nil
}

// ListGalleries returns the favorited galleries themselves, newest
// favorite first
func (r *PostgresFavoriteRepository) ListGalleries(ctx context.Context, userID int64) ([]models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT g.id, g.user_id, g.name, g.description, g.room, g.style,
		       g.model_data, g.visibility, g.created_at, g.updated_at
		FROM %s f
		JOIN %s g ON g.id = f.gallery_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, r.tables.FavoriteGalleries, r.tables.Galleries)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list gallery favorites: %w", err)
	}
	return scanGalleries(rows)
}

// AddFurniture inserts a furniture favorite
func (r *PostgresFavoriteRepository) AddFurniture(ctx context.Context, furnitureID, userID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (furniture_id, user_id, created_at)
		VALUES ($1, $2, now())
	`, r.tables.FavoriteFurniture)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, furnitureID, userID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("furniture %d already favorited: %w", furnitureID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("furniture %d: %w", furnitureID, domain.ErrNotFound)
		}
		return fmt.Errorf("add furniture favorite: %w", err)
	}
	return nil
}

// RemoveFurniture deletes a furniture favorite
func (r *PostgresFavoriteRepository) RemoveFurniture(ctx context.Context, furnitureID, userID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE furniture_id = $1 AND user_id = $2
	`, r.tables.FavoriteFurniture)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, furnitureID, userID)
	if err != nil {
		return fmt.Errorf("remove furniture favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite of furniture %d: %w", furnitureID, domain.ErrNotFound)
	}
	return nil
}

// ListFurniture returns favorited catalog items, excluding archived
// ones (they no longer exist in the active catalog)
func (r *PostgresFavoriteRepository) ListFurniture(ctx context.Context, userID int64) ([]models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.company_id, c.object_id, c.name, c.price,
		       c.width, c.height, c.depth, c.active, c.archived, c.created_at
		FROM %s f
		JOIN %s c ON c.id = f.furniture_id
		WHERE f.user_id = $1 AND c.archived = false
		ORDER BY f.created_at DESC
	`, r.tables.FavoriteFurniture, r.tables.Catalog)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list furniture favorites: %w", err)
	}
	defer rows.Close()

	items := []models.CatalogItem{}
	for rows.Next() {
		var it models.CatalogItem
		err := rows.Scan(
			&it.ID, &it.CompanyID, &it.ObjectID, &it.Name, &it.Price,
			&it.Width, &it.Height, &it.Depth, &it.Active, &it.Archived, &it.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan furniture favorite: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate furniture favorites: %w", err)
	}
	return items, nil
}
