package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresGalleryRepository implements the GalleryRepository interface
type PostgresGalleryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(config *RepositoryConfig) repositories.GalleryRepository {
	return &PostgresGalleryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const galleryColumns = "id, user_id, name, description, room, style, model_data, visibility, created_at, updated_at"

// Create creates a new gallery
func (r *PostgresGalleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, description, room, style, model_data, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at
	`, r.tables.Galleries)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		gallery.UserID,
		gallery.Name,
		gallery.Description,
		gallery.Room,
		gallery.Style,
		gallery.ModelData,
		gallery.Visibility,
	).Scan(&gallery.ID, &gallery.CreatedAt, &gallery.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create gallery: %w", err)
	}
	return nil
}

// GetByID retrieves a gallery by ID regardless of visibility
func (r *PostgresGalleryRepository) GetByID(ctx context.Context, id int64) (*models.Gallery, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, galleryColumns, r.tables.Galleries)

	var g models.Gallery
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Name, &g.Description, &g.Room, &g.Style,
		&g.ModelData, &g.Visibility, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("gallery %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get gallery: %w", err)
	}
	return &g, nil
}

// ListByUser retrieves all galleries owned by a user, newest first
func (r *PostgresGalleryRepository) ListByUser(ctx context.Context, userID int64) ([]models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at DESC
	`, galleryColumns, r.tables.Galleries)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list galleries: %w", err)
	}
	return scanGalleries(rows)
}

// ListPublic retrieves visible galleries, newest first
func (r *PostgresGalleryRepository) ListPublic(ctx context.Context, limit, offset int) ([]models.Gallery, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE visibility = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, galleryColumns, r.tables.Galleries)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list public galleries: %w", err)
	}
	return scanGalleries(rows)
}

// Update persists gallery field changes
func (r *PostgresGalleryRepository) Update(ctx context.Context, gallery *models.Gallery) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, room = $3, style = $4, model_data = $5, visibility = $6, updated_at = now()
		WHERE id = $7
	`, r.tables.Galleries)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		gallery.Name,
		gallery.Description,
		gallery.Room,
		gallery.Style,
		gallery.ModelData,
		gallery.Visibility,
		gallery.ID,
	)
	if err != nil {
		return fmt.Errorf("update gallery: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery %d: %w", gallery.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a gallery. Comments, likes and favorites follow via
// ON DELETE CASCADE.
func (r *PostgresGalleryRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Galleries)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete gallery: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("gallery %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanGalleries(rows pgx.Rows) ([]models.Gallery, error) {
	defer rows.Close()

	galleries := []models.Gallery{}
	for rows.Next() {
		var g models.Gallery
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.Description, &g.Room, &g.Style,
			&g.ModelData, &g.Visibility, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan gallery: %w", err)
		}
		galleries = append(galleries, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate galleries: %w", err)
	}
	return galleries, nil
}
