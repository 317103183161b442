package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresCommentRepository implements the CommentRepository interface
type PostgresCommentRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(config *RepositoryConfig) repositories.CommentRepository {
	return &PostgresCommentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (gallery_id, user_id, comment, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, created_at
	`, r.tables.Comments)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		comment.GalleryID,
		comment.UserID,
		comment.Comment,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("gallery %d: %w", comment.GalleryID, domain.ErrNotFound)
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT id, gallery_id, user_id, comment, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Comments)

	var c models.Comment
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&c.ID, &c.GalleryID, &c.UserID, &c.Comment, &c.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// ListByGallery returns the full unfiltered feed with denormalized
// author names, oldest first
func (r *PostgresCommentRepository) ListByGallery(ctx context.Context, galleryID int64) ([]models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.gallery_id, c.user_id, c.comment, c.created_at,
		       u.first_name, u.last_name
		FROM %s c
		JOIN %s u ON u.id = c.user_id
		WHERE c.gallery_id = $1
		ORDER BY c.created_at
	`, r.tables.Comments, r.tables.Users)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, galleryID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(
			&c.ID, &c.GalleryID, &c.UserID, &c.Comment, &c.CreatedAt,
			&c.AuthorFirstName, &c.AuthorLastName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

// Update persists an edited comment body
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET comment = $1 WHERE id = $2
	`, r.tables.Comments)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, comment.Comment, comment.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", comment.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a comment
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Comments)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("comment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
