package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresBlockRepository implements the BlockRepository interface.
// The (blocker_id, blocked_id) pair carries a unique constraint, which
// is what serializes concurrent block/unblock calls for the same pair:
// duplicate inserts surface as 23505 rather than torn edges.
type PostgresBlockRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(config *RepositoryConfig) repositories.BlockRepository {
	return &PostgresBlockRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Blocks reports whether an edge blocker->blocked exists
func (r *PostgresBlockRepository) Blocks(ctx context.Context, blocker, blocked int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE blocker_id = $1 AND blocked_id = $2
		)
	`, r.tables.Blocks)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, blocker, blocked).Scan(&exists); err != nil {
		return false, fmt.Errorf("check block edge: %w", err)
	}
	return exists, nil
}

// MutualBlock reports whether an edge exists in either direction
func (r *PostgresBlockRepository) MutualBlock(ctx context.Context, a, b int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`, r.tables.Blocks)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, a, b).Scan(&exists); err != nil {
		return false, fmt.Errorf("check mutual block: %w", err)
	}
	return exists, nil
}

// Create inserts an edge
func (r *PostgresBlockRepository) Create(ctx context.Context, blocker, blocked int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (blocker_id, blocked_id, created_at)
		VALUES ($1, $2, now())
	`, r.tables.Blocks)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query, blocker, blocked)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("block %d->%d: %w", blocker, blocked, domain.ErrConflict)
		}
		return fmt.Errorf("create block edge: %w", err)
	}
	return nil
}

// Remove deletes an edge
func (r *PostgresBlockRepository) Remove(ctx context.Context, blocker, blocked int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE blocker_id = $1 AND blocked_id = $2
	`, r.tables.Blocks)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, blocker, blocked)
	if err != nil {
		return fmt.Errorf("remove block edge: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("block %d->%d: %w", blocker, blocked, domain.ErrNotFound)
	}
	return nil
}

// ListBlocking returns ids the user blocks
func (r *PostgresBlockRepository) ListBlocking(ctx context.Context, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT blocked_id FROM %s WHERE blocker_id = $1 ORDER BY created_at
	`, r.tables.Blocks)
	return r.listIDs(ctx, query, userID)
}

// ListBlockedBy returns ids blocking the user
func (r *PostgresBlockRepository) ListBlockedBy(ctx context.Context, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT blocker_id FROM %s WHERE blocked_id = $1 ORDER BY created_at
	`, r.tables.Blocks)
	return r.listIDs(ctx, query, userID)
}

// BlockedSet returns both directions in one query
func (r *PostgresBlockRepository) BlockedSet(ctx context.Context, userID int64) (map[int64]struct{}, error) {
	query := fmt.Sprintf(`
		SELECT blocked_id FROM %s WHERE blocker_id = $1
		UNION
		SELECT blocker_id FROM %s WHERE blocked_id = $1
	`, r.tables.Blocks, r.tables.Blocks)

	ids, err := r.listIDs(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *PostgresBlockRepository) listIDs(ctx context.Context, query string, userID int64) ([]int64, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query block edges: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan block edge: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block edges: %w", err)
	}

	return ids, nil
}
