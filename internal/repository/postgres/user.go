package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a user by id, joined with their settings row.
// A missing settings row falls back to zero-value settings.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.company_api_key, u.created_at,
		       COALESCE(s.display_lastname_on_wall, false)
		FROM %s u
		LEFT JOIN %s s ON s.user_id = u.id
		WHERE u.id = $1
	`, r.tables.Users, r.tables.UserSettings)

	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CompanyAPIKey,
		&user.CreatedAt,
		&user.Settings.DisplayLastNameOnWall,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// WallDisplaySettings returns which of the given users opted into
// showing their last name on comment feeds.
func (r *PostgresUserRepository) WallDisplaySettings(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	settings := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return settings, nil
	}

	query := fmt.Sprintf(`
		SELECT user_id, display_lastname_on_wall
		FROM %s
		WHERE user_id = ANY($1)
	`, r.tables.UserSettings)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("query wall display settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var display bool
		if err := rows.Scan(&userID, &display); err != nil {
			return nil, fmt.Errorf("scan wall display setting: %w", err)
		}
		settings[userID] = display
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wall display settings: %w", err)
	}

	return settings, nil
}
