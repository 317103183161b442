package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users             string
	UserSettings      string
	Galleries         string
	Comments          string
	Likes             string
	FavoriteGalleries string
	FavoriteFurniture string
	Blocks            string
	Catalog           string
	CatalogColors     string
	CatalogStyles     string
	CatalogRooms      string
	Archive           string
	ArchiveColors     string
	ArchiveStyles     string
	ArchiveRooms      string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:             prefix + "users",
		UserSettings:      prefix + "user_settings",
		Galleries:         prefix + "galleries",
		Comments:          prefix + "gallery_comments",
		Likes:             prefix + "gallery_likes",
		FavoriteGalleries: prefix + "favorite_galleries",
		FavoriteFurniture: prefix + "favorite_furniture",
		Blocks:            prefix + "blocked_users",
		Catalog:           prefix + "catalog",
		CatalogColors:     prefix + "catalog_colors",
		CatalogStyles:     prefix + "catalog_styles",
		CatalogRooms:      prefix + "catalog_rooms",
		Archive:           prefix + "archive",
		ArchiveColors:     prefix + "archive_colors",
		ArchiveStyles:     prefix + "archive_styles",
		ArchiveRooms:      prefix + "archive_rooms",
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// before it reaches the server, so each environment prepares its own
// statements; this is safe with statement caching.
//
// Port 6543 (transaction-pooling PgBouncer) does not support prepared
// statements, so when detected the pool falls back to description
// caching unless the connection string overrides the mode explicitly.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the
// transaction; otherwise the provided pool. This lets repositories
// participate in the catalog lifecycle's transactions transparently.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
