package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresCatalogRepository implements the CatalogRepository interface.
//
// Object id uniqueness is enforced by a partial unique index over
// non-archived rows, so an archived item's object id can be reused by a
// fresh item while two live items can never share one. Every method
// runs through GetExecutor, so calls made inside the catalog
// lifecycle's transactions automatically join them.
type PostgresCatalogRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(config *RepositoryConfig) repositories.CatalogRepository {
	return &PostgresCatalogRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const catalogColumns = "id, company_id, object_id, name, price, width, height, depth, active, archived, created_at"

// Create inserts an item with its side lists
func (r *PostgresCatalogRepository) Create(ctx context.Context, item *models.CatalogItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (company_id, object_id, name, price, width, height, depth, active, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, now())
		RETURNING id, created_at
	`, r.tables.Catalog)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		item.CompanyID,
		item.ObjectID,
		item.Name,
		item.Price,
		item.Width,
		item.Height,
		item.Depth,
		item.Active,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("object id %q already in use: %w", item.ObjectID, domain.ErrConflict)
		}
		return fmt.Errorf("create catalog item: %w", err)
	}

	if err := r.insertSideLists(ctx, item.ID, item.Colors, item.Styles, item.Rooms); err != nil {
		return err
	}
	return nil
}

// GetByID retrieves a non-archived item with its side lists
func (r *PostgresCatalogRepository) GetByID(ctx context.Context, id int64) (*models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1 AND archived = false
	`, catalogColumns, r.tables.Catalog)

	var it models.CatalogItem
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&it.ID, &it.CompanyID, &it.ObjectID, &it.Name, &it.Price,
		&it.Width, &it.Height, &it.Depth, &it.Active, &it.Archived, &it.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("catalog item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}

	if err := r.loadSideLists(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByObjectID retrieves a non-archived item by object id
func (r *PostgresCatalogRepository) GetByObjectID(ctx context.Context, objectID string) (*models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE object_id = $1 AND archived = false
	`, catalogColumns, r.tables.Catalog)

	var it models.CatalogItem
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, objectID).Scan(
		&it.ID, &it.CompanyID, &it.ObjectID, &it.Name, &it.Price,
		&it.Width, &it.Height, &it.Depth, &it.Active, &it.Archived, &it.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("catalog object %q: %w", objectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get catalog item by object id: %w", err)
	}

	if err := r.loadSideLists(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByCompany retrieves a company's non-archived items
func (r *PostgresCatalogRepository) ListByCompany(ctx context.Context, companyID int64, includeInactive bool) ([]models.CatalogItem, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE company_id = $1 AND archived = false AND (active = true OR $2)
		ORDER BY created_at DESC
	`, catalogColumns, r.tables.Catalog)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, companyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
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
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog items: %w", err)
	}

	for i := range items {
		if err := r.loadSideLists(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Update persists scalar field changes
func (r *PostgresCatalogRepository) Update(ctx context.Context, item *models.CatalogItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, price = $2, width = $3, height = $4, depth = $5, active = $6
		WHERE id = $7 AND archived = false
	`, r.tables.Catalog)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		item.Name, item.Price, item.Width, item.Height, item.Depth, item.Active, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update catalog item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("catalog item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// SetActive toggles the active flag
func (r *PostgresCatalogRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET active = $1 WHERE id = $2 AND archived = false
	`, r.tables.Catalog)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("set catalog item active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("catalog item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the item and its side rows
func (r *PostgresCatalogRepository) Delete(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, r.pool)

	for _, table := range []string{r.tables.CatalogColors, r.tables.CatalogStyles, r.tables.CatalogRooms} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE item_id = $1`, table)
		if _, err := exec.Exec(ctx, query, id); err != nil {
			return fmt.Errorf("delete catalog side rows: %w", err)
		}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Catalog)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("catalog item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresCatalogRepository) insertSideLists(ctx context.Context, itemID int64, colors []models.ItemColor, styles, rooms []string) error {
	exec := GetExecutor(ctx, r.pool)

	for _, c := range colors {
		query := fmt.Sprintf(`
			INSERT INTO %s (item_id, color, model_id) VALUES ($1, $2, $3)
		`, r.tables.CatalogColors)
		if _, err := exec.Exec(ctx, query, itemID, c.Color, c.ModelID); err != nil {
			return fmt.Errorf("insert catalog color: %w", err)
		}
	}
	for _, s := range styles {
		query := fmt.Sprintf(`
			INSERT INTO %s (item_id, style) VALUES ($1, $2)
		`, r.tables.CatalogStyles)
		if _, err := exec.Exec(ctx, query, itemID, s); err != nil {
			return fmt.Errorf("insert catalog style: %w", err)
		}
	}
	for _, room := range rooms {
		query := fmt.Sprintf(`
			INSERT INTO %s (item_id, room) VALUES ($1, $2)
		`, r.tables.CatalogRooms)
		if _, err := exec.Exec(ctx, query, itemID, room); err != nil {
			return fmt.Errorf("insert catalog room: %w", err)
		}
	}
	return nil
}

func (r *PostgresCatalogRepository) loadSideLists(ctx context.Context, item *models.CatalogItem) error {
	exec := GetExecutor(ctx, r.pool)

	colorQuery := fmt.Sprintf(`SELECT color, model_id FROM %s WHERE item_id = $1`, r.tables.CatalogColors)
	rows, err := exec.Query(ctx, colorQuery, item.ID)
	if err != nil {
		return fmt.Errorf("load catalog colors: %w", err)
	}
	item.Colors = []models.ItemColor{}
	for rows.Next() {
		var c models.ItemColor
		if err := rows.Scan(&c.Color, &c.ModelID); err != nil {
			rows.Close()
			return fmt.Errorf("scan catalog color: %w", err)
		}
		item.Colors = append(item.Colors, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate catalog colors: %w", err)
	}

	item.Styles, err = r.loadStrings(ctx, r.tables.CatalogStyles, "style", item.ID)
	if err != nil {
		return err
	}
	item.Rooms, err = r.loadStrings(ctx, r.tables.CatalogRooms, "room", item.ID)
	return err
}

func (r *PostgresCatalogRepository) loadStrings(ctx context.Context, table, column string, itemID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE item_id = $1`, column, table)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s rows: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan catalog %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog %s rows: %w", column, err)
	}
	return values, nil
}
