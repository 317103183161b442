package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// PostgresArchiveRepository implements the ArchiveRepository interface
type PostgresArchiveRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(config *RepositoryConfig) repositories.ArchiveRepository {
	return &PostgresArchiveRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a record copied from an item, side lists included
func (r *PostgresArchiveRepository) Create(ctx context.Context, rec *models.ArchiveRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (source_id, company_id, object_id, name, price, width, height, depth, active, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id, archived_at
	`, r.tables.Archive)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		rec.SourceID,
		rec.CompanyID,
		rec.ObjectID,
		rec.Name,
		rec.Price,
		rec.Width,
		rec.Height,
		rec.Depth,
		rec.Active,
	).Scan(&rec.ID, &rec.ArchivedAt)
	if err != nil {
		return fmt.Errorf("create archive record: %w", err)
	}

	for _, c := range rec.Colors {
		q := fmt.Sprintf(`INSERT INTO %s (record_id, color, model_id) VALUES ($1, $2, $3)`, r.tables.ArchiveColors)
		if _, err := exec.Exec(ctx, q, rec.ID, c.Color, c.ModelID); err != nil {
			return fmt.Errorf("insert archive color: %w", err)
		}
	}
	for _, s := range rec.Styles {
		q := fmt.Sprintf(`INSERT INTO %s (record_id, style) VALUES ($1, $2)`, r.tables.ArchiveStyles)
		if _, err := exec.Exec(ctx, q, rec.ID, s); err != nil {
			return fmt.Errorf("insert archive style: %w", err)
		}
	}
	for _, room := range rec.Rooms {
		q := fmt.Sprintf(`INSERT INTO %s (record_id, room) VALUES ($1, $2)`, r.tables.ArchiveRooms)
		if _, err := exec.Exec(ctx, q, rec.ID, room); err != nil {
			return fmt.Errorf("insert archive room: %w", err)
		}
	}
	return nil
}

const archiveColumns = "id, source_id, company_id, object_id, name, price, width, height, depth, active, archived_at"

// GetByID retrieves a record with its side lists
func (r *PostgresArchiveRepository) GetByID(ctx context.Context, id int64) (*models.ArchiveRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, archiveColumns, r.tables.Archive)

	var rec models.ArchiveRecord
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.SourceID, &rec.CompanyID, &rec.ObjectID, &rec.Name,
		&rec.Price, &rec.Width, &rec.Height, &rec.Depth, &rec.Active, &rec.ArchivedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("archive record %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get archive record: %w", err)
	}

	if err := r.loadSideLists(ctx, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByCompany retrieves a company's archive records
func (r *PostgresArchiveRepository) ListByCompany(ctx context.Context, companyID int64) ([]models.ArchiveRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE company_id = $1 ORDER BY archived_at DESC
	`, archiveColumns, r.tables.Archive)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list archive records: %w", err)
	}
	defer rows.Close()

	records := []models.ArchiveRecord{}
	for rows.Next() {
		var rec models.ArchiveRecord
		err := rows.Scan(
			&rec.ID, &rec.SourceID, &rec.CompanyID, &rec.ObjectID, &rec.Name,
			&rec.Price, &rec.Width, &rec.Height, &rec.Depth, &rec.Active, &rec.ArchivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan archive record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive records: %w", err)
	}

	for i := range records {
		if err := r.loadSideLists(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Delete removes a record and its side rows
func (r *PostgresArchiveRepository) Delete(ctx context.Context, id int64) error {
	exec := GetExecutor(ctx, r.pool)

	for _, table := range []string{r.tables.ArchiveColors, r.tables.ArchiveStyles, r.tables.ArchiveRooms} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE record_id = $1`, table)
		if _, err := exec.Exec(ctx, query, id); err != nil {
			return fmt.Errorf("delete archive side rows: %w", err)
		}
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Archive)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete archive record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("archive record %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresArchiveRepository) loadSideLists(ctx context.Context, rec *models.ArchiveRecord) error {
	exec := GetExecutor(ctx, r.pool)

	colorQuery := fmt.Sprintf(`SELECT color, model_id FROM %s WHERE record_id = $1`, r.tables.ArchiveColors)
	rows, err := exec.Query(ctx, colorQuery, rec.ID)
	if err != nil {
		return fmt.Errorf("load archive colors: %w", err)
	}
	rec.Colors = []models.ItemColor{}
	for rows.Next() {
		var c models.ItemColor
		if err := rows.Scan(&c.Color, &c.ModelID); err != nil {
			rows.Close()
			return fmt.Errorf("scan archive color: %w", err)
		}
		rec.Colors = append(rec.Colors, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate archive colors: %w", err)
	}

	rec.Styles, err = r.loadStrings(ctx, r.tables.ArchiveStyles, "style", rec.ID)
	if err != nil {
		return err
	}
	rec.Rooms, err = r.loadStrings(ctx, r.tables.ArchiveRooms, "room", rec.ID)
	return err
}

func (r *PostgresArchiveRepository) loadStrings(ctx context.Context, table, column string, recordID int64) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE record_id = $1`, column, table)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("load archive %s rows: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan archive %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive %s rows: %w", column, err)
	}
	return values, nil
}
