package repositories

import (
	"context"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// CatalogRepository defines data access for catalog items. Archived
// items never surface through these methods; they exist only as
// archive records until restored.
type CatalogRepository interface {
	// Create inserts an item with its side lists. domain.ErrConflict if
	// the object id is already used by a non-archived item.
	Create(ctx context.Context, item *models.CatalogItem) error

	// GetByID retrieves a non-archived item with its side lists
	GetByID(ctx context.Context, id int64) (*models.CatalogItem, error)

	// GetByObjectID retrieves a non-archived item by object id
	GetByObjectID(ctx context.Context, objectID string) (*models.CatalogItem, error)

	// ListByCompany retrieves a company's non-archived items.
	// includeInactive adds items with active=false (owner/admin views).
	ListByCompany(ctx context.Context, companyID int64, includeInactive bool) ([]models.CatalogItem, error)

	// Update persists scalar field changes
	Update(ctx context.Context, item *models.CatalogItem) error

	// SetActive toggles the active flag
	SetActive(ctx context.Context, id int64, active bool) error

	// Delete removes the item and its side rows. The catalog lifecycle
	// only calls this inside the same transaction that created the
	// archive record.
	Delete(ctx context.Context, id int64) error
}

// ArchiveRepository stores archive records taken at delete time.
type ArchiveRepository interface {
	// Create inserts a record copied from an item, side lists included
	Create(ctx context.Context, rec *models.ArchiveRecord) error

	// GetByID retrieves a record with its side lists
	GetByID(ctx context.Context, id int64) (*models.ArchiveRecord, error)

	// ListByCompany retrieves a company's archive records
	ListByCompany(ctx context.Context, companyID int64) ([]models.ArchiveRecord, error)

	// Delete removes a record; called once its item is restored, or on purge
	Delete(ctx context.Context, id int64) error
}
