// Package catalog implements the furniture catalog and its
// archive/restore lifecycle. Every entry point is gated by the
// company/admin policy check; deletion and restore run inside store
// transactions so the archive invariants hold under concurrency.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/policy"
)

// CreateRequest carries the fields for a new catalog item.
type CreateRequest struct {
	ObjectID string             `json:"object_id"`
	Name     string             `json:"name"`
	Price    int                `json:"price"`
	Width    int                `json:"width"`
	Height   int                `json:"height"`
	Depth    int                `json:"depth"`
	Active   bool               `json:"active"`
	Colors   []models.ItemColor `json:"colors"`
	Styles   []string           `json:"styles"`
	Rooms    []string           `json:"rooms"`
}

// ItemFailure reports one item of a batch delete that could not be
// archived.
type ItemFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult reports the per-item outcome of a batch delete. Items in
// Succeeded are already archived and are not rolled back by later
// failures; each item's archive+delete pair is atomic on its own.
type BatchResult struct {
	Succeeded []int64       `json:"succeeded"`
	Failed    []ItemFailure `json:"failed"`
}

// Service implements catalog operations and the archive lifecycle
type Service struct {
	catalog repositories.CatalogRepository
	archive repositories.ArchiveRepository
	tx      repositories.TransactionManager
	engine  *policy.Engine
	logger  *slog.Logger
}

// NewService creates a new catalog service
func NewService(
	catalog repositories.CatalogRepository,
	archive repositories.ArchiveRepository,
	tx repositories.TransactionManager,
	engine *policy.Engine,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog: catalog,
		archive: archive,
		tx:      tx,
		engine:  engine,
		logger:  logger,
	}
}

// Create adds an item to the company's catalog
func (s *Service) Create(ctx context.Context, actor *models.Actor, companyID int64, apiKey string, req *CreateRequest) (*models.CatalogItem, error) {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return nil, decision.Err()
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.ObjectID, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Price, validation.Min(0)),
		validation.Field(&req.Width, validation.Min(0)),
		validation.Field(&req.Height, validation.Min(0)),
		validation.Field(&req.Depth, validation.Min(0)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	item := &models.CatalogItem{
		CompanyID: companyID,
		ObjectID:  req.ObjectID,
		Name:      req.Name,
		Price:     req.Price,
		Width:     req.Width,
		Height:    req.Height,
		Depth:     req.Depth,
		Active:    req.Active,
		Colors:    req.Colors,
		Styles:    req.Styles,
		Rooms:     req.Rooms,
	}

	err := s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		return s.catalog.Create(txCtx, item)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, &domain.ConflictError{Message: fmt.Sprintf("object id %q already in use", req.ObjectID)}
		}
		return nil, err
	}

	s.logger.Info("catalog item created",
		"id", item.ID,
		"company_id", companyID,
		"object_id", item.ObjectID,
	)
	return item, nil
}

// Get retrieves an item. Inactive items are visible only to the owning
// company or an admin.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id int64) (*models.CatalogItem, error) {
	item, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "resource not found"}
		}
		return nil, err
	}

	if !item.Active && item.CompanyID != actor.ID && !actor.IsAdmin() {
		return nil, &domain.NotFoundError{Message: "resource not found"}
	}
	return item, nil
}

// List retrieves a company's catalog. The owning company and admins
// also see inactive items.
func (s *Service) List(ctx context.Context, actor *models.Actor, companyID int64) ([]models.CatalogItem, error) {
	includeInactive := actor.ID == companyID || actor.IsAdmin()
	return s.catalog.ListByCompany(ctx, companyID, includeInactive)
}

// Delete archives one item and removes it from the active catalog.
//
// The copy, the integrity check and the delete share one transaction:
// if the archive record cannot be produced and verified, the item is
// left exactly as it was and the operation fails. No reader ever
// observes the item gone without its archive record existing.
func (s *Service) Delete(ctx context.Context, actor *models.Actor, companyID int64, apiKey string, itemID int64) error {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return decision.Err()
	}
	return s.deleteOne(ctx, companyID, itemID)
}

// DeleteArray archives several items with the same per-item guarantee
// as Delete. A failure partway stops nothing: every item is attempted
// and the result reports which succeeded and which failed.
func (s *Service) DeleteArray(ctx context.Context, actor *models.Actor, companyID int64, apiKey string, itemIDs []int64) (*BatchResult, error) {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return nil, decision.Err()
	}

	result := &BatchResult{Succeeded: []int64{}, Failed: []ItemFailure{}}
	for _, id := range itemIDs {
		if err := s.deleteOne(ctx, companyID, id); err != nil {
			result.Failed = append(result.Failed, ItemFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result, nil
}

// DeleteAllForCompany archives the company's entire catalog, item by
// item, with the same per-item guarantee as Delete.
func (s *Service) DeleteAllForCompany(ctx context.Context, actor *models.Actor, companyID int64, apiKey string) (*BatchResult, error) {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return nil, decision.Err()
	}

	items, err := s.catalog.ListByCompany(ctx, companyID, true)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Succeeded: []int64{}, Failed: []ItemFailure{}}
	for _, item := range items {
		if err := s.deleteOne(ctx, companyID, item.ID); err != nil {
			result.Failed = append(result.Failed, ItemFailure{ID: item.ID, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, item.ID)
	}
	return result, nil
}

// Restore rebuilds an active catalog item from an archive record.
//
// The object id collision check runs inside the same transaction as
// the insert, so two racing restores (or a restore racing a fresh
// create with the reused object id) cannot both pass the pre-check and
// both insert; the loser fails with the duplicate conflict. Side lists
// are always recreated from the record: the originals were deleted
// with the archived parent. The record is removed only after the item
// is rebuilt, giving at most one restore per record.
func (s *Service) Restore(ctx context.Context, actor *models.Actor, companyID int64, apiKey string, recordID int64) (*models.CatalogItem, error) {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return nil, decision.Err()
	}

	rec, err := s.archive.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "resource not found"}
		}
		return nil, err
	}
	if rec.CompanyID != companyID && !actor.IsAdmin() {
		return nil, &domain.NotFoundError{Message: "resource not found"}
	}

	item := &models.CatalogItem{
		CompanyID: rec.CompanyID,
		ObjectID:  rec.ObjectID,
		Name:      rec.Name,
		Price:     rec.Price,
		Width:     rec.Width,
		Height:    rec.Height,
		Depth:     rec.Depth,
		Active:    rec.Active,
		Colors:    rec.Colors,
		Styles:    rec.Styles,
		Rooms:     rec.Rooms,
	}

	err = s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		_, err := s.catalog.GetByObjectID(txCtx, rec.ObjectID)
		if err == nil {
			return fmt.Errorf("restore record %d: %w", recordID, domain.ErrDuplicateObjectID)
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check object id collision: %w", err)
		}

		if err := s.catalog.Create(txCtx, item); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// Lost a race with a concurrent insert of the same
				// object id; same outcome as the pre-check.
				return fmt.Errorf("restore record %d: %w", recordID, domain.ErrDuplicateObjectID)
			}
			return err
		}

		return s.archive.Delete(txCtx, recordID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateObjectID) {
			return nil, &domain.ConflictError{Message: fmt.Sprintf("object id %q already in use", rec.ObjectID)}
		}
		return nil, err
	}

	s.logger.Info("catalog item restored",
		"id", item.ID,
		"record_id", recordID,
		"company_id", rec.CompanyID,
		"object_id", item.ObjectID,
	)
	return item, nil
}

// ListArchive retrieves the company's archive records
func (s *Service) ListArchive(ctx context.Context, actor *models.Actor, companyID int64, apiKey string) ([]models.ArchiveRecord, error) {
	if decision := s.engine.DecideCompany(actor, companyID, apiKey); decision.Denied() {
		return nil, decision.Err()
	}
	return s.archive.ListByCompany(ctx, companyID)
}

// deleteOne runs the archive-then-delete pair for a single item inside
// one transaction.
func (s *Service) deleteOne(ctx context.Context, companyID, itemID int64) error {
	var archivedID int64

	err := s.tx.ExecTx(ctx, func(txCtx context.Context) error {
		item, err := s.catalog.GetByID(txCtx, itemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.NotFoundError{Message: "resource not found"}
			}
			return err
		}
		if item.CompanyID != companyID {
			return &domain.NotFoundError{Message: "resource not found"}
		}

		rec := &models.ArchiveRecord{
			SourceID:  item.ID,
			CompanyID: item.CompanyID,
			ObjectID:  item.ObjectID,
			Name:      item.Name,
			Price:     item.Price,
			Width:     item.Width,
			Height:    item.Height,
			Depth:     item.Depth,
			Active:    item.Active,
			Colors:    item.Colors,
			Styles:    item.Styles,
			Rooms:     item.Rooms,
		}
		if err := s.archive.Create(txCtx, rec); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
		}

		// Integrity check: re-read the stored record and verify it
		// matches the source before the item is removed. Any mismatch
		// rolls the whole pair back, leaving the item untouched.
		stored, err := s.archive.GetByID(txCtx, rec.ID)
		if err != nil {
			return fmt.Errorf("%w: verify archive record: %v", domain.ErrArchiveFailed, err)
		}
		if stored.ObjectID != item.ObjectID ||
			len(stored.Colors) != len(item.Colors) ||
			len(stored.Styles) != len(item.Styles) ||
			len(stored.Rooms) != len(item.Rooms) {
			return fmt.Errorf("%w: archive record does not match source item %d", domain.ErrArchiveFailed, item.ID)
		}

		if err := s.catalog.Delete(txCtx, item.ID); err != nil {
			return fmt.Errorf("%w: remove active item: %v", domain.ErrArchiveFailed, err)
		}

		archivedID = rec.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrArchiveFailed) {
			s.logger.Error("archive failed, item left untouched",
				"item_id", itemID,
				"company_id", companyID,
				"error", err,
			)
			return &domain.IntegrityError{Message: err.Error()}
		}
		return err
	}

	s.logger.Info("catalog item archived",
		"item_id", itemID,
		"record_id", archivedID,
		"company_id", companyID,
	)
	return nil
}
