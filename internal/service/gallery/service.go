// Package gallery implements gallery CRUD with every read and write
// routed through the policy engine.
package gallery

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

// CreateRequest carries the fields for a new gallery.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Room        string `json:"room"`
	Style       string `json:"style"`
	ModelData   string `json:"model_data"`
	Visibility  bool   `json:"visibility"`
}

// UpdateRequest carries optional field changes; nil means unchanged.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Room        *string `json:"room"`
	Style       *string `json:"style"`
	ModelData   *string `json:"model_data"`
	Visibility  *bool   `json:"visibility"`
}

// Service implements gallery operations
type Service struct {
	galleries repositories.GalleryRepository
	engine    *policy.Engine
	logger    *slog.Logger
}

// NewService creates a new gallery service
func NewService(galleries repositories.GalleryRepository, engine *policy.Engine, logger *slog.Logger) *Service {
	return &Service{
		galleries: galleries,
		engine:    engine,
		logger:    logger,
	}
}

// Create creates a gallery owned by the actor
func (s *Service) Create(ctx context.Context, actor *models.Actor, req *CreateRequest) (*models.Gallery, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.ModelData, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	gallery := &models.Gallery{
		UserID:      actor.ID,
		Name:        req.Name,
		Description: req.Description,
		Room:        req.Room,
		Style:       req.Style,
		ModelData:   req.ModelData,
		Visibility:  req.Visibility,
	}

	if err := s.galleries.Create(ctx, gallery); err != nil {
		return nil, err
	}

	s.logger.Info("gallery created",
		"id", gallery.ID,
		"user_id", actor.ID,
		"visibility", gallery.Visibility,
	)
	return gallery, nil
}

// Get retrieves a gallery the actor may view. A denial surfaces with
// the uniform denied description regardless of whether the gallery is
// private or a block stands between the actor and its owner.
func (s *Service) Get(ctx context.Context, actor *models.Actor, id int64) (*models.Gallery, error) {
	gallery, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Decide(ctx, actor, gallery, policy.ActionView)
	if err != nil {
		return nil, err
	}
	if decision.Denied() {
		return nil, decision.Err()
	}
	return gallery, nil
}

// ListForUser returns the target user's galleries as the actor may see
// them: everything for the owner or an admin, content-filtered
// visible-only otherwise.
func (s *Service) ListForUser(ctx context.Context, actor *models.Actor, userID int64) ([]models.Gallery, error) {
	galleries, err := s.galleries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if actor.ID == userID || actor.IsAdmin() {
		return galleries, nil
	}

	blocked, err := s.engine.BlockedSet(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return policy.Filter(actor, blocked, galleries), nil
}

// ListPublic returns the public feed, content-filtered for the actor.
func (s *Service) ListPublic(ctx context.Context, actor *models.Actor, limit, offset int) ([]models.Gallery, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	galleries, err := s.galleries.ListPublic(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	blocked, err := s.engine.BlockedSet(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return policy.Filter(actor, blocked, galleries), nil
}

// Update applies field changes; owner or admin only
func (s *Service) Update(ctx context.Context, actor *models.Actor, id int64, req *UpdateRequest) (*models.Gallery, error) {
	if req.Name != nil {
		if err := validation.Validate(*req.Name, validation.Required, validation.Length(1, 100)); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
	}

	gallery, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Decide(ctx, actor, gallery, policy.ActionModify)
	if err != nil {
		return nil, err
	}
	if decision.Denied() {
		return nil, decision.Err()
	}

	if req.Name != nil {
		gallery.Name = *req.Name
	}
	if req.Description != nil {
		gallery.Description = *req.Description
	}
	if req.Room != nil {
		gallery.Room = *req.Room
	}
	if req.Style != nil {
		gallery.Style = *req.Style
	}
	if req.ModelData != nil {
		gallery.ModelData = *req.ModelData
	}
	if req.Visibility != nil {
		gallery.Visibility = *req.Visibility
	}

	if err := s.galleries.Update(ctx, gallery); err != nil {
		return nil, err
	}

	s.logger.Info("gallery updated", "id", id, "actor_id", actor.ID)
	return gallery, nil
}

// Delete removes a gallery; owner or admin only
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	gallery, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	decision, err := s.engine.Decide(ctx, actor, gallery, policy.ActionDelete)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return decision.Err()
	}

	if err := s.galleries.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("gallery deleted", "id", id, "actor_id", actor.ID)
	return nil
}

// fetch loads a gallery, normalizing repository not-found into the
// policy engine's absent-resource denial so handlers see one shape.
func (s *Service) fetch(ctx context.Context, id int64) (*models.Gallery, error) {
	gallery, err := s.galleries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "resource not found"}
		}
		return nil, err
	}
	return gallery, nil
}
