// Package comment implements gallery comment feeds and mutations.
package comment

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

// CreateRequest carries a new comment body.
type CreateRequest struct {
	Comment string `json:"comment"`
}

// Service implements comment operations
type Service struct {
	comments  repositories.CommentRepository
	galleries repositories.GalleryRepository
	users     repositories.UserRepository
	engine    *policy.Engine
	logger    *slog.Logger
}

// NewService creates a new comment service
func NewService(
	comments repositories.CommentRepository,
	galleries repositories.GalleryRepository,
	users repositories.UserRepository,
	engine *policy.Engine,
	logger *slog.Logger,
) *Service {
	return &Service{
		comments:  comments,
		galleries: galleries,
		users:     users,
		engine:    engine,
		logger:    logger,
	}
}

// ListForGallery returns the comment feed as the actor may see it.
//
// The gallery's own visibility is decided first; then the feed is
// content-filtered against the actor's block set; finally author last
// names are masked per each author's wall display setting. The mask
// runs strictly after the filter so a blanked name can never stand in
// for an excluded comment.
func (s *Service) ListForGallery(ctx context.Context, actor *models.Actor, galleryID int64) ([]models.Comment, error) {
	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByGallery(ctx, galleryID)
	if err != nil {
		return nil, err
	}

	blocked, err := s.engine.BlockedSet(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	comments = policy.Filter(actor, blocked, comments)

	authorIDs := make([]int64, 0, len(comments))
	seen := map[int64]struct{}{}
	for _, c := range comments {
		if _, dup := seen[c.UserID]; dup {
			continue
		}
		seen[c.UserID] = struct{}{}
		authorIDs = append(authorIDs, c.UserID)
	}

	wall, err := s.users.WallDisplaySettings(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	policy.MaskCommentAuthors(actor, comments, func(userID int64) bool {
		return wall[userID]
	})

	return comments, nil
}

// Create posts a comment; the actor must be able to view the gallery
func (s *Service) Create(ctx context.Context, actor *models.Actor, galleryID int64, req *CreateRequest) (*models.Comment, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Comment, validation.Required, validation.Length(1, 1000)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.checkGalleryView(ctx, actor, galleryID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		GalleryID: galleryID,
		UserID:    actor.ID,
		Comment:   req.Comment,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"gallery_id", galleryID,
		"user_id", actor.ID,
	)
	return comment, nil
}

// Update edits a comment body; author or admin only
func (s *Service) Update(ctx context.Context, actor *models.Actor, id int64, req *CreateRequest) (*models.Comment, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Comment, validation.Required, validation.Length(1, 1000)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: "resource not found"}
		}
		return nil, err
	}

	decision, err := s.engine.Decide(ctx, actor, comment, policy.ActionModify)
	if err != nil {
		return nil, err
	}
	if decision.Denied() {
		return nil, decision.Err()
	}

	comment.Comment = req.Comment
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment updated", "id", id, "actor_id", actor.ID)
	return comment, nil
}

// Delete removes a comment; author or admin only
func (s *Service) Delete(ctx context.Context, actor *models.Actor, id int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "resource not found"}
		}
		return err
	}

	decision, err := s.engine.Decide(ctx, actor, comment, policy.ActionDelete)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return decision.Err()
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", "id", id, "actor_id", actor.ID)
	return nil
}

func (s *Service) checkGalleryView(ctx context.Context, actor *models.Actor, galleryID int64) error {
	gallery, err := s.galleries.GetByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.NotFoundError{Message: "resource not found"}
		}
		return err
	}

	decision, err := s.engine.Decide(ctx, actor, gallery, policy.ActionView)
	if err != nil {
		return err
	}
	if decision.Denied() {
		return decision.Err()
	}
	return nil
}
