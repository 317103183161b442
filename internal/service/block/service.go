// Package block implements the user-blocking operations over the
// directed block graph.
package block

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// Service manages block edges. Creation and removal are idempotence-
// checked: duplicate creates and removes of absent edges fail with
// specific conflict errors and never corrupt existing edges.
type Service struct {
	blocks repositories.BlockRepository
	logger *slog.Logger
}

// NewService creates a new block service
func NewService(blocks repositories.BlockRepository, logger *slog.Logger) *Service {
	return &Service{
		blocks: blocks,
		logger: logger,
	}
}

// Block creates the edge actor->target.
func (s *Service) Block(ctx context.Context, actor *models.Actor, targetID int64) error {
	if actor.ID == targetID {
		return &domain.ValidationError{Message: domain.ErrSelfBlock.Error()}
	}

	if err := s.blocks.Create(ctx, actor.ID, targetID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return &domain.ConflictError{Message: domain.ErrAlreadyBlocked.Error()}
		}
		return fmt.Errorf("block user: %w", err)
	}

	s.logger.Info("user blocked",
		"blocker_id", actor.ID,
		"blocked_id", targetID,
	)
	return nil
}

// Unblock removes the edge actor->target.
func (s *Service) Unblock(ctx context.Context, actor *models.Actor, targetID int64) error {
	if err := s.blocks.Remove(ctx, actor.ID, targetID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ConflictError{Message: domain.ErrNotBlocked.Error()}
		}
		return fmt.Errorf("unblock user: %w", err)
	}

	s.logger.Info("user unblocked",
		"blocker_id", actor.ID,
		"blocked_id", targetID,
	)
	return nil
}

// ListBlocking returns the ids the actor blocks.
func (s *Service) ListBlocking(ctx context.Context, actor *models.Actor) ([]int64, error) {
	ids, err := s.blocks.ListBlocking(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	return ids, nil
}

// IsBlocking reports whether the actor blocks targetID.
func (s *Service) IsBlocking(ctx context.Context, actor *models.Actor, targetID int64) (bool, error) {
	blocking, err := s.blocks.Blocks(ctx, actor.ID, targetID)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return blocking, nil
}
