package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/repositories"
)

// Resolver implements ActorResolver over a token verifier and the user
// store.
type Resolver struct {
	verifier TokenVerifier
	users    repositories.UserRepository
	logger   *slog.Logger
}

// NewResolver creates a new actor resolver
func NewResolver(verifier TokenVerifier, users repositories.UserRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// ResolveActor verifies the token and loads the backing user.
//
// A token that fails verification is ErrUnauthenticated. A token that
// verifies but whose subject has no user row is ErrActorNotFound:
// authenticated but unauthorized. Collapsing the two would let a
// deleted account's token reveal which failure occurred, and would
// return the wrong status at the boundary.
func (r *Resolver) ResolveActor(ctx context.Context, token string) (*models.Actor, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := r.verifier.VerifyToken(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		r.logger.Debug("token subject is not a user id", "subject", claims.Subject)
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			r.logger.Info("valid token for missing user", "user_id", userID)
			return nil, domain.ErrActorNotFound
		}
		return nil, fmt.Errorf("load user for token: %w", err)
	}

	return models.ActorOf(user), nil
}
