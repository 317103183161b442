package auth

import (
	"context"

	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// TokenVerifier defines the interface for session token verification.
// This abstraction keeps the resolver agnostic to how tokens are
// signed; tests substitute a static implementation.
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed
	// claims. Returns an error if the token is invalid, expired, or has
	// an invalid signature.
	VerifyToken(tokenString string) (*models.SessionClaims, error)

	// Close releases any resources held by the verifier (e.g. HTTP
	// connections for JWKS refresh).
	Close() error
}

// ActorResolver resolves a session token to the acting user.
type ActorResolver interface {
	// ResolveActor verifies the token and loads the backing user.
	// Returns domain.ErrUnauthenticated for a missing or invalid token
	// and domain.ErrActorNotFound when the token verifies but the user
	// row no longer exists. The two must stay distinct: the first maps
	// to 401, the second to 403.
	ResolveActor(ctx context.Context, token string) (*models.Actor, error)
}
