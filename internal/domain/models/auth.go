package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the JWT claims carried by a session token. The
// subject claim is the user id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}
