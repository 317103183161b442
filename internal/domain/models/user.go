package models

import "time"

// Role classifies an account. Companies own catalog items; admins
// bypass visibility and blocking on reads.
type Role string

const (
	RoleClient  Role = "client"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// User is a registered account. Registration itself is out of scope;
// the engine only reads these rows.
type User struct {
	ID            int64        `json:"id"`
	Email         string       `json:"email"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Role          Role         `json:"role"`
	CompanyAPIKey *string      `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	Settings      UserSettings `json:"settings"`
}

// UserSettings holds per-user presentation preferences.
type UserSettings struct {
	// DisplayLastNameOnWall permits showing the user's last name on
	// public comment feeds. A presentation preference, not an access
	// control.
	DisplayLastNameOnWall bool `json:"display_lastname_on_wall"`
}

// Actor is the authenticated requester as seen by the policy engine.
// Derived from a User at token resolution time; read-only afterwards.
type Actor struct {
	ID            int64
	Role          Role
	CompanyAPIKey *string
}

// IsAdmin reports whether the actor holds the admin role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// ActorOf builds the policy-engine view of a user.
func ActorOf(u *User) *Actor {
	if u == nil {
		return nil
	}
	return &Actor{
		ID:            u.ID,
		Role:          u.Role,
		CompanyAPIKey: u.CompanyAPIKey,
	}
}
