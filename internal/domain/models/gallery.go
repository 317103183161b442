package models

import "time"

// Gallery is a published interior-design scene. Visibility false means
// the gallery is private: viewable only by its owner or an admin.
type Gallery struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Room        string    `json:"room"`
	Style       string    `json:"style"`
	ModelData   string    `json:"model_data"`
	Visibility  bool      `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID implements policy.Resource.
func (g Gallery) OwnerID() int64 { return g.UserID }

// Visible implements policy.Resource.
func (g Gallery) Visible() bool { return g.Visibility }

// Comment is attached to a gallery. It carries no visibility flag of
// its own: it is visible iff its gallery is visible to the viewer and
// no block stands between viewer and author.
type Comment struct {
	ID        int64     `json:"id"`
	GalleryID int64     `json:"gallery_id"`
	UserID    int64     `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized author fields for feed rendering. AuthorLastName is
	// subject to the wall display transform after filtering.
	AuthorFirstName string `json:"author_first_name,omitempty"`
	AuthorLastName  string `json:"author_last_name,omitempty"`
}

// OwnerID implements policy.Resource; a comment's owner is its author.
func (c Comment) OwnerID() int64 { return c.UserID }

// Visible implements policy.Resource. Comments carry no flag of their
// own; gallery visibility is enforced before the feed is filtered.
func (c Comment) Visible() bool { return true }

// Like marks a user's appreciation of a gallery. One per (gallery, user).
type Like struct {
	GalleryID int64     `json:"gallery_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteGallery bookmarks a gallery for a user.
type FavoriteGallery struct {
	ID        int64     `json:"id"`
	GalleryID int64     `json:"gallery_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteFurniture bookmarks a catalog item for a user.
type FavoriteFurniture struct {
	ID          int64     `json:"id"`
	FurnitureID int64     `json:"furniture_id"`
	UserID      int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlockEdge is a directed "blocker blocks blocked" relationship.
// Storage is asymmetric; the visibility effect is symmetric (either
// direction hides the pair's content from each other).
type BlockEdge struct {
	BlockerID int64     `json:"blocker_id"`
	BlockedID int64     `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
