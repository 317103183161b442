package models

import "time"

// CatalogItem is one furniture object in a company's catalog.
//
// Two flags govern its lifecycle: Active false hides the item from
// everyone but the owning company and admins; Archived true removes it
// from normal catalog queries entirely (it then lives on only as an
// ArchiveRecord until restored or purged). ObjectID is unique among
// non-archived items; an archived item's ObjectID may be reused by a
// fresh item, which is what makes restore collisions possible.
type CatalogItem struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	ObjectID  string    `json:"object_id"`
	Name      string    `json:"name"`
	Price     int       `json:"price"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Depth     int       `json:"depth"`
	Active    bool      `json:"active"`
	Archived  bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	Colors []ItemColor `json:"colors"`
	Styles []string    `json:"styles"`
	Rooms  []string    `json:"rooms"`
}

// OwnerID implements policy.Resource; the owning company is the owner.
func (i CatalogItem) OwnerID() int64 { return i.CompanyID }

// Visible implements policy.Resource.
func (i CatalogItem) Visible() bool { return i.Active && !i.Archived }

// ItemColor is one available color variant, pointing at the 3D model
// asset for that variant.
type ItemColor struct {
	Color   string `json:"color"`
	ModelID int64  `json:"model_id"`
}

// ArchiveRecord is a structural copy of a CatalogItem taken at delete
// time, including its side lists. It is the only source a restore can
// rebuild from, and it is removed exactly once a restore succeeds.
type ArchiveRecord struct {
	ID         int64     `json:"id"`
	SourceID   int64     `json:"source_id"`
	CompanyID  int64     `json:"company_id"`
	ObjectID   string    `json:"object_id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Depth      int       `json:"depth"`
	Active     bool      `json:"active"`
	ArchivedAt time.Time `json:"archived_at"`

	Colors []ItemColor `json:"colors"`
	Styles []string    `json:"styles"`
	Rooms  []string    `json:"rooms"`
}
