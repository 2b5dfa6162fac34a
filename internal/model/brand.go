package model

import "time"

// Brand represents a phone manufacturer tracked by the workshop
// catalog.  Brand names are unique (case-insensitive); brands are
// never mutated or deleted once created.  This struct corresponds
// to a row in the `brands` table.
type Brand struct {
	ID        string    `json:"id"`         // brands.id
	Name      string    `json:"name"`       // brands.name
	CreatedAt time.Time `json:"created_at"` // brands.created_at
}

// Model represents a phone model belonging to exactly one brand.
// The Brand pointer is a denormalized snapshot attached on joined
// listings; BrandID is the authoritative reference.  This struct
// corresponds to a row in the `models` table.
type Model struct {
	ID        string    `json:"id"`              // models.id
	Name      string    `json:"name"`            // models.name
	BrandID   string    `json:"brand_id"`        // models.brand_id
	CreatedAt time.Time `json:"created_at"`      // models.created_at
	Brand     *Brand    `json:"brand,omitempty"` // joined brand snapshot
}
