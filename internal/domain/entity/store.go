// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Location is a geographic point with its human-readable address.
type Location struct {
	Longitude float64 `json:"lng"`
	Latitude  float64 `json:"lat"`
	Address   string  `json:"address"`
}

// Point returns the location as an orb point (lon/lat order).
func (l Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// Store is a single directory listing. Slug is derived from Name, unique
// across all stores, and recomputed only when the name changes.
type Store struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Location    Location  `json:"location"`
	Photo       string    `json:"photo"` // Generated filename of the uploaded photo, empty when none.
	AuthorID    uuid.UUID `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Reviews is a read-time join, populated by lookups that ask for it.
	// It is never stored on the record.
	Reviews []*Review `json:"reviews,omitempty"`
}

// OwnedBy reports whether the given user authored this store.
func (s *Store) OwnedBy(userID uuid.UUID) bool {
	return s.AuthorID == userID
}

// TagCount is one row of the tag aggregation: a tag and the number of
// stores carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RankedStore is one row of the top-stores ranking: a store projection with
// its mean review rating. Only stores with at least two reviews are ranked.
type RankedStore struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Photo         string    `json:"photo"`
	ReviewCount   int       `json:"review_count"`
	AverageRating float64   `json:"average_rating"`
}

// NearbyStore is the reduced projection returned by the proximity query.
type NearbyStore struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    Location `json:"location"`
	Photo       string   `json:"photo"`
}
