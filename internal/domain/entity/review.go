// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating and free-text comment a user left on a store.
// Rating is bounded to [MinRating, MaxRating]; author and store must
// reference existing records at write time.
type Review struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`

	// Author is a read-time join populated by lookups that ask for it.
	Author *ReviewAuthor `json:"author,omitempty"`
}

// ReviewAuthor is the public projection of a review's author. Reviews ship
// on anonymous store pages, so the projection carries only what those pages
// render and never the author's email or account state.
type ReviewAuthor struct {
	Name     string `json:"name"`
	Gravatar string `json:"gravatar"`
}

// RatingValid reports whether the rating is within the allowed bounds.
func (r *Review) RatingValid() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}
