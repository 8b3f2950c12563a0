// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"crypto/md5"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the directory. Email is unique and
// stored normalized (lowercase, trimmed). The password credential itself
// lives in a separate Authentication record.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Hearts    []uuid.UUID `json:"hearts"` // IDs of the stores this user has favorited.
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Reset-pending state for the password recovery flow. Both fields are
	// zero when no reset is pending and are cleared on a successful reset.
	ResetToken        string    `json:"-"`
	ResetTokenExpires time.Time `json:"-"`
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasHearted reports whether the given store is in the user's favorite set.
func (u *User) HasHearted(storeID uuid.UUID) bool {
	return slices.Contains(u.Hearts, storeID)
}

// ResetPending reports whether the user has an unexpired reset token.
func (u *User) ResetPending(now time.Time) bool {
	return u.ResetToken != "" && u.ResetTokenExpires.After(now)
}

// Gravatar returns the gravatar URL derived from the user's email.
func (u *User) Gravatar() string {
	hash := md5.Sum([]byte(NormalizeEmail(u.Email)))

	return fmt.Sprintf("https://gravatar.com/avatar/%x?s=200", hash)
}

// AsReviewAuthor reduces the user to the public projection attached to
// review payloads.
func (u *User) AsReviewAuthor() *ReviewAuthor {
	return &ReviewAuthor{
		Name:     u.Name,
		Gravatar: u.Gravatar(),
	}
}
