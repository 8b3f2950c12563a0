// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderTypeEmail is the local email/password credential provider.
const ProviderTypeEmail = "email"

// Authentication represents a single login credential for a user. The
// directory only issues local email/password credentials, but the record
// keeps the provider discriminator so other strategies can be plugged in.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       string // e.g. "email".
	ProviderUserID string // The normalized email for the email provider.
	PasswordHash   string // bcrypt hash, only set for the email provider.
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized user session. Only a
// SHA-256 hash of the raw token is stored for comparison.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its expiry.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
