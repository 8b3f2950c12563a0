// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"storemap/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID, hearts included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetToken retrieves the user holding the given reset token
	// with an expiry after the given instant. Returns ErrUserNotFound when
	// the token is unknown or expired.
	FindByResetToken(ctx context.Context, token string, after time.Time) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage, reset-token
	// fields included.
	Update(ctx context.Context, user *entity.User) error

	// AddHeart adds a store to the user's favorite set. Adding an already
	// present store is a no-op (set semantics).
	AddHeart(ctx context.Context, userID, storeID uuid.UUID) error

	// RemoveHeart removes a store from the user's favorite set.
	RemoveHeart(ctx context.Context, userID, storeID uuid.UUID) error
}
