// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storemap/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReviewNotFound is a domain-specific error returned when a review is not found.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review entity.
	Create(ctx context.Context, review *entity.Review) error

	// FindByStore retrieves all reviews for a store, newest first, with
	// their authors joined in.
	FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error)
}
