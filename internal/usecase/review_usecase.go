// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"storemap/internal/domain/entity"
)

// AddReviewInput defines the data required to leave a review on a store.
type AddReviewInput struct {
	AuthorID uuid.UUID
	StoreID  uuid.UUID
	Text     string
	Rating   int
}

// ReviewUsecase defines the interface for review-related business operations.
type ReviewUsecase interface {
	AddReview(ctx context.Context, input AddReviewInput) (*entity.Review, error)

	// StoreReviews lists a store's reviews, newest first, with their
	// authors joined in.
	StoreReviews(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error)
}
