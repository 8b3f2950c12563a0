// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/infra/persistence/model"
)

// reviewRepository implements the domain's ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review entity.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStoreNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrRatingOutOfRange
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// FindByStore retrieves all reviews for a store, newest first, with their
// authors joined in.
func (repo *reviewRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error) {
	var reviewMs []model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&reviewMs).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews by store")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for i := range reviewMs {
		reviews = append(reviews, toReviewDomain(&reviewMs[i]))
	}

	return reviews, nil
}

// --- Mapper Functions ---

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		AuthorID:  data.AuthorID,
		StoreID:   data.StoreID,
		Text:      data.Text,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		Author:    toReviewAuthor(data.Author),
	}
}

// toReviewAuthor reduces a joined author row to the public projection.
// The full user record never rides along on review payloads.
func toReviewAuthor(data *model.UserModel) *entity.ReviewAuthor {
	user := toUserDomain(data)
	if user == nil {
		return nil
	}

	return user.AsReviewAuthor()
}

// fromReviewDomain converts a domain Review entity to a GORM ReviewModel.
func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:       data.ID,
		AuthorID: data.AuthorID,
		StoreID:  data.StoreID,
		Text:     data.Text,
		Rating:   data.Rating,
	}
}
