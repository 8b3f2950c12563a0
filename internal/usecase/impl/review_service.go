package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storemap/internal/delivery/context"
	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/usecase"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	storeRepo  repository.StoreRepository
	reviewRepo repository.ReviewRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for reviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	StoreRepo  repository.StoreRepository
	ReviewRepo repository.ReviewRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		storeRepo:  params.StoreRepo,
		reviewRepo: params.ReviewRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddReview leaves a review on a store. The rating bound and store
// existence are checked before anything is written.
func (srv *reviewService) AddReview(ctx context.Context, input usecase.AddReviewInput) (*entity.Review, error) {
	review := &entity.Review{
		AuthorID: input.AuthorID,
		StoreID:  input.StoreID,
		Text:     input.Text,
		Rating:   input.Rating,
	}

	if !review.RatingValid() {
		return nil, domainerrors.ErrRatingOutOfRange
	}

	if _, err := srv.storeRepo.FindByID(ctx, input.StoreID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store for review")
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Debug("Review added",
		slog.Any("storeID", review.StoreID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// StoreReviews lists a store's reviews, newest first.
func (srv *reviewService) StoreReviews(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error) {
	if _, err := srv.storeRepo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store for reviews")
	}

	reviews, err := srv.reviewRepo.FindByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
