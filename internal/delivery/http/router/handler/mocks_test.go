package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storemap/internal/domain/entity"
	"storemap/internal/usecase"
)

// MockUserUsecase is a mock of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *MockUserUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *MockUserUsecase) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)

	return args.Error(0)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*entity.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

// MockAccountUsecase is a mock of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) ForgotPassword(ctx context.Context, input usecase.ForgotPasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAccountUsecase) ValidateResetToken(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUsecase) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *MockAccountUsecase) ToggleHeart(ctx context.Context, userID, storeID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAccountUsecase) HeartedStores(ctx context.Context, userID uuid.UUID) ([]*entity.Store, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Store), args.Error(1)
}

// MockStoreUsecase is a mock of usecase.StoreUsecase.
type MockStoreUsecase struct {
	mock.Mock
}

func (m *MockStoreUsecase) CreateStore(ctx context.Context, input usecase.CreateStoreInput) (*entity.Store, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUsecase) UpdateStore(ctx context.Context, input usecase.UpdateStoreInput) (*entity.Store, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUsecase) GetStoreBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUsecase) GetStoreForEdit(ctx context.Context, storeID, editorID uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, storeID, editorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreUsecase) ListStores(ctx context.Context, page int) (*usecase.StorePage, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.StorePage), args.Error(1)
}

func (m *MockStoreUsecase) StoresByTag(ctx context.Context, tag string) (*usecase.TagPage, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.TagPage), args.Error(1)
}

func (m *MockStoreUsecase) TopStores(ctx context.Context) ([]*entity.RankedStore, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RankedStore), args.Error(1)
}

func (m *MockStoreUsecase) NearbyStores(ctx context.Context, lng, lat float64) ([]*entity.NearbyStore, error) {
	args := m.Called(ctx, lng, lat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.NearbyStore), args.Error(1)
}

func (m *MockStoreUsecase) SearchStores(ctx context.Context, query string) ([]*entity.Store, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Store), args.Error(1)
}

// MockReviewUsecase is a mock of usecase.ReviewUsecase.
type MockReviewUsecase struct {
	mock.Mock
}

func (m *MockReviewUsecase) AddReview(ctx context.Context, input usecase.AddReviewInput) (*entity.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewUsecase) StoreReviews(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Review), args.Error(1)
}
