package impl

import (
	"context"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storemap/internal/domain/entity"
	"storemap/internal/domain/repository"
	"storemap/internal/domain/service"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, token string, after time.Time) (*entity.User, error) {
	args := m.Called(ctx, token, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	args := m.Called(ctx, userID, storeID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveHeart(ctx context.Context, userID, storeID uuid.UUID) error {
	args := m.Called(ctx, userID, storeID)
	return args.Error(0)
}

// MockAuthRepository is a mock implementation of repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)
	return args.Error(0)
}

func (m *MockAuthRepository) FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Authentication), args.Error(1)
}

func (m *MockAuthRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockAuthRepository) UpdateProviderUserID(ctx context.Context, userID uuid.UUID, providerUserID string) error {
	args := m.Called(ctx, userID, providerUserID)
	return args.Error(0)
}

func (m *MockAuthRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RefreshToken), args.Error(1)
}

func (m *MockAuthRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of repository.StoreRepository.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) FindBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Store, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context, offset, limit int) ([]*entity.Store, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entity.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) FindByTag(ctx context.Context, tag string) ([]*entity.Store, error) {
	args := m.Called(ctx, tag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) CountSlugMatches(ctx context.Context, slug string, excludeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) TagCounts(ctx context.Context) ([]*entity.TagCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TagCount), args.Error(1)
}

func (m *MockStoreRepository) TopStores(ctx context.Context, minReviews, limit int) ([]*entity.RankedStore, error) {
	args := m.Called(ctx, minReviews, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.RankedStore), args.Error(1)
}

func (m *MockStoreRepository) FindWithinBox(ctx context.Context, minLng, minLat, maxLng, maxLat float64) ([]*entity.Store, error) {
	args := m.Called(ctx, minLng, minLat, maxLng, maxLat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Store), args.Error(1)
}

func (m *MockStoreRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Store, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Store), args.Error(1)
}

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

// MockPhotoService is a mock implementation of service.PhotoService.
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Process(ctx context.Context, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, r, contentType)
	return args.String(0), args.Error(1)
}

// MockMailer is a mock implementation of service.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, mail *service.PasswordResetMail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

// MockTokenService is a mock implementation of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	args := m.Called(tokenString, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockResetTokenGenerator is a mock implementation of service.ResetTokenGenerator.
type MockResetTokenGenerator struct {
	mock.Mock
}

func (m *MockResetTokenGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// stubRepoFactory hands the test's mocks back out of a transaction.
type stubRepoFactory struct {
	users   repository.UserRepository
	auths   repository.AuthRepository
	stores  repository.StoreRepository
	reviews repository.ReviewRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository     { return f.users }
func (f *stubRepoFactory) AuthRepo() repository.AuthRepository     { return f.auths }
func (f *stubRepoFactory) StoreRepo() repository.StoreRepository   { return f.stores }
func (f *stubRepoFactory) ReviewRepo() repository.ReviewRepository { return f.reviews }

// stubTxManager runs the callback against the stub factory without any
// real transaction semantics.
type stubTxManager struct {
	factory *stubRepoFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}
