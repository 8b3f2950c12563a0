package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/infra/auth"
	"storemap/internal/usecase"
)

func newUserServiceForTest(users *MockUserRepository, auths *MockAuthRepository, tokens *MockTokenService) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:    &stubTxManager{factory: &stubRepoFactory{users: users, auths: auths}},
		UserRepo:     users,
		AuthRepo:     auths,
		Hasher:       auth.NewBcryptHasher(nil),
		TokenService: tokens,
		Logger:       slog.Default(),
	})
}

func expectSessionIssued(auths *MockAuthRepository, tokens *MockTokenService) {
	tokens.On("GenerateTokens", mock.AnythingOfType("uuid.UUID")).Return("access-token", "refresh-token", nil).Once()
	tokens.On("GetRefreshTokenDuration").Return(7 * 24 * time.Hour).Once()
	auths.On("CreateRefreshToken", mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(nil).Once()
}

func TestUserService_Register(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	newID := uuid.New()
	auths.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "wes@example.com").
		Return(nil, repository.ErrAuthNotFound).Once()
	users.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.User).ID = newID
		}).
		Return(nil).Once()
	auths.On("CreateAuthentication", mock.Anything, mock.AnythingOfType("*entity.Authentication")).
		Return(nil).Once()
	expectSessionIssued(auths, tokens)

	output, err := srv.Register(context.Background(), usecase.RegisterUserInput{
		Name:            "Wes",
		Email:           "  Wes@Example.COM ",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, newID, output.User.ID)
	assert.Equal(t, "wes@example.com", output.User.Email) // normalized before storage

	users.AssertExpectations(t)
	auths.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestUserService_Register_PasswordMismatch(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	_, err := srv.Register(context.Background(), usecase.RegisterUserInput{
		Name:            "Wes",
		Email:           "wes@example.com",
		Password:        "password123",
		PasswordConfirm: "different456",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordMismatch))

	// Nothing may be written when the confirmation fails.
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	auths.AssertNotCalled(t, "CreateAuthentication", mock.Anything, mock.Anything)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	_, err := srv.Register(context.Background(), usecase.RegisterUserInput{
		Name:            "Wes",
		Email:           "wes@example.com",
		Password:        "short",
		PasswordConfirm: "short",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooWeak))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	auths.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "wes@example.com").
		Return(&entity.Authentication{UserID: uuid.New()}, nil).Once()

	_, err := srv.Register(context.Background(), usecase.RegisterUserInput{
		Name:            "Wes",
		Email:           "wes@example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	hasher := auth.NewBcryptHasher(nil)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "wes@example.com", Name: "Wes"}

	auths.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "wes@example.com").
		Return(&entity.Authentication{UserID: userID, PasswordHash: hash}, nil).Once()
	users.On("FindByID", mock.Anything, userID).Return(user, nil).Once()
	expectSessionIssued(auths, tokens)

	output, err := srv.Login(context.Background(), usecase.LoginInput{
		Email:    "Wes@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)

	auths.AssertExpectations(t)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	hasher := auth.NewBcryptHasher(nil)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	auths.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "wes@example.com").
		Return(&entity.Authentication{UserID: uuid.New(), PasswordHash: hash}, nil).Once()

	_, err = srv.Login(context.Background(), usecase.LoginInput{
		Email:    "wes@example.com",
		Password: "not-the-password",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	tokens.AssertNotCalled(t, "GenerateTokens", mock.Anything)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	auths.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound).Once()

	_, err := srv.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	auths.On("DeleteRefreshTokenByHash", mock.Anything, hashRefreshToken("raw-refresh-token")).
		Return(nil).Once()

	assert.NoError(t, srv.Logout(context.Background(), "raw-refresh-token"))
	auths.AssertExpectations(t)

	// An empty token is a no-op, not an error.
	assert.NoError(t, srv.Logout(context.Background(), ""))
}

func TestUserService_Refresh(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	userID := uuid.New()
	tokenHash := hashRefreshToken("raw-refresh-token")

	auths.On("FindRefreshTokenByHash", mock.Anything, tokenHash).
		Return(&entity.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	users.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "wes@example.com"}, nil).Once()
	// The presented token is rotated out before the new session is issued.
	auths.On("DeleteRefreshTokenByHash", mock.Anything, tokenHash).Return(nil).Once()
	expectSessionIssued(auths, tokens)

	output, err := srv.Refresh(context.Background(), "raw-refresh-token")
	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)

	auths.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestUserService_Refresh_ExpiredToken(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	tokenHash := hashRefreshToken("stale-token")

	auths.On("FindRefreshTokenByHash", mock.Anything, tokenHash).
		Return(&entity.RefreshToken{UserID: uuid.New(), TokenHash: tokenHash, ExpiresAt: time.Now().Add(-time.Minute)}, nil).Once()
	auths.On("DeleteRefreshTokenByHash", mock.Anything, tokenHash).Return(nil).Once()

	_, err := srv.Refresh(context.Background(), "stale-token")
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))

	// The expired row is removed but no new session comes out of it.
	auths.AssertExpectations(t)
	tokens.AssertNotCalled(t, "GenerateTokens", mock.Anything)
}

func TestUserService_Refresh_UnknownToken(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	auths.On("FindRefreshTokenByHash", mock.Anything, mock.AnythingOfType("string")).
		Return(nil, repository.ErrTokenNotFound).Once()

	_, err := srv.Refresh(context.Background(), "never-issued")
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_Refresh_EmptyToken(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	_, err := srv.Refresh(context.Background(), "")
	assert.True(t, errors.Is(err, domainerrors.ErrNotAuthenticated))
	auths.AssertNotCalled(t, "FindRefreshTokenByHash", mock.Anything, mock.Anything)
}

func TestUserService_UpdateAccount(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	userID := uuid.New()
	users.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "old@example.com", Name: "Old"}, nil).Once()
	users.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil).Once()
	auths.On("UpdateProviderUserID", mock.Anything, userID, "new@example.com").Return(nil).Once()

	updated, err := srv.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		UserID: userID,
		Name:   "New Name",
		Email:  "New@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)

	users.AssertExpectations(t)
	auths.AssertExpectations(t)
}

func TestUserService_UpdateAccount_SameEmailKeepsCredential(t *testing.T) {
	users := new(MockUserRepository)
	auths := new(MockAuthRepository)
	tokens := new(MockTokenService)
	srv := newUserServiceForTest(users, auths, tokens)

	userID := uuid.New()
	users.On("FindByID", mock.Anything, userID).
		Return(&entity.User{ID: userID, Email: "same@example.com", Name: "Old"}, nil).Once()
	users.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil).Once()

	_, err := srv.UpdateAccount(context.Background(), usecase.UpdateAccountInput{
		UserID: userID,
		Name:   "New Name",
		Email:  "same@example.com",
	})
	require.NoError(t, err)

	auths.AssertNotCalled(t, "UpdateProviderUserID", mock.Anything, mock.Anything, mock.Anything)
}
