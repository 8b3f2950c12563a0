package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "storemap/internal/delivery/context"
	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/domain/service"
	"storemap/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AuthRepo     repository.AuthRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		authRepo:     params.AuthRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process. The new user is
// logged in immediately, so the output carries a fresh session.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if input.Password != input.PasswordConfirm {
		return nil, domainerrors.ErrPasswordMismatch
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email))

		return nil, err
	}

	// bcrypt is CPU-bound, hash outside the transaction.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		authRepo := repoFactory.AuthRepo()

		_, findErr := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrAuthNotFound) {
			return errors.Wrap(findErr, "failed to find authentication")
		}

		newUser := &entity.User{Name: input.Name, Email: email}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: email,
			PasswordHash:   hashedPassword,
		}
		if createErr := authRepo.CreateAuthentication(ctx, newAuth); createErr != nil {
			return errors.Wrap(createErr, "failed to create authentication during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return issueSession(ctx, srv.tokenService, srv.authRepo, registeredUser)
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load login user")
	}

	output, err := issueSession(ctx, srv.tokenService, srv.authRepo, loggedInUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return output, nil
}

// Refresh rotates a session: the presented refresh token is revoked and a
// fresh token pair is issued. Unknown and expired tokens both come back as
// a generic authentication failure.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	if refreshToken == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}

	tokenHash := hashRefreshToken(refreshToken)

	session, err := srv.authRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, domainerrors.ErrNotAuthenticated
		}

		return nil, errors.Wrap(err, "failed to look up session")
	}

	if session.Expired(time.Now()) {
		if deleteErr := srv.authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); deleteErr != nil {
			return nil, errors.Wrap(deleteErr, "failed to delete expired session")
		}

		return nil, domainerrors.ErrNotAuthenticated
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotAuthenticated
		}

		return nil, errors.Wrap(err, "failed to find user for session")
	}

	if err := srv.authRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		return nil, errors.Wrap(err, "failed to rotate session")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", user.ID))

	return issueSession(ctx, srv.tokenService, srv.authRepo, user)
}

// Logout ends the session behind the given refresh token. Unknown tokens
// are not an error; the session is gone either way.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := srv.authRepo.DeleteRefreshTokenByHash(ctx, hashRefreshToken(refreshToken)); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Debug("User logged out")

	return nil
}

// GetUser retrieves a single user by ID.
func (srv *userService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateAccount changes the user's name and email.
func (srv *userService) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*entity.User, error) {
	var updatedUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, input.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(findErr, "failed to find user for account update")
		}

		if input.Name != "" {
			user.Name = input.Name
		}

		newEmail := entity.NormalizeEmail(input.Email)
		emailChanged := newEmail != "" && newEmail != user.Email
		if emailChanged {
			user.Email = newEmail
		}

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update account")
		}

		// The email credential is keyed by address, move it along.
		if emailChanged {
			if authErr := repoFactory.AuthRepo().UpdateProviderUserID(ctx, user.ID, newEmail); authErr != nil {
				return errors.Wrap(authErr, "failed to move email credential")
			}
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Account updated", slog.Any("userID", updatedUser.ID))

	return updatedUser, nil
}
