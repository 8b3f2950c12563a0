package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"storemap/config"
	deliverycontext "storemap/internal/delivery/context"
	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/repository"
	"storemap/internal/domain/service"
	"storemap/internal/usecase"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	storeRepo    repository.StoreRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	resetTokens  service.ResetTokenGenerator
	mailer       service.Mailer
	resetTTL     time.Duration
	baseURL      string
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AuthRepo     repository.AuthRepository
	StoreRepo    repository.StoreRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	ResetTokens  service.ResetTokenGenerator
	Mailer       service.Mailer
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	resetTTL := time.Hour
	if params.Config.Auth != nil && params.Config.Auth.ResetTokenTTL > 0 {
		resetTTL = params.Config.Auth.ResetTokenTTL
	}

	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		authRepo:     params.AuthRepo,
		storeRepo:    params.StoreRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		resetTokens:  params.ResetTokens,
		mailer:       params.Mailer,
		resetTTL:     resetTTL,
		baseURL:      strings.TrimRight(params.Config.HTTP.BaseURL, "/"),
		logger:       params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ForgotPassword issues a reset token and mails the reset link. It returns
// nil for unknown addresses so the response never reveals whether an email
// is registered.
func (srv *accountService) ForgotPassword(ctx context.Context, input usecase.ForgotPasswordInput) error {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to find user for password reset")
	}

	token, err := srv.resetTokens.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	// A fresh request replaces any pending token.
	user.ResetToken = token
	user.ResetTokenExpires = time.Now().Add(srv.resetTTL)
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	mail := &service.PasswordResetMail{
		ToAddress: user.Email,
		ToName:    user.Name,
		ResetURL:  srv.baseURL + "/account/reset/" + token,
	}
	if err := srv.mailer.SendPasswordReset(ctx, mail); err != nil {
		return errors.Wrap(err, "failed to send reset mail")
	}

	srv.log(ctx).Info("Password reset mail issued", slog.Any("userID", user.ID))

	return nil
}

// ValidateResetToken checks a reset token and returns its pending user.
// Unknown and expired tokens are indistinguishable.
func (srv *accountService) ValidateResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, domainerrors.ErrResetTokenInvalid
	}

	user, err := srv.userRepo.FindByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrResetTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up reset token")
	}

	return user, nil
}

// ResetPassword replaces the credential behind a valid reset token, consumes
// the token and logs the user in. The confirmation check runs before any
// state is touched.
func (srv *accountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) (*usecase.AuthOutput, error) {
	if input.Password != input.PasswordConfirm {
		return nil, domainerrors.ErrPasswordMismatch
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash new password")
	}

	var resetUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByResetToken(ctx, input.Token, time.Now())
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrResetTokenInvalid
			}

			return errors.Wrap(findErr, "failed to look up reset token")
		}

		if updateErr := repoFactory.AuthRepo().UpdatePasswordHash(ctx, user.ID, hashedPassword); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update password hash")
		}

		// Consume the token; a second reset attempt must start over.
		user.ResetToken = ""
		user.ResetTokenExpires = time.Time{}
		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to clear reset token")
		}

		resetUser = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", resetUser.ID))

	return issueSession(ctx, srv.tokenService, srv.authRepo, resetUser)
}

// ToggleHeart flips the favorite state of a store for a user and returns
// the updated user record.
func (srv *accountService) ToggleHeart(ctx context.Context, userID, storeID uuid.UUID) (*entity.User, error) {
	var toggledUser *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(findErr, "failed to find user for heart toggle")
		}

		if user.HasHearted(storeID) {
			if removeErr := userRepo.RemoveHeart(ctx, userID, storeID); removeErr != nil {
				return errors.Wrap(removeErr, "failed to remove heart")
			}

			hearts := make([]uuid.UUID, 0, len(user.Hearts))
			for _, id := range user.Hearts {
				if id != storeID {
					hearts = append(hearts, id)
				}
			}
			user.Hearts = hearts
		} else {
			if addErr := userRepo.AddHeart(ctx, userID, storeID); addErr != nil {
				if errors.Is(addErr, repository.ErrStoreNotFound) {
					return domainerrors.ErrStoreNotFound
				}

				return errors.Wrap(addErr, "failed to add heart")
			}

			user.Hearts = append(user.Hearts, storeID)
		}

		toggledUser = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Heart toggled",
		slog.Any("userID", userID),
		slog.Any("storeID", storeID),
		slog.Int("hearts", len(toggledUser.Hearts)),
	)

	return toggledUser, nil
}

// HeartedStores returns the stores the user has favorited.
func (srv *accountService) HeartedStores(ctx context.Context, userID uuid.UUID) ([]*entity.Store, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user for hearted stores")
	}

	stores, err := srv.storeRepo.FindByIDs(ctx, user.Hearts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load hearted stores")
	}

	return stores, nil
}
