// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"storemap/internal/domain/entity"
)

// --- Input DTOs ---

// ForgotPasswordInput starts the password recovery flow for an email address.
type ForgotPasswordInput struct {
	Email string
}

// ResetPasswordInput completes the password recovery flow. Both password
// fields must match before any credential is touched.
type ResetPasswordInput struct {
	Token           string
	Password        string
	PasswordConfirm string
}

// AccountUsecase defines the password recovery and favorites operations.
type AccountUsecase interface {
	// ForgotPassword issues a reset token and mails the reset link.
	// It reveals nothing about whether the email is registered.
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) error

	// ValidateResetToken checks a reset token and returns its pending user.
	ValidateResetToken(ctx context.Context, token string) (*entity.User, error)

	// ResetPassword replaces the credential behind a valid reset token,
	// consumes the token and logs the user in.
	ResetPassword(ctx context.Context, input ResetPasswordInput) (*AuthOutput, error)

	// ToggleHeart flips the favorite state of a store for a user and
	// returns the updated user record with its resulting favorite set.
	ToggleHeart(ctx context.Context, userID, storeID uuid.UUID) (*entity.User, error)

	// HeartedStores returns the stores the user has favorited.
	HeartedStores(ctx context.Context, userID uuid.UUID) ([]*entity.Store, error)
}
