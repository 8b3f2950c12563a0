// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"storemap/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateAccountInput defines the fields a user may change on their account.
type UpdateAccountInput struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

// --- Output DTOs ---

// AuthOutput returns the generated tokens after a successful login or
// registration. Registration logs the new user in immediately.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterUserInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh exchanges a valid refresh token for a new session. The
	// presented token is revoked either way: rotated on success, deleted
	// when it has expired.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*entity.User, error)
}
