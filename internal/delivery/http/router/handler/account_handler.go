package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storemap/internal/delivery/http/middleware"
	"storemap/internal/delivery/http/response"
	"storemap/internal/usecase"
)

// AccountHandler holds dependencies for password recovery and favorites.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// ForgotPasswordRequest represents the request body for password recovery
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body for completing a reset
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// ForgotPassword starts the password recovery flow. The response is the same
// whether or not the email is registered.
func (h *AccountHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), usecase.ForgotPasswordInput{Email: req.Email}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK,
		map[string]string{"message": "If that account exists, a password reset link has been emailed"},
		"Password reset requested")
}

// ValidateResetToken checks whether a reset token is still usable.
func (h *AccountHandler) ValidateResetToken(c echo.Context) error {
	user, err := h.uc.ValidateResetToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"name": user.Name}, "Reset token is valid")
}

// ResetPassword completes the password recovery flow and logs the user in.
func (h *AccountHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Token:           c.Param("token"),
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Password reset successfully")
}

// ToggleHeart flips the favorite state of a store for the current user and
// returns the updated user with its resulting favorite set.
func (h *AccountHandler) ToggleHeart(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	storeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid store ID")
	}

	user, err := h.uc.ToggleHeart(c.Request().Context(), userID, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Favorites updated")
}

// HeartedStores lists the stores the current user has favorited.
func (h *AccountHandler) HeartedStores(c echo.Context) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	stores, err := h.uc.HeartedStores(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Favorited stores retrieved successfully")
}
