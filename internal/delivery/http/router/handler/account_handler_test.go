package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storemap/internal/delivery/http/middleware"
	"storemap/internal/domain/entity"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/usecase"
)

func newAccountHandlerForTest(uc usecase.AccountUsecase) *AccountHandler {
	return NewAccountHandler(uc, slog.Default())
}

func TestAccountHandler_ForgotPassword(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	req := jsonRequest(http.MethodPost, "/account/forgot", `{"email":"wes@example.com"}`)
	c, rec := testContext(t, req)

	mockUC.On("ForgotPassword", mock.Anything, usecase.ForgotPasswordInput{Email: "wes@example.com"}).
		Return(nil)

	err := h.ForgotPassword(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "If that account exists")
}

func TestAccountHandler_ValidateResetToken(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	req := httptest.NewRequest(http.MethodGet, "/account/reset/deadbeef", nil)
	c, rec := testContext(t, req)
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")

	mockUC.On("ValidateResetToken", mock.Anything, "deadbeef").
		Return(&entity.User{Name: "Wes"}, nil)

	err := h.ValidateResetToken(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wes")
}

func TestAccountHandler_ValidateResetToken_Invalid(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	req := httptest.NewRequest(http.MethodGet, "/account/reset/stale", nil)
	c, _ := testContext(t, req)
	c.SetParamNames("token")
	c.SetParamValues("stale")

	mockUC.On("ValidateResetToken", mock.Anything, "stale").
		Return(nil, domainerrors.ErrResetTokenInvalid)

	err := h.ValidateResetToken(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestAccountHandler_ResetPassword_TokenFromPath(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	req := jsonRequest(http.MethodPost, "/account/reset/deadbeef",
		`{"password":"newpass99","password_confirm":"newpass99"}`)
	c, rec := testContext(t, req)
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")

	output := &usecase.AuthOutput{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &entity.User{ID: uuid.New(), Name: "Wes"},
	}
	mockUC.On("ResetPassword", mock.Anything, usecase.ResetPasswordInput{
		Token:           "deadbeef",
		Password:        "newpass99",
		PasswordConfirm: "newpass99",
	}).Return(output, nil)

	err := h.ResetPassword(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	mockUC.AssertExpectations(t)
}

func TestAccountHandler_ToggleHeart(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	userID := uuid.New()
	storeID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/stores/"+storeID.String()+"/heart", nil)
	c, rec := testContext(t, req)
	c.Set(middleware.UserIDKey, userID)
	c.SetParamNames("id")
	c.SetParamValues(storeID.String())

	mockUC.On("ToggleHeart", mock.Anything, userID, storeID).
		Return(&entity.User{ID: userID, Name: "Wes", Hearts: []uuid.UUID{storeID}}, nil)

	err := h.ToggleHeart(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// The updated user record comes back with the new hearts list.
	assert.Contains(t, rec.Body.String(), storeID.String())
	assert.Contains(t, rec.Body.String(), "Wes")
}

func TestAccountHandler_ToggleHeart_InvalidStoreID(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	req := httptest.NewRequest(http.MethodPost, "/api/stores/nope/heart", nil)
	c, rec := testContext(t, req)
	c.Set(middleware.UserIDKey, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.ToggleHeart(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockUC.AssertNotCalled(t, "ToggleHeart", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountHandler_HeartedStores(t *testing.T) {
	mockUC := new(MockAccountUsecase)
	h := newAccountHandlerForTest(mockUC)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/account/hearts", nil)
	c, rec := testContext(t, req)
	c.Set(middleware.UserIDKey, userID)

	mockUC.On("HeartedStores", mock.Anything, userID).
		Return([]*entity.Store{{Name: "Saved Place", Slug: "saved-place"}}, nil)

	err := h.HeartedStores(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "saved-place")
}
