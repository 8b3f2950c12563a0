package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"storemap/internal/delivery/http/response"
	domainerrors "storemap/internal/domain/errors"
)

func handleError(err error) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/stores", nil), rec)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	NewErrorMiddleware(logger).HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec := handleError(domainerrors.ErrStoreNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), domainerrors.ErrStoreNotFound.ErrorCode())
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	rec := handleError(errors.WithStack(domainerrors.ErrNotStoreOwner))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "own a store")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := handleError(echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	rec := handleError(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// The raw error never leaks into the response body.
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestErrorMiddleware_ResponseEnvelope(t *testing.T) {
	rec := handleError(domainerrors.ErrValidationFailed)

	var body response.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.NotNil(t, body.Error)
}
