package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storemap/config"
	domainerrors "storemap/internal/domain/errors"
	"storemap/internal/domain/service"
)

// UserIDKey is the context key the authenticated user's ID is stored under.
const UserIDKey = "userID"

// AuthMiddleware guards routes that require a logged in user.
type AuthMiddleware struct {
	tokenService service.TokenService
	cfg          *config.Config
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		cfg:          cfg,
	}
}

// Authenticate validates the access token and stores the user ID on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.userIDFromRequest(c)
		if err != nil {
			return err
		}

		c.Set(UserIDKey, userID)

		return next(c)
	}
}

func (m *AuthMiddleware) userIDFromRequest(c echo.Context) (uuid.UUID, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, domainerrors.ErrNotAuthenticated
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return uuid.Nil, domainerrors.ErrNotAuthenticated.WithDetails("authorization header must be a bearer token")
	}

	token, err := m.tokenService.ValidateToken(parts[1], m.cfg.SecretKey.Access)
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotAuthenticated.WithDetails("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domainerrors.ErrNotAuthenticated
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, domainerrors.ErrNotAuthenticated
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domainerrors.ErrNotAuthenticated
	}

	return userID, nil
}

// UserID returns the authenticated user's ID from the context.
func UserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrNotAuthenticated
	}

	return userID, nil
}
