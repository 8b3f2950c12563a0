// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"storemap/internal/domain/entity"
	"storemap/internal/domain/repository"
	"storemap/internal/domain/service"
	"storemap/internal/usecase"
)

// hashRefreshToken computes the SHA-256 digest stored in place of the raw
// refresh token.
func hashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// issueSession generates a token pair for the user and persists the hashed
// refresh token as the session record. Login, registration and password
// reset all end here.
func issueSession(
	ctx context.Context,
	tokenService service.TokenService,
	authRepo repository.AuthRepository,
	user *entity.User,
) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(tokenService.GetRefreshTokenDuration()),
	}
	if err := authRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
