package auth

import (
	"crypto/rand"
	"encoding/hex"

	"storemap/internal/domain/service"
	"storemap/internal/errors"
)

const resetTokenBytes = 20

// resetTokenGenerator draws reset tokens from crypto/rand.
type resetTokenGenerator struct{}

// NewResetTokenGenerator is the constructor for resetTokenGenerator.
func NewResetTokenGenerator() service.ResetTokenGenerator {
	return &resetTokenGenerator{}
}

// Generate returns a 40-character hex token.
func (g *resetTokenGenerator) Generate() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "generate reset token")
	}
	return hex.EncodeToString(buf), nil
}
