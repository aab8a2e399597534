package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dalinks/runticket-backend/models"
)

// ResetTokenTTL is the validity window of a password reset token.
const ResetTokenTTL = time.Hour

var (
	ErrTokenInvalid = errors.New("Invalid token")
	ErrTokenUsed    = errors.New("Token already used")
	ErrTokenExpired = errors.New("Token expired")
)

// NewResetToken returns 32 random bytes as 64 hex characters.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// CheckResetToken validates the token state machine: a used token is dead
// permanently, even when still inside its time window, so the used check
// runs before expiry.
func CheckResetToken(tok *models.PasswordResetToken, now time.Time) error {
	if tok == nil {
		return ErrTokenInvalid
	}
	if tok.Used {
		return ErrTokenUsed
	}
	if !tok.ExpiresAt.After(now) {
		return ErrTokenExpired
	}
	return nil
}
