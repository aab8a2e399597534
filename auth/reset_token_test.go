package auth

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/dalinks/runticket-backend/models"
)

func TestNewResetToken(t *testing.T) {
	tok, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() error: %v", err)
	}
	if len(tok) != 64 {
		t.Fatalf("token length = %d, want 64", len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Fatalf("token is not hex: %v", err)
	}

	other, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() error: %v", err)
	}
	if tok == other {
		t.Fatal("two tokens are identical")
	}
}

func TestCheckResetToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		tok     *models.PasswordResetToken
		wantErr error
	}{
		{
			name:    "unknown token",
			tok:     nil,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "fresh token is valid",
			tok:     &models.PasswordResetToken{ExpiresAt: now.Add(time.Minute)},
			wantErr: nil,
		},
		{
			name:    "used token is dead even inside its time window",
			tok:     &models.PasswordResetToken{Used: true, ExpiresAt: now.Add(time.Hour)},
			wantErr: ErrTokenUsed,
		},
		{
			name:    "used beats expired",
			tok:     &models.PasswordResetToken{Used: true, ExpiresAt: now.Add(-time.Hour)},
			wantErr: ErrTokenUsed,
		},
		{
			name:    "expired token",
			tok:     &models.PasswordResetToken{ExpiresAt: now.Add(-time.Second)},
			wantErr: ErrTokenExpired,
		},
		{
			name:    "expiry exactly now is expired",
			tok:     &models.PasswordResetToken{ExpiresAt: now},
			wantErr: ErrTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResetToken(tt.tok, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckResetToken() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
