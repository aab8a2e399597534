package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dalinks/runticket-backend/models"
)

func TestCheckSession(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sess    *models.Session
		wantErr error
	}{
		{
			name:    "missing session is invalid",
			sess:    nil,
			wantErr: ErrInvalidSession,
		},
		{
			name:    "future expiry is valid",
			sess:    &models.Session{ID: "s1", ExpiresAt: now.Add(time.Minute)},
			wantErr: nil,
		},
		{
			name:    "expiry exactly now is expired",
			sess:    &models.Session{ID: "s2", ExpiresAt: now},
			wantErr: ErrSessionExpired,
		},
		{
			name:    "past expiry is expired even if the record still exists",
			sess:    &models.Session{ID: "s3", ExpiresAt: now.Add(-time.Hour)},
			wantErr: ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSession(tt.sess, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckSession() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckSessionOwner(t *testing.T) {
	if err := CheckSessionOwner(nil); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("orphaned session = %v, want %v", err, ErrInvalidSession)
	}
	if err := CheckSessionOwner(&models.User{Email: "admin@univ.edu"}); err != nil {
		t.Fatalf("existing user = %v, want nil", err)
	}
}

func TestSessionTTLIsFixed24Hours(t *testing.T) {
	if SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v", SessionTTL)
	}
}
