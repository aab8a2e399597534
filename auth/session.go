package auth

import (
	"errors"
	"time"

	"github.com/dalinks/runticket-backend/models"
)

// SessionTTL is the fixed session lifetime. There is no renewal; an expired
// session forces a fresh sign-in.
const SessionTTL = 24 * time.Hour

var (
	ErrInvalidSession = errors.New("Invalid session")
	ErrSessionExpired = errors.New("Session expired")
)

// CheckSessionOwner validates the account behind a session. A session whose
// user has been deleted is invalid outright, never a valid session with no
// roles.
func CheckSessionOwner(user *models.User) error {
	if user == nil {
		return ErrInvalidSession
	}
	return nil
}

// CheckSession validates a loaded session: existence first, then expiry.
// The two failures carry distinct errors for logging, but callers must
// answer both with the same 401 denial. A session is valid only while
// expiresAt is strictly in the future.
func CheckSession(sess *models.Session, now time.Time) error {
	if sess == nil {
		return ErrInvalidSession
	}
	if !sess.ExpiresAt.After(now) {
		return ErrSessionExpired
	}
	return nil
}
