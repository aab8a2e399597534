package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a structurally valid bcrypt hash used when sign-in hits an
// unknown email: the verification still runs at full cost so the response
// latency cannot reveal whether the account exists. It does not correspond
// to any real account's password.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// ValidatePasswordStrength applies the signup password rules in order and
// returns the first violated rule's message.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("Password must be at least 8 characters")
	}
	if !containsRange(password, 'A', 'Z') {
		return errors.New("Password must contain at least one uppercase letter")
	}
	if !containsRange(password, 'a', 'z') {
		return errors.New("Password must contain at least one lowercase letter")
	}
	if !containsRange(password, '0', '9') {
		return errors.New("Password must contain at least one number")
	}
	return nil
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
