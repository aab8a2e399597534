package utils

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1", "Password must be at least 8 characters"},
		{"no uppercase", "abcd1234", "Password must contain at least one uppercase letter"},
		{"no lowercase", "ABCD1234", "Password must contain at least one lowercase letter"},
		{"no digit", "Abcdefgh", "Password must contain at least one number"},
		{"valid", "Abcd1234", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidatePasswordStrength(%q) = %v, want nil", tt.password, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("ValidatePasswordStrength(%q) = %v, want %q", tt.password, err, tt.wantMsg)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Abcd1234")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Abcd1234" {
		t.Fatal("hash equals plaintext")
	}
	if err := CheckPassword(hash, "Abcd1234"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := CheckPassword(hash, "Abcd1235"); err == nil {
		t.Fatal("CheckPassword accepted a wrong password")
	}
}

// The dummy hash must be structurally valid bcrypt so the compare runs the
// full algorithm (not an early parse failure) when the email is unknown.
func TestDummyHashIsWellFormed(t *testing.T) {
	err := CheckPassword(DummyHash, "definitely-not-the-password")
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("CheckPassword(DummyHash, ...) = %v, want mismatch", err)
	}

	cost, err := bcrypt.Cost([]byte(DummyHash))
	if err != nil {
		t.Fatalf("DummyHash is not parseable bcrypt: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("DummyHash cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
