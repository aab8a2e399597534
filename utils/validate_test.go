package utils

import (
	"strings"
	"testing"

	"github.com/dalinks/runticket-backend/dto"
)

func validSubmission() dto.CreateTicketDTO {
	return dto.CreateTicketDTO{
		Name:              "Ada Obi",
		Email:             "ada@student.run.edu.ng",
		Department:        "Computer Science",
		NatureOfComplaint: "Library",
		Subject:           "Missing borrowed book record",
		Message:           "The book I returned last week still shows as borrowed.",
	}
}

func TestValidateTicket(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateTicketDTO)
		wantMsg string
	}{
		{
			name:   "valid submission",
			mutate: func(b *dto.CreateTicketDTO) {},
		},
		{
			name:    "bad email",
			mutate:  func(b *dto.CreateTicketDTO) { b.Email = "not-an-email" },
			wantMsg: "Invalid email format",
		},
		{
			name:    "name too short",
			mutate:  func(b *dto.CreateTicketDTO) { b.Name = "A" },
			wantMsg: "Name must be between 2 and 100 characters",
		},
		{
			name:    "subject too short",
			mutate:  func(b *dto.CreateTicketDTO) { b.Subject = "Hey" },
			wantMsg: "Subject must be between 5 and 200 characters",
		},
		{
			name:    "message of length 9 rejected",
			mutate:  func(b *dto.CreateTicketDTO) { b.Message = strings.Repeat("x", 9) },
			wantMsg: "Message must be between 10 and 2000 characters",
		},
		{
			name:   "message of length 10 accepted",
			mutate: func(b *dto.CreateTicketDTO) { b.Message = strings.Repeat("x", 10) },
		},
		{
			name:    "message over 2000 rejected",
			mutate:  func(b *dto.CreateTicketDTO) { b.Message = strings.Repeat("x", 2001) },
			wantMsg: "Message must be between 10 and 2000 characters",
		},
		{
			name:    "five multibyte characters rejected despite ten bytes",
			mutate:  func(b *dto.CreateTicketDTO) { b.Message = strings.Repeat("é", 5) },
			wantMsg: "Message must be between 10 and 2000 characters",
		},
		{
			name:   "2000 multibyte characters accepted despite 4000 bytes",
			mutate: func(b *dto.CreateTicketDTO) { b.Message = strings.Repeat("é", 2000) },
		},
		{
			name:   "two-rune multibyte name accepted",
			mutate: func(b *dto.CreateTicketDTO) { b.Name = "éé" },
		},
		{
			name:    "unknown nature of complaint",
			mutate:  func(b *dto.CreateTicketDTO) { b.NatureOfComplaint = "Sports" },
			wantMsg: "Invalid nature of complaint",
		},
		{
			name:    "nature is case sensitive",
			mutate:  func(b *dto.CreateTicketDTO) { b.NatureOfComplaint = "library" },
			wantMsg: "Invalid nature of complaint",
		},
		{
			name:    "malformed matric number",
			mutate:  func(b *dto.CreateTicketDTO) { b.MatricNumber = "RUN-CSC-21-1234" },
			wantMsg: "Invalid matric number format",
		},
		{
			name:   "well-formed matric number",
			mutate: func(b *dto.CreateTicketDTO) { b.MatricNumber = "RUN/CSC/21/12345" },
		},
		{
			name:    "department too short",
			mutate:  func(b *dto.CreateTicketDTO) { b.Department = "X" },
			wantMsg: "Invalid department",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validSubmission()
			tt.mutate(&body)
			err := ValidateTicket(&body)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("ValidateTicket() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Fatalf("ValidateTicket() = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNormalizeTicket(t *testing.T) {
	body := validSubmission()
	body.Name = "  Ada Obi  "
	body.Subject = "\tMissing borrowed book record\n"
	NormalizeTicket(&body)
	if body.Name != "Ada Obi" {
		t.Fatalf("name = %q", body.Name)
	}
	if body.Subject != "Missing borrowed book record" {
		t.Fatalf("subject = %q", body.Subject)
	}
}

func TestCleanTextNormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent should collapse into the
	// precomposed rune.
	decomposed := "Ade" + string(rune(0x0301))
	precomposed := "Ad" + string(rune(0x00e9))
	if got := CleanText("  " + decomposed + "  "); got != precomposed {
		t.Fatalf("CleanText(%q) = %q, want %q", decomposed, got, precomposed)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"new@univ.edu", true},
		{"a@b.c", true},
		{"no-at-sign", false},
		{"spaces in@mail.com", false},
		{"missing@tld", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.email); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
