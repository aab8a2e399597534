package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/dalinks/runticket-backend/dto"
	"github.com/dalinks/runticket-backend/models"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	matricRegex = regexp.MustCompile(`^RUN/[A-Z]+/\d{2}/\d{4,5}$`)
)

func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// CleanText trims surrounding whitespace and normalizes the text to NFC so
// length checks count what the reader sees, not the submitter's encoding.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeTicket cleans every field of a submission in place.
func NormalizeTicket(body *dto.CreateTicketDTO) {
	body.MatricNumber = CleanText(body.MatricNumber)
	body.JambNumber = CleanText(body.JambNumber)
	body.Name = CleanText(body.Name)
	body.Email = CleanText(body.Email)
	body.Phone = CleanText(body.Phone)
	body.Department = CleanText(body.Department)
	body.NatureOfComplaint = CleanText(body.NatureOfComplaint)
	body.Subject = CleanText(body.Subject)
	body.Message = CleanText(body.Message)
	body.AttachmentURL = strings.TrimSpace(body.AttachmentURL)
}

// ValidateTicket applies the submission rules in order and returns the first
// violated rule's message. Expects a normalized body. The length bounds count
// characters, not bytes, so multibyte names and messages are measured the way
// the submitter sees them.
func ValidateTicket(body *dto.CreateTicketDTO) error {
	if !ValidEmail(body.Email) {
		return errors.New("Invalid email format")
	}
	if n := utf8.RuneCountInString(body.Name); n < 2 || n > 100 {
		return errors.New("Name must be between 2 and 100 characters")
	}
	if utf8.RuneCountInString(body.Email) > 255 {
		return errors.New("Email too long")
	}
	if n := utf8.RuneCountInString(body.Subject); n < 5 || n > 200 {
		return errors.New("Subject must be between 5 and 200 characters")
	}
	if n := utf8.RuneCountInString(body.Message); n < 10 || n > 2000 {
		return errors.New("Message must be between 10 and 2000 characters")
	}
	if !models.ValidTicketNature(body.NatureOfComplaint) {
		return errors.New("Invalid nature of complaint")
	}
	if body.MatricNumber != "" && !matricRegex.MatchString(body.MatricNumber) {
		return errors.New("Invalid matric number format")
	}
	if n := utf8.RuneCountInString(body.Department); n < 2 || n > 100 {
		return errors.New("Invalid department")
	}
	return nil
}
