package utils

import (
	"strings"
	"unicode/utf8"
)

// EscapeHTML escapes the HTML special characters of untrusted text before it
// is interpolated into an email body.
func EscapeHTML(unsafe string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	return r.Replace(unsafe)
}

// SanitizeForEmail escapes HTML but keeps the author's line breaks readable.
func SanitizeForEmail(text string) string {
	return strings.ReplaceAll(EscapeHTML(text), "\n", "<br>")
}

// Truncate caps text at maxLength characters, cutting on rune boundaries so
// a multibyte character is never split mid-sequence.
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	return string([]rune(text)[:maxLength]) + "..."
}
