package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dalinks/runticket-backend/models"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Mailer sends transactional email through the Brevo API. Every send is
// best-effort: a failed notification is logged and never rolls back or fails
// the mutation that triggered it.
type Mailer struct {
	apiKey      string
	senderName  string
	senderEmail string
	baseURL     string
	client      *http.Client
	enabled     bool
}

func NewMailer() *Mailer {
	apiKey := os.Getenv("BREVO_API_KEY")
	sender := os.Getenv("SENDER_EMAIL")
	if sender == "" {
		sender = "support@run.edu.ng"
	}
	baseURL := os.Getenv("PORTAL_BASE_URL")
	if baseURL == "" {
		baseURL = "https://runticket2.vercel.app"
	}
	return &Mailer{
		apiKey:      apiKey,
		senderName:  "RUN Support Portal",
		senderEmail: sender,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 15 * time.Second},
		enabled:     apiKey != "",
	}
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoRequest struct {
	Sender      map[string]string `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
}

func (m *Mailer) send(to, subject, html string) error {
	if !m.enabled {
		log.Printf("mailer disabled, skipping email to %s (%s)", to, subject)
		return nil
	}

	body := brevoRequest{
		Sender:      map[string]string{"name": m.senderName, "email": m.senderEmail},
		To:          []brevoRecipient{{Email: to}},
		Subject:     subject,
		HTMLContent: html,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("brevo API error: status %d", resp.StatusCode)
	}
	return nil
}

// SendTicketEmails delivers the submission confirmation to the student and
// the new-ticket alert to the department's staff inbox.
func (m *Mailer) SendTicketEmails(t models.Ticket, staffEmail string) {
	studentHTML := fmt.Sprintf(
		`<h1>Ticket Confirmation</h1>`+
			`<p>Dear %s,</p>`+
			`<p>Thank you for submitting your support ticket. We have received your request and our team will review it shortly.</p>`+
			`<p><strong>Ticket ID: %s</strong></p>`+
			`<p>Please save this ticket ID for tracking purposes.</p>`+
			`<p><strong>Subject:</strong> %s<br>`+
			`<strong>Department:</strong> %s<br>`+
			`<strong>Nature of Complaint:</strong> %s<br>`+
			`<strong>Submitted:</strong> %s</p>`+
			`<p><strong>Your Message:</strong></p><p>%s</p>`+
			`<p><a href="%s/track">Track Your Ticket</a></p>`+
			`<p>You will receive email updates when there are changes to your ticket status.</p>`,
		EscapeHTML(t.Name), EscapeHTML(t.TicketID), EscapeHTML(t.Subject),
		EscapeHTML(t.Department), EscapeHTML(t.NatureOfComplaint),
		t.CreatedAt.UTC().Format(time.RFC1123),
		SanitizeForEmail(t.Message), m.baseURL,
	)
	if err := m.send(t.Email, "Ticket Confirmation - "+t.TicketID, studentHTML); err != nil {
		log.Printf("failed to send student email for %s: %v", t.TicketID, err)
	}

	staffHTML := fmt.Sprintf(
		`<h1>New Support Ticket</h1>`+
			`<p>A new support ticket has been submitted and assigned to your department.</p>`+
			`<p><strong>Ticket ID: %s</strong></p>`+
			`<p><strong>From:</strong> %s<br>`+
			`<strong>Email:</strong> %s<br>`+
			`%s%s`+
			`<strong>Department:</strong> %s<br>`+
			`<strong>Nature:</strong> %s<br>`+
			`<strong>Subject:</strong> %s</p>`+
			`<p><strong>Message:</strong></p><p>%s</p>`+
			`<p><a href="%s/admin">View in Admin Portal</a></p>`,
		EscapeHTML(t.TicketID), EscapeHTML(t.Name), EscapeHTML(t.Email),
		optionalRow("Matric Number", t.MatricNumber),
		optionalRow("JAMB Number", t.JambNumber),
		EscapeHTML(t.Department), EscapeHTML(t.NatureOfComplaint),
		EscapeHTML(t.Subject), SanitizeForEmail(t.Message), m.baseURL,
	)
	subject := fmt.Sprintf("New Ticket: %s [%s]", Truncate(t.Subject, 80), t.TicketID)
	if err := m.send(staffEmail, subject, staffHTML); err != nil {
		log.Printf("failed to send staff email for %s: %v", t.TicketID, err)
	}
}

// SendStatusUpdateEmail tells the student their ticket changed state.
func (m *Mailer) SendStatusUpdateEmail(t models.Ticket, oldStatus, newStatus string) {
	responseBlock := ""
	if t.StaffResponse != "" {
		responseBlock = fmt.Sprintf(
			`<p><strong>Staff Response:</strong></p><p>%s</p>`,
			SanitizeForEmail(t.StaffResponse),
		)
	}
	html := fmt.Sprintf(
		`<h1>Ticket Status Update</h1>`+
			`<p>Dear %s,</p>`+
			`<p>There's an update on your support ticket.</p>`+
			`<p><strong>Ticket ID: %s</strong></p>`+
			`<p><strong>Subject:</strong> %s</p>`+
			`<p>Status changed from <strong>%s</strong> to <strong>%s</strong>.</p>`+
			`%s`+
			`<p><a href="%s/track">Track Your Ticket</a></p>`,
		EscapeHTML(t.Name), EscapeHTML(t.TicketID), EscapeHTML(t.Subject),
		EscapeHTML(oldStatus), EscapeHTML(newStatus), responseBlock, m.baseURL,
	)
	if err := m.send(t.Email, "Ticket Status Update - "+t.TicketID, html); err != nil {
		log.Printf("failed to send status update email for %s: %v", t.TicketID, err)
	}
}

// SendPasswordResetEmail carries the reset link out of band. The token never
// travels anywhere else.
func (m *Mailer) SendPasswordResetEmail(email, token string) {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.baseURL, token)
	html := fmt.Sprintf(
		`<h1>Password Reset Request</h1>`+
			`<p>Hello,</p>`+
			`<p>We received a request to reset your password for your admin account. Click the link below to create a new password:</p>`+
			`<p><a href="%s">Reset Password</a></p>`+
			`<p>This link will expire in 1 hour for security reasons.</p>`+
			`<p>If you didn't request a password reset, please ignore this email. Your password will remain unchanged.</p>`,
		resetURL,
	)
	if err := m.send(email, "Password Reset Request - RUN Admin Portal", html); err != nil {
		log.Printf("failed to send password reset email to %s: %v", email, err)
	}
}

func optionalRow(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("<strong>%s:</strong> %s<br>", label, EscapeHTML(value))
}
