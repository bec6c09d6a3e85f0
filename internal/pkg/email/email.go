package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendWelcome(to, employeeName, temporaryPassword, loginLink string) error
	SendPasswordReset(to, resetLink, expiresAt string) error
}

// Sender delivers a rendered message. Replaced in tests.
type Sender func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      Sender
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return NewEmailServiceWithSender(cfg, smtp.SendMail)
}

// NewEmailServiceWithSender builds the service on a custom transport.
func NewEmailServiceWithSender(cfg config.SMTPConfig, send Sender) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      send,
		backoff:   time.Second,
	}, nil
}

type welcomeEmailData struct {
	EmployeeName      string
	Email             string
	TemporaryPassword string
	LoginLink         string
}

// SendWelcome sends the sign-in details of a newly provisioned employee
func (s *emailServiceImpl) SendWelcome(to, employeeName, temporaryPassword, loginLink string) error {
	data := welcomeEmailData{
		EmployeeName:      employeeName,
		Email:             to,
		TemporaryPassword: temporaryPassword,
		LoginLink:         loginLink,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "welcome.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Your payroll account is ready", body.String())
}

type passwordResetEmailData struct {
	ResetLink string
	ExpiresAt string
}

// SendPasswordReset sends a password reset email to the user
func (s *emailServiceImpl) SendPasswordReset(to, resetLink, expiresAt string) error {
	data := passwordResetEmailData{
		ResetLink: resetLink,
		ExpiresAt: expiresAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_reset.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Reset Password", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
