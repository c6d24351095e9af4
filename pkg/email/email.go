package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	SubjectForgotPassword      = "Forget Password OTP"
	SubjectAdminForgotPassword = "Admin Forget Password OTP"
	SubjectEmailChange         = "Your OTP Code"
	SubjectWelcomeMember       = "Welcome to Telugu Association - Your Account Details"
	SubjectWelcomeImported     = "Welcome to Telugu Association"
	SubjectWelcomeVolunteer    = "Welcome to Telugu Association - Volunteer Account Created"
	SubjectDonationReceipt     = "Donation Confirmation - Telugu Association"
)

type EmailService struct {
	sender    Sender
	from      string
	templates *template.Template
	logger    *zap.Logger
}

func NewEmailService(sender Sender, fromName, fromAddress string, logger *zap.Logger) (*EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	from := fromAddress
	if fromName != "" {
		from = fromName + " <" + fromAddress + ">"
	}
	return &EmailService{sender: sender, from: from, templates: tmpl, logger: logger}, nil
}

func (s *EmailService) SendOTP(ctx context.Context, to, subject, code string) error {
	return s.send(ctx, to, subject, "otp.html", map[string]interface{}{
		"Code": code,
	})
}

// SendWelcome mails the credentials of an account created by an administrator.
func (s *EmailService) SendWelcome(ctx context.Context, to, subject, password string) error {
	return s.send(ctx, to, subject, "welcome.html", map[string]interface{}{
		"Email":    to,
		"Password": password,
	})
}

type DonationReceipt struct {
	Firstname     string
	Amount        float64
	TransactionID string
	Date          time.Time
}

func (s *EmailService) SendDonationReceipt(ctx context.Context, to string, r DonationReceipt) error {
	return s.send(ctx, to, SubjectDonationReceipt, "donation.html", map[string]interface{}{
		"Firstname":     r.Firstname,
		"Amount":        fmt.Sprintf("%.2f", r.Amount),
		"TransactionID": r.TransactionID,
		"Date":          r.Date.Format("01/02/2006"),
	})
}

func (s *EmailService) send(ctx context.Context, to, subject, name string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	err := s.sender.Send(ctx, Message{From: s.from, To: to, Subject: subject, HTML: body.String()})
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return err
	}
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
