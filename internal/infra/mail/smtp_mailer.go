// Package mail implements outbound email delivery over SMTP.
package mail

import (
	"context"
	"net"
	"net/smtp"

	"github.com/pkg/errors"

	"trailhub/config"
	"trailhub/internal/domain/service"
)

// smtpMailer delivers mail through a plain SMTP relay with PLAIN auth.
// Delivery is synchronous; the caller decides what a failure aborts.
type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp configuration must be provided")
	}

	return &smtpMailer{
		host:     cfg.SMTP.Host,
		port:     cfg.SMTP.Port,
		username: cfg.SMTP.Username,
		password: cfg.SMTP.Password,
		from:     cfg.SMTP.From,
	}, nil
}

// SendOTP delivers the verification-code email.
func (m *smtpMailer) SendOTP(ctx context.Context, to, code string) error {
	return m.send(ctx, otpEmailSubject, to, OTPEmail(code))
}

// send delivers an HTML body to a single recipient.
func (m *smtpMailer) send(_ context.Context, subject, to, htmlBody string) error {
	addr := net.JoinHostPort(m.host, m.port)
	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			htmlBody + "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
