package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"trust-fund.backend/internal/domain/entities"
)

// SMTPConfig holds mail delivery settings
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPSender delivers OTP emails over SMTP. Delivery is best-effort: callers
// log failures and never fail the request, since the OTP record is already
// persisted and usable through other channels.
type SMTPSender struct {
	cfg SMTPConfig
}

var sendMail = smtp.SendMail

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("email: smtp host and from address are required")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTPSender{cfg: cfg}, nil
}

// SendOtpEmail implements usecases.EmailSender.
func (s *SMTPSender) SendOtpEmail(ctx context.Context, to, code, displayName string, purpose entities.OtpPurpose) error {
	if displayName == "" {
		displayName = "there"
	}

	subject := "Your password reset code"
	action := "reset your password"
	if purpose == entities.OtpPurposeVerifyEmail {
		subject = "Your email verification code"
		action = "verify your email address"
	}

	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Use the following code to %s:\r\n\r\n"+
			"    %s\r\n\r\n"+
			"The code expires in 10 minutes. If you did not request it, you can ignore this email.\r\n",
		displayName, action, code,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.From, to, subject, body,
	))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := sendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("email: failed to send otp email: %w", err)
	}
	return nil
}
