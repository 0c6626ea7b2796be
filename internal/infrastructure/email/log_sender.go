package email

import (
	"context"

	"go.uber.org/zap"
	"trust-fund.backend/internal/domain/entities"
	"trust-fund.backend/pkg/logger"
)

// LogSender writes OTP emails to the log instead of delivering them. Used in
// development when no SMTP host is configured. The code is logged, so this
// must never be wired up in production.
type LogSender struct{}

// SendOtpEmail implements usecases.EmailSender.
func (LogSender) SendOtpEmail(ctx context.Context, to, code, displayName string, purpose entities.OtpPurpose) error {
	logger.WithContext(ctx).Info("otp email (log sender)",
		zap.String("to", to),
		zap.String("code", code),
		zap.String("purpose", string(purpose)),
	)
	return nil
}
