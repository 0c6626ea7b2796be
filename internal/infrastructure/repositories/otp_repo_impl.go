package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/infrastructure/models"
)

// OtpRepository implements one-time-passcode storage on gorm. Replace and
// Consume each run as a single transaction; Consume's mark-used write is
// conditioned on used=false so concurrent duplicates have exactly one winner.
type OtpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository
func NewOtpRepository(db *gorm.DB) *OtpRepository {
	return &OtpRepository{db: db}
}

// Replace invalidates the previous active record for the email, if any, and
// inserts the new one, keeping at most one live OTP per email.
func (r *OtpRepository) Replace(ctx context.Context, otp *entities.OtpToken) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("email = ? AND used = ?", otp.Email, false).
			Delete(&models.OtpToken{}).Error; err != nil {
			return err
		}

		m := &models.OtpToken{
			ID:        otp.ID,
			Email:     otp.Email,
			Otp:       otp.Otp,
			Purpose:   string(otp.Purpose),
			ExpiresAt: otp.ExpiresAt,
			Used:      false,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		otp.CreatedAt = m.CreatedAt
		return nil
	})
}

// Consume atomically marks the matching record used. The purpose is part of
// the match, so a reset code cannot be redeemed for email verification.
func (r *OtpRepository) Consume(ctx context.Context, email, code string, purpose entities.OtpPurpose) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.OtpToken
		err := tx.
			Where("email = ? AND otp = ? AND purpose = ? AND used = ?", email, code, string(purpose), false).
			First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidOtp
			}
			return err
		}

		if m.ExpiresAt.Before(time.Now()) {
			if err := tx.Delete(&models.OtpToken{}, "id = ?", m.ID).Error; err != nil {
				return err
			}
			return domainerrors.ErrOtpExpired
		}

		// Conditional update: a concurrent consume that already flipped the
		// flag makes RowsAffected zero, and this caller loses the race.
		result := tx.Model(&models.OtpToken{}).
			Where("id = ? AND used = ?", m.ID, false).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrInvalidOtp
		}
		return nil
	})
}

// DeleteExpired removes records whose expiry has passed
func (r *OtpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.OtpToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
