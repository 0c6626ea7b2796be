package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpToken has no user foreign key on purpose: recovery has to work for
// addresses that are mid-registration.
type OtpToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	Otp       string    `gorm:"type:char(6);not null"`
	Purpose   string    `gorm:"type:varchar(32);not null;default:reset_password"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
