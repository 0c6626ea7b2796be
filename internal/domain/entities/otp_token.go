package entities

import (
	"time"

	"github.com/google/uuid"
)

// OtpToken represents a one-time passcode record. Email is deliberately not a
// foreign key: recovery must work even for addresses caught mid-registration.
type OtpToken struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Otp       string     `json:"-"`
	Purpose   OtpPurpose `json:"purpose"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Used      bool       `json:"used"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Expired reports whether the code's validity window has passed.
func (o *OtpToken) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
