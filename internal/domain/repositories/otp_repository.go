package repositories

import (
	"context"
	"time"

	"trust-fund.backend/internal/domain/entities"
)

// OtpRepository owns the one-time-passcode records, the only shared mutable
// state in the auth core. Implementations must make Replace and Consume each a
// single transaction against the backing store.
type OtpRepository interface {
	// Replace invalidates any active (unused, unexpired) record for the email
	// and inserts a new one, so at most one OTP per email is ever live.
	Replace(ctx context.Context, otp *entities.OtpToken) error

	// Consume atomically marks the matching record used. A record matches on
	// email, code and purpose, so a code issued for one flow cannot be
	// redeemed in another. It fails with errors.ErrInvalidOtp when no unused
	// record matches (including when a concurrent consume won the race) and
	// errors.ErrOtpExpired when the record exists but its window has passed,
	// deleting it as a side effect.
	Consume(ctx context.Context, email, code string, purpose entities.OtpPurpose) error

	// DeleteExpired removes records whose expiry has passed and returns how
	// many were deleted. Used by the background sweep, not the request path.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
