package jobs

import (
	"context"
	"log"
	"time"
)

// otpSweeper is the slice of OtpRepository the cleanup job needs.
type otpSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// OtpCleanupJob periodically removes expired OTP records. Expired codes are
// already unusable on the request path; the sweep just keeps the table small.
type OtpCleanupJob struct {
	repo     otpSweeper
	interval time.Duration
	stop     chan struct{}
}

func NewOtpCleanupJob(repo otpSweeper) *OtpCleanupJob {
	return &OtpCleanupJob{
		repo:     repo,
		interval: 5 * time.Minute,
		stop:     make(chan struct{}),
	}
}

func (j *OtpCleanupJob) Start(ctx context.Context) {
	log.Println("🕐 Starting OTP cleanup job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ OTP cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ OTP cleanup job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *OtpCleanupJob) Stop() {
	close(j.stop)
}

func (j *OtpCleanupJob) sweep(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error deleting expired OTP records: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Deleted %d expired OTP records", deleted)
	}
}
