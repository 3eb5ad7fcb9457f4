package jobs

import (
	"context"
	"log"
	"time"
)

// nonceStore is the slice of nonce storage the cleanup job needs
type nonceStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// NonceCleanupJob periodically purges expired challenge nonces. Expired
// nonces are already unusable (consumption checks expiry), so this job is
// pure housekeeping.
type NonceCleanupJob struct {
	repo     nonceStore
	interval time.Duration
	stop     chan struct{}
	now      func() time.Time
}

func NewNonceCleanupJob(repo nonceStore, interval time.Duration) *NonceCleanupJob {
	return &NonceCleanupJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

func (j *NonceCleanupJob) Start(ctx context.Context) {
	log.Println("🕐 Starting nonce cleanup job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Nonce cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Nonce cleanup job stopped")
			return
		case <-ticker.C:
			j.purgeExpired(ctx)
		}
	}
}

func (j *NonceCleanupJob) Stop() {
	close(j.stop)
}

func (j *NonceCleanupJob) purgeExpired(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		log.Printf("❌ Error purging expired nonces: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("✅ Purged %d expired nonces", deleted)
	}
}
