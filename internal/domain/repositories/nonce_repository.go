package repositories

import (
	"context"
	"time"

	"payzen.backend/internal/domain/entities"
)

// NonceRepository defines challenge nonce storage. Consume must be
// exactly-once under concurrent callers.
type NonceRepository interface {
	Create(ctx context.Context, nonce *entities.AuthNonce) error
	// Consume atomically marks a matching unused, unexpired nonce as used.
	// Returns false when no such row exists; never an error for a plain miss.
	Consume(ctx context.Context, walletAddress, nonce string, now time.Time) (bool, error)
	// DeleteExpired purges rows past expiry and reports how many went away.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
