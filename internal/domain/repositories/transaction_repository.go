package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"payzen.backend/internal/domain/entities"
)

// LedgerAggregate holds completed-transaction sums and counts for a wallet
// over a time window
type LedgerAggregate struct {
	ReceivedCount  int64
	ReceivedAmount float64
	SentCount      int64
	SentAmount     float64
}

// TransactionRepository defines payment record storage and the status state
// machine. Finalize is the only mutation after creation.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	// Finalize transitions a pending record to a terminal status with an
	// optional tx hash. Returns ErrAlreadyFinalized when the record exists
	// but is no longer pending (first terminal write wins) and ErrNotFound
	// when it does not exist.
	Finalize(ctx context.Context, id uuid.UUID, status entities.TransactionStatus, txHash string) (*entities.Transaction, error)
	ListForWallet(ctx context.Context, walletAddress string, limit, offset int) ([]*entities.Transaction, error)
	ListSent(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error)
	ListReceived(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error)
	// Aggregate sums completed rows for the wallet; nil bounds mean all time.
	Aggregate(ctx context.Context, walletAddress string, from, to *time.Time) (*LedgerAggregate, error)
}
