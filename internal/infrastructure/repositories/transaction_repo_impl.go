package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	domainrepos "payzen.backend/internal/domain/repositories"
	"payzen.backend/internal/infrastructure/models"
)

// TransactionRepository implements payment record storage
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new pending transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := &models.Transaction{
		ID:            tx.ID,
		FromWallet:    tx.FromWallet,
		ToWallet:      tx.ToWallet,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Status:        string(tx.Status),
		TxHash:        tx.TxHash.Ptr(),
		Note:          tx.Note.Ptr(),
		PaymentLinkID: tx.PaymentLinkID,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Finalize transitions a pending transaction to a terminal status. The
// status='pending' guard makes the first terminal write win; a second
// caller finds zero matching rows and gets ErrAlreadyFinalized.
func (r *TransactionRepository) Finalize(ctx context.Context, id uuid.UUID, status entities.TransactionStatus, txHash string) (*entities.Transaction, error) {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}

	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, string(entities.TransactionStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing record from a lost race.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.ErrAlreadyFinalized
	}

	return r.GetByID(ctx, id)
}

// ListForWallet lists transactions where the wallet is sender or recipient,
// newest first
func (r *TransactionRepository) ListForWallet(ctx context.Context, walletAddress string, limit, offset int) ([]*entities.Transaction, error) {
	var txModels []models.Transaction
	err := r.db.WithContext(ctx).
		Where("from_wallet = ? OR to_wallet = ?", walletAddress, walletAddress).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(txModels), nil
}

// ListSent lists completed transactions sent by the wallet, newest first.
// Pending intents never appear here; they are only visible via ListForWallet.
func (r *TransactionRepository) ListSent(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	var txModels []models.Transaction
	err := r.db.WithContext(ctx).
		Where("from_wallet = ? AND status = ?", walletAddress, string(entities.TransactionStatusCompleted)).
		Order("created_at DESC").
		Limit(limit).
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(txModels), nil
}

// ListReceived lists completed transactions received by the wallet, newest
// first
func (r *TransactionRepository) ListReceived(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	var txModels []models.Transaction
	err := r.db.WithContext(ctx).
		Where("to_wallet = ? AND status = ?", walletAddress, string(entities.TransactionStatusCompleted)).
		Order("created_at DESC").
		Limit(limit).
		Find(&txModels).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(txModels), nil
}

// Aggregate sums completed transactions for the wallet. Nil bounds mean
// all time; bounds are half-open [from, to).
func (r *TransactionRepository) Aggregate(ctx context.Context, walletAddress string, from, to *time.Time) (*domainrepos.LedgerAggregate, error) {
	agg := &domainrepos.LedgerAggregate{}

	type row struct {
		Count int64
		Total float64
	}

	query := func(column string) (*row, error) {
		var out row
		q := r.db.WithContext(ctx).
			Model(&models.Transaction{}).
			Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
			Where(column+" = ? AND status = ?", walletAddress, string(entities.TransactionStatusCompleted))
		if from != nil {
			q = q.Where("created_at >= ?", *from)
		}
		if to != nil {
			q = q.Where("created_at < ?", *to)
		}
		if err := q.Scan(&out).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}

	received, err := query("to_wallet")
	if err != nil {
		return nil, err
	}
	sent, err := query("from_wallet")
	if err != nil {
		return nil, err
	}

	agg.ReceivedCount = received.Count
	agg.ReceivedAmount = received.Total
	agg.SentCount = sent.Count
	agg.SentAmount = sent.Total
	return agg, nil
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:            m.ID,
		FromWallet:    m.FromWallet,
		ToWallet:      m.ToWallet,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        entities.TransactionStatus(m.Status),
		TxHash:        null.StringFromPtr(m.TxHash),
		Note:          null.StringFromPtr(m.Note),
		PaymentLinkID: m.PaymentLinkID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *TransactionRepository) toEntities(txModels []models.Transaction) []*entities.Transaction {
	out := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		out = append(out, r.toEntity(&txModels[i]))
	}
	return out
}
