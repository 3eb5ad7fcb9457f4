package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"payzen.backend/internal/domain/entities"
	"payzen.backend/internal/infrastructure/models"
)

// NonceRepository implements challenge nonce storage
type NonceRepository struct {
	db *gorm.DB
}

// NewNonceRepository creates a new nonce repository
func NewNonceRepository(db *gorm.DB) *NonceRepository {
	return &NonceRepository{db: db}
}

// Create stores a freshly issued challenge nonce
func (r *NonceRepository) Create(ctx context.Context, nonce *entities.AuthNonce) error {
	m := &models.AuthNonce{
		ID:            nonce.ID,
		WalletAddress: nonce.WalletAddress,
		Nonce:         nonce.Nonce,
		ExpiresAt:     nonce.ExpiresAt,
		Used:          nonce.Used,
		CreatedAt:     nonce.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// Consume marks a matching unused, unexpired nonce as used. The conditional
// UPDATE makes consumption exactly-once: two concurrent callers race on
// used=false and only one sees RowsAffected=1.
func (r *NonceRepository) Consume(ctx context.Context, walletAddress, nonce string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AuthNonce{}).
		Where("wallet_address = ? AND nonce = ? AND used = ? AND expires_at > ?", walletAddress, nonce, false, now).
		Update("used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DeleteExpired purges nonces past expiry and reports how many went away
func (r *NonceRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.AuthNonce{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
