package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/infrastructure/models"
)

// PaymentLinkRepository implements payment link storage
type PaymentLinkRepository struct {
	db *gorm.DB
}

// NewPaymentLinkRepository creates a new payment link repository
func NewPaymentLinkRepository(db *gorm.DB) *PaymentLinkRepository {
	return &PaymentLinkRepository{db: db}
}

// Create creates a new payment link
func (r *PaymentLinkRepository) Create(ctx context.Context, link *entities.PaymentLink) error {
	m := &models.PaymentLink{
		ID:             link.ID,
		UserID:         link.UserID,
		Title:          link.Title,
		Description:    link.Description.Ptr(),
		Amount:         link.Amount.Ptr(),
		FlexibleAmount: link.FlexibleAmount,
		LinkCode:       link.LinkCode,
		TimesUsed:      link.TimesUsed,
		IsActive:       link.IsActive,
		CreatedAt:      link.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetActiveByCode returns an active link with its owner summary. Unknown
// and deactivated codes both come back as ErrNotFound.
func (r *PaymentLinkRepository) GetActiveByCode(ctx context.Context, code string) (*entities.PaymentLinkWithOwner, error) {
	var m models.PaymentLink
	err := r.db.WithContext(ctx).
		Where("link_code = ? AND is_active = ?", code, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	var owner models.User
	if err := r.db.WithContext(ctx).Where("id = ?", m.UserID).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	return &entities.PaymentLinkWithOwner{
		PaymentLink: *r.toEntity(&m),
		User: entities.UserSummary{
			WalletAddress: owner.WalletAddress,
			Username:      owner.Username,
			FullName:      owner.FullName,
		},
	}, nil
}

// ListByOwner lists the owner's links, newest first
func (r *PaymentLinkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.PaymentLink, error) {
	var linkModels []models.PaymentLink
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&linkModels).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.PaymentLink, 0, len(linkModels))
	for i := range linkModels {
		out = append(out, r.toEntity(&linkModels[i]))
	}
	return out, nil
}

// Deactivate flips is_active for the owner's link. A code owned by someone
// else matches no rows and is a silent no-op.
func (r *PaymentLinkRepository) Deactivate(ctx context.Context, code string, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.PaymentLink{}).
		Where("link_code = ? AND user_id = ?", code, ownerID).
		Update("is_active", false).Error
}

// RecordPayment inserts the join row and bumps times_used in one
// transaction so the counter never drifts from the join table.
func (r *PaymentLinkRepository) RecordPayment(ctx context.Context, payment *entities.PaymentLinkPayment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := &models.PaymentLinkPayment{
			ID:            payment.ID,
			PaymentLinkID: payment.PaymentLinkID,
			TransactionID: payment.TransactionID,
			PayerWallet:   payment.PayerWallet,
			Amount:        payment.Amount,
			CreatedAt:     payment.CreatedAt,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.PaymentLink{}).
			Where("id = ?", payment.PaymentLinkID).
			Update("times_used", gorm.Expr("times_used + 1")).Error
	})
}

func (r *PaymentLinkRepository) toEntity(m *models.PaymentLink) *entities.PaymentLink {
	return &entities.PaymentLink{
		ID:             m.ID,
		UserID:         m.UserID,
		Title:          m.Title,
		Description:    null.StringFromPtr(m.Description),
		Amount:         null.StringFromPtr(m.Amount),
		FlexibleAmount: m.FlexibleAmount,
		LinkCode:       m.LinkCode,
		TimesUsed:      m.TimesUsed,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}
