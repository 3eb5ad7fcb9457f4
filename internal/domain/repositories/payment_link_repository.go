package repositories

import (
	"context"

	"github.com/google/uuid"
	"payzen.backend/internal/domain/entities"
)

// PaymentLinkRepository defines payment link storage
type PaymentLinkRepository interface {
	Create(ctx context.Context, link *entities.PaymentLink) error
	// GetActiveByCode returns the link with its owner summary, or
	// ErrNotFound for unknown and deactivated codes alike (uniform 404).
	GetActiveByCode(ctx context.Context, code string) (*entities.PaymentLinkWithOwner, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.PaymentLink, error)
	// Deactivate flips is_active for the owner's link; a code that does not
	// belong to the owner is a silent no-op.
	Deactivate(ctx context.Context, code string, ownerID uuid.UUID) error
	// RecordPayment inserts the join row and increments times_used in one
	// transaction.
	RecordPayment(ctx context.Context, payment *entities.PaymentLinkPayment) error
}
