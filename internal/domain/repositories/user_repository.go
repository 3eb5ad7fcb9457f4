package repositories

import (
	"context"

	"github.com/google/uuid"
	"payzen.backend/internal/domain/entities"
)

// UserRepository defines user data operations. Wallet and username lookups
// are case-insensitive; both are stored lower-cased.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// FindCollision returns the first user whose wallet or username matches,
	// or ErrNotFound. Used by registration to report which field collided.
	FindCollision(ctx context.Context, walletAddress, username string) (*entities.User, error)
}
