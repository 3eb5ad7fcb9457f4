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

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:            user.ID,
		WalletAddress: user.WalletAddress,
		FullName:      user.FullName,
		Username:      user.Username,
		BusinessName:  user.BusinessName.Ptr(),
		BusinessType:  user.BusinessType.Ptr(),
		CreatedAt:     user.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByWallet gets a user by wallet address. Addresses are stored
// lower-cased, so the lookup is a plain equality on the normalized form.
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindCollision returns the first user whose wallet or username matches
func (r *UserRepository) FindCollision(ctx context.Context, walletAddress, username string) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).
		Where("wallet_address = ? OR username = ?", walletAddress, username).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:            m.ID,
		WalletAddress: m.WalletAddress,
		FullName:      m.FullName,
		Username:      m.Username,
		BusinessName:  null.StringFromPtr(m.BusinessName),
		BusinessType:  null.StringFromPtr(m.BusinessType),
		CreatedAt:     m.CreatedAt,
	}
}
