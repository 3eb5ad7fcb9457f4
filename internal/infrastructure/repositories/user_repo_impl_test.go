package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndLookups(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		ID:            uuid.New(),
		WalletAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		FullName:      "Alice Merchant",
		Username:      "alice",
		BusinessName:  null.StringFrom("Alice Coffee"),
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.WalletAddress, byID.WalletAddress)
	require.Equal(t, "Alice Coffee", byID.BusinessName.String)
	require.False(t, byID.BusinessType.Valid)

	byWallet, err := repo.GetByWallet(ctx, u.WalletAddress)
	require.NoError(t, err)
	require.Equal(t, u.ID, byWallet.ID)

	byUsername, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByWallet(ctx, "0x0000000000000000000000000000000000000001")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.FindCollision(ctx, "0x0000000000000000000000000000000000000001", "nobody")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_FindCollision(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{
		ID:            uuid.New(),
		WalletAddress: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		FullName:      "Alice Merchant",
		Username:      "alice",
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.Create(ctx, u))

	byWallet, err := repo.FindCollision(ctx, u.WalletAddress, "other")
	require.NoError(t, err)
	require.Equal(t, u.ID, byWallet.ID)

	byUsername, err := repo.FindCollision(ctx, "0x0000000000000000000000000000000000000002", "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)
}
