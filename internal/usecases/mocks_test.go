package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"payzen.backend/internal/domain/entities"
	"payzen.backend/internal/domain/repositories"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindCollision(ctx context.Context, walletAddress, username string) (*entities.User, error) {
	args := m.Called(ctx, walletAddress, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock NonceRepository
type MockNonceRepository struct {
	mock.Mock
}

func (m *MockNonceRepository) Create(ctx context.Context, nonce *entities.AuthNonce) error {
	args := m.Called(ctx, nonce)
	return args.Error(0)
}

func (m *MockNonceRepository) Consume(ctx context.Context, walletAddress, nonce string, now time.Time) (bool, error) {
	args := m.Called(ctx, walletAddress, nonce, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockNonceRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Finalize(ctx context.Context, id uuid.UUID, status entities.TransactionStatus, txHash string) (*entities.Transaction, error) {
	args := m.Called(ctx, id, status, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListForWallet(ctx context.Context, walletAddress string, limit, offset int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, walletAddress, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListSent(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, walletAddress, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListReceived(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, walletAddress, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Aggregate(ctx context.Context, walletAddress string, from, to *time.Time) (*repositories.LedgerAggregate, error) {
	args := m.Called(ctx, walletAddress, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.LedgerAggregate), args.Error(1)
}

// Mock PaymentLinkRepository
type MockPaymentLinkRepository struct {
	mock.Mock
}

func (m *MockPaymentLinkRepository) Create(ctx context.Context, link *entities.PaymentLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockPaymentLinkRepository) GetActiveByCode(ctx context.Context, code string) (*entities.PaymentLinkWithOwner, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentLinkWithOwner), args.Error(1)
}

func (m *MockPaymentLinkRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entities.PaymentLink, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PaymentLink), args.Error(1)
}

func (m *MockPaymentLinkRepository) Deactivate(ctx context.Context, code string, ownerID uuid.UUID) error {
	args := m.Called(ctx, code, ownerID)
	return args.Error(0)
}

func (m *MockPaymentLinkRepository) RecordPayment(ctx context.Context, payment *entities.PaymentLinkPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// Mock ChainGateway
type MockChainGateway struct {
	mock.Mock
}

func (m *MockChainGateway) GetBalance(ctx context.Context, walletAddress string) entities.BalanceResult {
	args := m.Called(ctx, walletAddress)
	return args.Get(0).(entities.BalanceResult)
}

func (m *MockChainGateway) VerifyTransactionSuccess(ctx context.Context, txHash string) (bool, error) {
	args := m.Called(ctx, txHash)
	return args.Bool(0), args.Error(1)
}

func (m *MockChainGateway) DecodeTransferEvent(ctx context.Context, txHash string) (*entities.TransferEvent, error) {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferEvent), args.Error(1)
}

func (m *MockChainGateway) GetTransactionDetail(ctx context.Context, txHash string) *entities.TransactionDetail {
	args := m.Called(ctx, txHash)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entities.TransactionDetail)
}

func (m *MockChainGateway) IsConnected(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}
