package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/usecases"
)

const (
	senderWallet    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	recipientWallet = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	proofHash       = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

type paymentMocks struct {
	txs     *MockTransactionRepository
	links   *MockPaymentLinkRepository
	users   *MockUserRepository
	gateway *MockChainGateway
}

func newPaymentUsecase() (*usecases.PaymentUsecase, *paymentMocks) {
	m := &paymentMocks{
		txs:     new(MockTransactionRepository),
		links:   new(MockPaymentLinkRepository),
		users:   new(MockUserRepository),
		gateway: new(MockChainGateway),
	}
	uc := usecases.NewPaymentUsecase(m.txs, m.links, m.users, m.gateway, "https://payzen.app")
	return uc, m
}

func richBalance(m *paymentMocks) {
	m.gateway.On("GetBalance", mock.Anything, mock.Anything).
		Return(entities.BalanceResult{Amount: "1000000"})
}

func TestResolveRecipient(t *testing.T) {
	uc, m := newPaymentUsecase()
	ctx := context.Background()

	m.users.On("GetByUsername", mock.Anything, "alice").
		Return(&entities.User{WalletAddress: recipientWallet, Username: "alice"}, nil)
	m.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domainerrors.ErrNotFound)

	// Raw address, normalized.
	got, err := uc.ResolveRecipient(ctx, "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	require.NoError(t, err)
	assert.Equal(t, recipientWallet, got)

	// Username with and without the marker resolve identically.
	got, err = uc.ResolveRecipient(ctx, "@alice")
	require.NoError(t, err)
	assert.Equal(t, recipientWallet, got)

	got, err = uc.ResolveRecipient(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, recipientWallet, got)

	_, err = uc.ResolveRecipient(ctx, "@ghost")
	require.ErrorIs(t, err, domainerrors.ErrRecipientNotFound)
}

func TestSendPayment_CreatesPending(t *testing.T) {
	uc, m := newPaymentUsecase()
	richBalance(m)

	var created *entities.Transaction
	m.txs.On("Create", mock.Anything, mock.AnythingOfType("*entities.Transaction")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.Transaction) }).
		Return(nil)

	tx, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
		Recipient: recipientWallet,
		Amount:    "10.500000",
		Note:      " coffee ",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, created, tx)
	assert.Equal(t, entities.TransactionStatusPending, tx.Status)
	assert.Equal(t, senderWallet, tx.FromWallet)
	assert.Equal(t, recipientWallet, tx.ToWallet)
	assert.Equal(t, "10.500000", tx.Amount)
	assert.Equal(t, "USDC", tx.Currency)
	assert.Equal(t, "coffee", tx.Note.String)
	assert.False(t, tx.TxHash.Valid)
	assert.Nil(t, tx.PaymentLinkID)
}

func TestSendPayment_AmountValidation(t *testing.T) {
	uc, m := newPaymentUsecase()
	richBalance(m)
	m.txs.On("Create", mock.Anything, mock.Anything).Return(nil)

	bad := []string{"0", "0.0", "-5", "1.2345678", "ten", "1e6", "1.", ".5", ""}
	for _, amount := range bad {
		_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
			Recipient: recipientWallet,
			Amount:    amount,
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidAmount, "amount %q", amount)
	}

	good := []string{"1", "0.000001", "10.5", "123456.123456"}
	for _, amount := range good {
		_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
			Recipient: recipientWallet,
			Amount:    amount,
		})
		require.NoError(t, err, "amount %q", amount)
	}
}

func TestSendPayment_SelfPayment(t *testing.T) {
	uc, _ := newPaymentUsecase()

	_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
		Recipient: senderWallet,
		Amount:    "1",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidation, appErr.Code)
}

func TestSendPayment_InsufficientBalance(t *testing.T) {
	uc, m := newPaymentUsecase()
	m.gateway.On("GetBalance", mock.Anything, senderWallet).
		Return(entities.BalanceResult{Amount: "5"})

	_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
		Recipient: recipientWallet,
		Amount:    "10",
	})
	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	assert.Contains(t, err.Error(), "available 5")
	assert.Contains(t, err.Error(), "required 10")
	m.txs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSendPayment_BalanceCheckSkippedWhenChainDown(t *testing.T) {
	uc, m := newPaymentUsecase()
	m.gateway.On("GetBalance", mock.Anything, senderWallet).
		Return(entities.BalanceResult{Amount: "0", Unavailable: true})
	m.txs.On("Create", mock.Anything, mock.Anything).Return(nil)

	// "0" from a dead endpoint is not proof of emptiness; the intent is
	// still recorded.
	_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
		Recipient: recipientWallet,
		Amount:    "10",
	})
	require.NoError(t, err)
}

func linkWithOwner(flexible bool, amount string) *entities.PaymentLinkWithOwner {
	link := entities.PaymentLink{
		ID:             uuid.New(),
		Title:          "Invoice",
		FlexibleAmount: flexible,
		LinkCode:       "a1b2c3d4e5f60718",
		IsActive:       true,
	}
	if amount != "" {
		link.Amount = null.StringFrom(amount)
	}
	return &entities.PaymentLinkWithOwner{
		PaymentLink: link,
		User:        entities.UserSummary{WalletAddress: recipientWallet, Username: "alice"},
	}
}

func TestSendPayment_WithLink(t *testing.T) {
	uc, m := newPaymentUsecase()
	richBalance(m)
	link := linkWithOwner(false, "25")
	m.links.On("GetActiveByCode", mock.Anything, link.LinkCode).Return(link, nil)

	var created *entities.Transaction
	m.txs.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.Transaction) }).
		Return(nil)

	_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
		Recipient: recipientWallet,
		Amount:    "25.00",
		LinkCode:  link.LinkCode,
	})
	require.NoError(t, err)
	require.NotNil(t, created.PaymentLinkID)
	assert.Equal(t, link.ID, *created.PaymentLinkID)
}

func TestSendPayment_LinkMismatches(t *testing.T) {
	t.Run("unknown code", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		m.links.On("GetActiveByCode", mock.Anything, "ffffffffffffffff").Return(nil, domainerrors.ErrNotFound)

		_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
			Recipient: recipientWallet, Amount: "25", LinkCode: "ffffffffffffffff",
		})
		require.ErrorIs(t, err, domainerrors.ErrLinkNotFound)
	})

	t.Run("fixed amount mismatch", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		link := linkWithOwner(false, "25")
		m.links.On("GetActiveByCode", mock.Anything, link.LinkCode).Return(link, nil)

		_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
			Recipient: recipientWallet, Amount: "24", LinkCode: link.LinkCode,
		})
		require.ErrorIs(t, err, domainerrors.ErrLinkAmountMismatch)
	})

	t.Run("recipient is not the link owner", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		link := linkWithOwner(true, "")
		m.links.On("GetActiveByCode", mock.Anything, link.LinkCode).Return(link, nil)

		_, err := uc.SendPayment(context.Background(), senderWallet, &entities.SendPaymentInput{
			Recipient: "0xcccccccccccccccccccccccccccccccccccccccc", Amount: "25", LinkCode: link.LinkCode,
		})
		var appErr *domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
	})
}

func pendingTx(id uuid.UUID) *entities.Transaction {
	return &entities.Transaction{
		ID:         id,
		FromWallet: senderWallet,
		ToWallet:   recipientWallet,
		Amount:     "10.5",
		Currency:   "USDC",
		Status:     entities.TransactionStatusPending,
	}
}

func TestAttachProof_Completes(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()

	m.txs.On("GetByID", mock.Anything, id).Return(pendingTx(id), nil)
	m.gateway.On("VerifyTransactionSuccess", mock.Anything, proofHash).Return(true, nil)

	finalized := pendingTx(id)
	finalized.Status = entities.TransactionStatusCompleted
	finalized.TxHash = null.StringFrom(proofHash)
	m.txs.On("Finalize", mock.Anything, id, entities.TransactionStatusCompleted, proofHash).Return(finalized, nil)

	got, err := uc.AttachProof(context.Background(), id, senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusCompleted,
		TxHash: proofHash,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.TransactionStatusCompleted, got.Status)
	m.links.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
}

func TestAttachProof_Forbidden(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	m.txs.On("GetByID", mock.Anything, id).Return(pendingTx(id), nil)

	_, err := uc.AttachProof(context.Background(), id, recipientWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusCompleted,
		TxHash: proofHash,
	})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.txs.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachProof_InvalidProofLeavesPending(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	m.txs.On("GetByID", mock.Anything, id).Return(pendingTx(id), nil)
	m.gateway.On("VerifyTransactionSuccess", mock.Anything, proofHash).Return(false, nil)

	_, err := uc.AttachProof(context.Background(), id, senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusCompleted,
		TxHash: proofHash,
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidProof)
	m.txs.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachProof_ChainOutageIsRetryable(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	m.txs.On("GetByID", mock.Anything, id).Return(pendingTx(id), nil)
	m.gateway.On("VerifyTransactionSuccess", mock.Anything, proofHash).
		Return(false, domainerrors.ErrChainUnavailable)

	_, err := uc.AttachProof(context.Background(), id, senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusCompleted,
		TxHash: proofHash,
	})

	// Outage must not masquerade as a failed verification.
	require.ErrorIs(t, err, domainerrors.ErrChainUnavailable)
	m.txs.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachProof_TerminalIsImmutable(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	done := pendingTx(id)
	done.Status = entities.TransactionStatusCompleted
	m.txs.On("GetByID", mock.Anything, id).Return(done, nil)

	_, err := uc.AttachProof(context.Background(), id, senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusFailed,
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyFinalized)
}

func TestAttachProof_NonTerminalStatusRejected(t *testing.T) {
	uc, _ := newPaymentUsecase()

	_, err := uc.AttachProof(context.Background(), uuid.New(), senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusPending,
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.CodeValidation, appErr.Code)
}

func TestAttachProof_RecordsLinkUsage(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	linkID := uuid.New()

	tx := pendingTx(id)
	tx.PaymentLinkID = &linkID
	m.txs.On("GetByID", mock.Anything, id).Return(tx, nil)
	m.gateway.On("VerifyTransactionSuccess", mock.Anything, proofHash).Return(true, nil)

	finalized := *tx
	finalized.Status = entities.TransactionStatusCompleted
	finalized.TxHash = null.StringFrom(proofHash)
	m.txs.On("Finalize", mock.Anything, id, entities.TransactionStatusCompleted, proofHash).Return(&finalized, nil)

	m.links.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p *entities.PaymentLinkPayment) bool {
		return p.PaymentLinkID == linkID && p.TransactionID == id && p.PayerWallet == senderWallet && p.Amount == "10.5"
	})).Return(nil)

	_, err := uc.AttachProof(context.Background(), id, senderWallet, &entities.UpdateTransactionInput{
		Status: entities.TransactionStatusCompleted,
		TxHash: proofHash,
	})
	require.NoError(t, err)
	m.links.AssertExpectations(t)
}

func TestGetTransaction_Visibility(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()
	m.txs.On("GetByID", mock.Anything, id).Return(pendingTx(id), nil)

	tx, detail, err := uc.GetTransaction(context.Background(), id, recipientWallet)
	require.NoError(t, err)
	assert.Equal(t, id, tx.ID)
	assert.Nil(t, detail, "no tx hash, no chain detail")

	_, _, err = uc.GetTransaction(context.Background(), id, "0xdddddddddddddddddddddddddddddddddddddddd")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetTransaction_EnrichesWithChainDetail(t *testing.T) {
	uc, m := newPaymentUsecase()
	id := uuid.New()

	tx := pendingTx(id)
	tx.Status = entities.TransactionStatusCompleted
	tx.TxHash = null.StringFrom(proofHash)
	m.txs.On("GetByID", mock.Anything, id).Return(tx, nil)
	m.gateway.On("GetTransactionDetail", mock.Anything, proofHash).
		Return(&entities.TransactionDetail{Hash: proofHash, Status: "success", BlockNumber: 42})

	_, detail, err := uc.GetTransaction(context.Background(), id, senderWallet)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, uint64(42), detail.BlockNumber)
}

func TestCreatePaymentLink(t *testing.T) {
	uc, m := newPaymentUsecase()
	ownerID := uuid.New()

	var created *entities.PaymentLink
	m.links.On("Create", mock.Anything, mock.AnythingOfType("*entities.PaymentLink")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entities.PaymentLink) }).
		Return(nil)

	link, url, err := uc.CreatePaymentLink(context.Background(), ownerID, &entities.CreatePaymentLinkInput{
		Title:  "Invoice #7",
		Amount: "25",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, ownerID, created.UserID)
	assert.Len(t, created.LinkCode, 16, "8 random bytes, hex")
	assert.True(t, created.IsActive)
	assert.Equal(t, "25", created.Amount.String)
	assert.Equal(t, "https://payzen.app/pay/"+link.LinkCode, url)
}

func TestCreatePaymentLink_Validation(t *testing.T) {
	uc, _ := newPaymentUsecase()
	ownerID := uuid.New()

	_, _, err := uc.CreatePaymentLink(context.Background(), ownerID, &entities.CreatePaymentLinkInput{
		Title: "  ",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)

	// Fixed-amount links need a valid amount.
	_, _, err = uc.CreatePaymentLink(context.Background(), ownerID, &entities.CreatePaymentLinkInput{
		Title: "Invoice", Amount: "0",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	// Flexible links do not.
	uc2, m2 := newPaymentUsecase()
	m2.links.On("Create", mock.Anything, mock.Anything).Return(nil)
	_, _, err = uc2.CreatePaymentLink(context.Background(), ownerID, &entities.CreatePaymentLinkInput{
		Title: "Tip jar", FlexibleAmount: true,
	})
	require.NoError(t, err)
}

func TestGetPaymentLink_UniformNotFound(t *testing.T) {
	uc, m := newPaymentUsecase()
	m.links.On("GetActiveByCode", mock.Anything, "ffffffffffffffff").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.GetPaymentLink(context.Background(), "ffffffffffffffff")
	require.ErrorIs(t, err, domainerrors.ErrLinkNotFound)
}
