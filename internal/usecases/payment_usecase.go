package usecases

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/domain/repositories"
	"payzen.backend/internal/infrastructure/blockchain"
	"payzen.backend/pkg/crypto"
	"payzen.backend/pkg/logger"
	"payzen.backend/pkg/utils"
)

// ChainGateway is the chain read surface the usecases consume
type ChainGateway interface {
	GetBalance(ctx context.Context, walletAddress string) entities.BalanceResult
	VerifyTransactionSuccess(ctx context.Context, txHash string) (bool, error)
	DecodeTransferEvent(ctx context.Context, txHash string) (*entities.TransferEvent, error)
	GetTransactionDetail(ctx context.Context, txHash string) *entities.TransactionDetail
	IsConnected(ctx context.Context) bool
}

// amountPattern admits positive decimals with at most six fractional
// digits, the token's smallest unit
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,6})?$`)

// PaymentUsecase handles the payment ledger and payment links
type PaymentUsecase struct {
	txRepo    repositories.TransactionRepository
	linkRepo  repositories.PaymentLinkRepository
	userRepo  repositories.UserRepository
	gateway   ChainGateway
	publicURL string
	now       func() time.Time
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	txRepo repositories.TransactionRepository,
	linkRepo repositories.PaymentLinkRepository,
	userRepo repositories.UserRepository,
	gateway ChainGateway,
	publicURL string,
) *PaymentUsecase {
	return &PaymentUsecase{
		txRepo:    txRepo,
		linkRepo:  linkRepo,
		userRepo:  userRepo,
		gateway:   gateway,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// ResolveRecipient turns an address or @username into a normalized wallet
// address
func (u *PaymentUsecase) ResolveRecipient(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if blockchain.IsValidAddress(identifier) {
		return blockchain.NormalizeAddress(identifier), nil
	}

	username := strings.ToLower(strings.TrimPrefix(identifier, "@"))
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return "", domainerrors.ErrRecipientNotFound
		}
		return "", err
	}
	return user.WalletAddress, nil
}

// SendPayment records a pending payment intent. No on-chain action happens
// here; the client submits the transfer with its own wallet and reports
// back through AttachProof.
func (u *PaymentUsecase) SendPayment(ctx context.Context, fromWallet string, input *entities.SendPaymentInput) (*entities.Transaction, error) {
	from := blockchain.NormalizeAddress(fromWallet)

	to, err := u.ResolveRecipient(ctx, input.Recipient)
	if err != nil {
		return nil, err
	}
	if to == from {
		return nil, domainerrors.BadRequest("cannot send a payment to yourself")
	}

	amount := strings.TrimSpace(input.Amount)
	if !validAmount(amount) {
		return nil, domainerrors.ErrInvalidAmount
	}

	var linkID *uuid.UUID
	if input.LinkCode != "" {
		link, err := u.linkRepo.GetActiveByCode(ctx, input.LinkCode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.ErrLinkNotFound
			}
			return nil, err
		}
		if link.User.WalletAddress != to {
			return nil, domainerrors.BadRequest("recipient does not match payment link owner")
		}
		if !link.FlexibleAmount {
			if !link.Amount.Valid {
				return nil, domainerrors.ErrLinkAmountRequired
			}
			if !sameAmount(amount, link.Amount.String) {
				return nil, domainerrors.ErrLinkAmountMismatch
			}
		}
		linkID = &link.ID
	}

	// Advisory pre-check: catches obvious overdrafts early but is skipped
	// when the chain is unreachable. The real guard is the on-chain
	// transfer itself.
	if balance := u.gateway.GetBalance(ctx, from); !balance.Unavailable {
		available, _ := strconv.ParseFloat(balance.Amount, 64)
		required, _ := strconv.ParseFloat(amount, 64)
		if available < required {
			return nil, domainerrors.NewError(
				fmt.Sprintf("insufficient balance: available %s, required %s", balance.Amount, amount),
				domainerrors.ErrInsufficientFunds,
			)
		}
	}

	now := u.now()
	tx := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		FromWallet:    from,
		ToWallet:      to,
		Amount:        amount,
		Currency:      "USDC",
		Status:        entities.TransactionStatusPending,
		PaymentLinkID: linkID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if note := strings.TrimSpace(input.Note); note != "" {
		tx.Note.SetValid(note)
	}

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// AttachProof reconciles a pending transaction against an on-chain
// transfer and moves it to a terminal status
func (u *PaymentUsecase) AttachProof(ctx context.Context, id uuid.UUID, requesterWallet string, input *entities.UpdateTransactionInput) (*entities.Transaction, error) {
	if !input.Status.Terminal() {
		return nil, domainerrors.BadRequest("status must be completed or failed")
	}

	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blockchain.NormalizeAddress(requesterWallet) != tx.FromWallet {
		return nil, domainerrors.ErrForbidden
	}
	if tx.Status.Terminal() {
		return nil, domainerrors.ErrAlreadyFinalized
	}

	if input.TxHash != "" {
		ok, err := u.gateway.VerifyTransactionSuccess(ctx, input.TxHash)
		if err != nil {
			// Chain outage must surface as retryable, not as a failed
			// verification: the record stays pending.
			return nil, err
		}
		if !ok {
			return nil, domainerrors.ErrInvalidProof
		}
	}

	done, err := u.txRepo.Finalize(ctx, id, input.Status, input.TxHash)
	if err != nil {
		return nil, err
	}

	if done.Status == entities.TransactionStatusCompleted && done.PaymentLinkID != nil {
		u.recordLinkPayment(ctx, done)
	}
	return done, nil
}

// recordLinkPayment writes the link usage row. The transaction is already
// final, so a failure here only loses the usage counter.
func (u *PaymentUsecase) recordLinkPayment(ctx context.Context, tx *entities.Transaction) {
	err := u.linkRepo.RecordPayment(ctx, &entities.PaymentLinkPayment{
		ID:            utils.GenerateUUIDv7(),
		PaymentLinkID: *tx.PaymentLinkID,
		TransactionID: tx.ID,
		PayerWallet:   tx.FromWallet,
		Amount:        tx.Amount,
		CreatedAt:     u.now(),
	})
	if err != nil {
		logger.Error(ctx, "failed to record payment link usage",
			zap.String("transaction_id", tx.ID.String()),
			zap.String("payment_link_id", tx.PaymentLinkID.String()),
			zap.Error(err))
	}
}

// GetTransaction returns a transaction visible to the requester, enriched
// best-effort with on-chain detail when a tx hash is attached
func (u *PaymentUsecase) GetTransaction(ctx context.Context, id uuid.UUID, requesterWallet string) (*entities.Transaction, *entities.TransactionDetail, error) {
	tx, err := u.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	wallet := blockchain.NormalizeAddress(requesterWallet)
	if wallet != tx.FromWallet && wallet != tx.ToWallet {
		// Uniform not-found so existence does not leak.
		return nil, nil, domainerrors.ErrNotFound
	}

	var detail *entities.TransactionDetail
	if tx.TxHash.Valid {
		detail = u.gateway.GetTransactionDetail(ctx, tx.TxHash.String)
	}
	return tx, detail, nil
}

// ListTransactions lists both sides of the wallet's ledger, any status
func (u *PaymentUsecase) ListTransactions(ctx context.Context, walletAddress string, limit, offset int) ([]*entities.Transaction, error) {
	return u.txRepo.ListForWallet(ctx, blockchain.NormalizeAddress(walletAddress), utils.ClampLimit(limit), utils.ClampOffset(offset))
}

// ListSent lists completed payments the wallet sent
func (u *PaymentUsecase) ListSent(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	return u.txRepo.ListSent(ctx, blockchain.NormalizeAddress(walletAddress), utils.ClampLimit(limit))
}

// ListReceived lists completed payments the wallet received
func (u *PaymentUsecase) ListReceived(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error) {
	return u.txRepo.ListReceived(ctx, blockchain.NormalizeAddress(walletAddress), utils.ClampLimit(limit))
}

// CreatePaymentLink creates a code-addressed payment request and returns
// it with its shareable URL
func (u *PaymentUsecase) CreatePaymentLink(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePaymentLinkInput) (*entities.PaymentLink, string, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, "", domainerrors.BadRequest("title is required")
	}

	amount := strings.TrimSpace(input.Amount)
	if !input.FlexibleAmount {
		if !validAmount(amount) {
			return nil, "", domainerrors.ErrInvalidAmount
		}
	}

	code, err := crypto.GenerateLinkCode()
	if err != nil {
		return nil, "", err
	}

	link := &entities.PaymentLink{
		ID:             utils.GenerateUUIDv7(),
		UserID:         ownerID,
		Title:          title,
		FlexibleAmount: input.FlexibleAmount,
		LinkCode:       code,
		IsActive:       true,
		CreatedAt:      u.now(),
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		link.Description.SetValid(desc)
	}
	if amount != "" && validAmount(amount) {
		link.Amount.SetValid(amount)
	}

	if err := u.linkRepo.Create(ctx, link); err != nil {
		return nil, "", err
	}
	return link, u.linkURL(code), nil
}

// GetPaymentLink is the public payer-facing lookup
func (u *PaymentUsecase) GetPaymentLink(ctx context.Context, code string) (*entities.PaymentLinkWithOwner, error) {
	link, err := u.linkRepo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrLinkNotFound
		}
		return nil, err
	}
	return link, nil
}

// ListPaymentLinks lists the owner's links, active and deactivated alike
func (u *PaymentUsecase) ListPaymentLinks(ctx context.Context, ownerID uuid.UUID) ([]*entities.PaymentLink, error) {
	return u.linkRepo.ListByOwner(ctx, ownerID)
}

// DeactivatePaymentLink disables the owner's link. Codes owned by others
// are a silent no-op so existence does not leak.
func (u *PaymentUsecase) DeactivatePaymentLink(ctx context.Context, code string, ownerID uuid.UUID) error {
	return u.linkRepo.Deactivate(ctx, code, ownerID)
}

func (u *PaymentUsecase) linkURL(code string) string {
	return u.publicURL + "/pay/" + code
}

func validAmount(amount string) bool {
	if !amountPattern.MatchString(amount) {
		return false
	}
	value, err := strconv.ParseFloat(amount, 64)
	return err == nil && value > 0
}

func sameAmount(a, b string) bool {
	av, errA := strconv.ParseFloat(a, 64)
	bv, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && av == bv
}
