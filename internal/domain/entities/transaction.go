package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionStatus represents the payment record state
type TransactionStatus string

// Status transitions are monotonic: pending is the only non-terminal state.
const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether the status admits no further transitions
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction represents an off-chain payment record reconciled against an
// on-chain transfer
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	FromWallet    string            `json:"from_wallet"`
	ToWallet      string            `json:"to_wallet"`
	Amount        string            `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	TxHash        null.String       `json:"tx_hash,omitempty"`
	Note          null.String       `json:"note,omitempty"`
	PaymentLinkID *uuid.UUID        `json:"payment_link_id,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SendPaymentInput represents input for creating a pending transaction
type SendPaymentInput struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Note      string `json:"note,omitempty"`
	LinkCode  string `json:"link_code,omitempty"`
}

// UpdateTransactionInput represents input for attaching on-chain proof
type UpdateTransactionInput struct {
	Status TransactionStatus `json:"status" binding:"required"`
	TxHash string            `json:"tx_hash,omitempty"`
}
