package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentLink represents a shareable, code-addressed payment request
type PaymentLink struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	Title          string      `json:"title"`
	Description    null.String `json:"description,omitempty"`
	Amount         null.String `json:"amount,omitempty"`
	FlexibleAmount bool        `json:"flexible_amount"`
	LinkCode       string      `json:"link_code"`
	TimesUsed      int         `json:"times_used"`
	IsActive       bool        `json:"is_active"`
	CreatedAt      time.Time   `json:"created_at"`
}

// PaymentLinkWithOwner is the public payer-facing view of a link
type PaymentLinkWithOwner struct {
	PaymentLink
	User UserSummary `json:"user"`
}

// PaymentLinkPayment joins a ledger transaction to the link that produced it
type PaymentLinkPayment struct {
	ID            uuid.UUID `json:"id"`
	PaymentLinkID uuid.UUID `json:"payment_link_id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	PayerWallet   string    `json:"payer_wallet"`
	Amount        string    `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreatePaymentLinkInput represents input for creating a payment link
type CreatePaymentLinkInput struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description,omitempty"`
	Amount         string `json:"amount,omitempty"`
	FlexibleAmount bool   `json:"flexible_amount"`
}
