package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentLink struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Description    *string   `gorm:"type:text"`
	Amount         *string   `gorm:"type:decimal(18,6)"`
	FlexibleAmount bool      `gorm:"not null;default:false"`
	LinkCode       string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	TimesUsed      int       `gorm:"not null;default:0"`
	IsActive       bool      `gorm:"not null;default:true"`
	CreatedAt      time.Time
}

type PaymentLinkPayment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentLinkID uuid.UUID `gorm:"type:uuid;index;not null"`
	TransactionID uuid.UUID `gorm:"type:uuid;index;not null"`
	PayerWallet   string    `gorm:"type:varchar(42);not null"`
	Amount        string    `gorm:"type:decimal(18,6);not null"`
	CreatedAt     time.Time
}
