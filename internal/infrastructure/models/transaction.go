package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FromWallet    string     `gorm:"type:varchar(42);index;not null"`
	ToWallet      string     `gorm:"type:varchar(42);index;not null"`
	Amount        string     `gorm:"type:decimal(18,6);not null"`
	Currency      string     `gorm:"type:varchar(10);not null;default:'USDC'"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"`
	TxHash        *string    `gorm:"type:varchar(66)"`
	Note          *string    `gorm:"type:varchar(500)"`
	PaymentLinkID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
