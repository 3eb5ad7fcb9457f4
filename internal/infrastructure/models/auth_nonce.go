package models

import (
	"time"

	"github.com/google/uuid"
)

type AuthNonce struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress string    `gorm:"type:varchar(42);index;not null"`
	Nonce         string    `gorm:"type:varchar(64);not null"`
	ExpiresAt     time.Time `gorm:"index;not null"`
	Used          bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
}
