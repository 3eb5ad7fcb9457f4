package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletAddress string    `gorm:"type:varchar(42);uniqueIndex;not null"`
	FullName      string    `gorm:"type:varchar(255);not null"`
	Username      string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	BusinessName  *string   `gorm:"type:varchar(255)"`
	BusinessType  *string   `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
}
