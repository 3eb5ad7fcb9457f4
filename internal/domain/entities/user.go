package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a registered wallet owner
type User struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	WalletAddress string      `json:"wallet_address"`
	FullName      string      `json:"full_name"`
	Username      string      `json:"username"`
	BusinessName  null.String `json:"business_name,omitempty"`
	BusinessType  null.String `json:"business_type,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Username      string `json:"username" binding:"required"`
	BusinessName  string `json:"business_name,omitempty"`
	BusinessType  string `json:"business_type,omitempty"`
}

// UserSummary is the public owner view attached to payment links
type UserSummary struct {
	WalletAddress string `json:"wallet_address"`
	Username      string `json:"username"`
	FullName      string `json:"full_name"`
}

// Summary returns the public view of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		WalletAddress: u.WalletAddress,
		Username:      u.Username,
		FullName:      u.FullName,
	}
}
