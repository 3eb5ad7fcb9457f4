package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuthNonce represents a single-use signature challenge
type AuthNonce struct {
	ID            uuid.UUID `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Nonce         string    `json:"nonce"`
	ExpiresAt     time.Time `json:"expires_at"`
	Used          bool      `json:"used"`
	CreatedAt     time.Time `json:"created_at"`
}

// NonceInput represents input for requesting a challenge nonce
type NonceInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

// LoginInput represents input for signature authentication
type LoginInput struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	Signature     string `json:"signature" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// AuthResult is the outcome of signature verification. Valid with a nil
// User means the signature checked out but the wallet has no account yet;
// callers must distinguish that from an invalid signature.
type AuthResult struct {
	Valid bool
	User  *User
}

// AuthResponse is returned on successful login or registration
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
