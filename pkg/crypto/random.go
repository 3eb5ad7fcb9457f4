package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

var randomRead = rand.Read

// GenerateRandomToken generates a random hex token from length random bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateNonce generates a 256-bit authentication nonce (64 hex characters)
func GenerateNonce() (string, error) {
	return GenerateRandomToken(32)
}

// GenerateLinkCode generates a 64-bit payment link code (16 hex characters)
func GenerateLinkCode() (string, error) {
	return GenerateRandomToken(8)
}
