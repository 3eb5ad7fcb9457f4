package crypto

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidSignatureFormat indicates the signature is not a 65-byte hex blob
var ErrInvalidSignatureFormat = errors.New("invalid signature format")

// RecoverPersonalSigner recovers the signer address of an EIP-191
// personal_sign message. The signature is the 0x-prefixed 65-byte r||s||v
// blob produced by browser wallets.
func RecoverPersonalSigner(message, signatureHex string) (string, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil || len(sig) != 65 {
		return "", ErrInvalidSignatureFormat
	}

	// Wallets emit v as 27/28; go-ethereum expects 0/1.
	v := sig[64]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return "", ErrInvalidSignatureFormat
	}
	normalized := make([]byte, 65)
	copy(normalized, sig[:64])
	normalized[64] = v

	hash := accounts.TextHash([]byte(message))
	pubKey, err := ethcrypto.SigToPub(hash, normalized)
	if err != nil {
		return "", ErrInvalidSignatureFormat
	}

	return ethcrypto.PubkeyToAddress(*pubKey).Hex(), nil
}

// VerifyPersonalSignature reports whether signatureHex over message was
// produced by expectedAddress. Malformed input verifies as false.
func VerifyPersonalSignature(message, signatureHex, expectedAddress string) bool {
	recovered, err := RecoverPersonalSigner(message, signatureHex)
	if err != nil {
		return false
	}
	return strings.EqualFold(recovered, expectedAddress)
}
