package blockchain

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/sha3"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s is a 0x-prefixed 40-hex-character
// account identifier. Checksum casing is not enforced.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// NormalizeAddress lower-cases an address for canonical storage
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}

// ChecksumAddress renders an address in EIP-55 mixed-case form for display.
// Invalid input is returned unchanged.
func ChecksumAddress(s string) string {
	if !IsValidAddress(s) {
		return s
	}

	hexAddr := strings.ToLower(s[2:])
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(hexAddr))
	hash := hasher.Sum(nil)

	out := []byte(hexAddr)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		// Uppercase when the matching hash nibble is >= 8.
		nibble := hash[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] = c - 32
		}
	}
	return "0x" + string(out)
}
