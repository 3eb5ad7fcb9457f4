package utils

// Default and maximum page sizes for ledger listings.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ClampLimit normalizes a caller-supplied page size
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ClampOffset normalizes a caller-supplied offset
func ClampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
