package internal

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Reset codes are 6-digit strings drawn uniformly from [100000, 999999].
const (
	resetCodeMin  = 100000
	resetCodeSpan = 900000
)

// NewResetCode draws a uniform 6-digit reset code from crypto/rand.
func NewResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(resetCodeSpan))
	if err != nil {
		return "", err
	}
	return big.NewInt(resetCodeMin + n.Int64()).String(), nil
}

// NormalizeEmail canonicalizes an email for use as a store key: trimmed
// and lowercased. Two requests for "A@b.com " and "a@b.com" must race on
// the same key, not coexist.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
