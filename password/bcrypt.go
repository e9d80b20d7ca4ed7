package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost factor used when none is configured.
	DefaultCost = 12

	maxPasswordBytes = 1000
	bcryptInputLimit = 72
)

var (
	// ErrInvalidInput marks a programming-error password: empty, oversized,
	// or carrying NUL/control bytes. Distinct from a verification failure.
	ErrInvalidInput = errors.New("invalid password input")
	// ErrUnavailable wraps failures inside the bcrypt library itself.
	ErrUnavailable = errors.New("bcrypt unavailable")
)

// Config defines hasher parameters.
type Config struct {
	// Cost is the bcrypt cost factor.
	Cost int
	// Pepper is the deployment secret appended to every password. Required.
	Pepper string
}

// Credential pairs a password digest with the salt string needed to
// reproduce verification. Salt is the cost factor in decimal form.
type Credential struct {
	Hash string
	Salt string
}

// Hasher derives and verifies peppered bcrypt digests. Safe for concurrent
// use; it holds no mutable state.
type Hasher struct {
	cost   int
	pepper string
}

// NewHasher validates cfg and returns a [Hasher].
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Cost == 0 {
		cfg.Cost = DefaultCost
	}
	if cfg.Cost < bcrypt.MinCost || cfg.Cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	if cfg.Pepper == "" {
		return nil, errors.New("pepper is required")
	}

	return &Hasher{cost: cfg.Cost, pepper: cfg.Pepper}, nil
}

// Hash derives a [Credential] from the password. Input that violates the
// validation rules returns [ErrInvalidInput]; bcrypt failures return
// [ErrUnavailable]. Both indicate the caller or the deployment is broken,
// never the user.
func (h *Hasher) Hash(pw string) (Credential, error) {
	if err := checkPassword(pw); err != nil {
		return Credential{}, err
	}

	digest, err := bcrypt.GenerateFromPassword(h.peppered(pw), h.cost)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return Credential{
		Hash: string(digest),
		Salt: strconv.Itoa(h.cost),
	}, nil
}

// Verify reports whether the password reproduces the stored credential.
// Verification failures are routine: malformed input, a mismatched salt
// pairing token, or any internal error all resolve to false and never panic
// or return an error.
func (h *Hasher) Verify(pw, hash, salt string) bool {
	if checkPassword(pw) != nil {
		return false
	}

	// The salt must pair with the digest it was issued alongside.
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	if salt != strconv.Itoa(cost) {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), h.peppered(pw)) == nil
}

// peppered appends the deployment pepper and collapses over-limit inputs
// through SHA-256 so bcrypt never truncates silently. The mapping is
// deterministic: Hash and Verify always see the same bytes.
func (h *Hasher) peppered(pw string) []byte {
	combined := make([]byte, 0, len(pw)+len(h.pepper))
	combined = append(combined, pw...)
	combined = append(combined, h.pepper...)

	if len(combined) <= bcryptInputLimit {
		return combined
	}

	sum := sha256.Sum256(combined)
	encoded := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(encoded, sum[:])
	return encoded
}

func checkPassword(pw string) error {
	if pw == "" {
		return fmt.Errorf("%w: empty password", ErrInvalidInput)
	}
	if len(pw) > maxPasswordBytes {
		return fmt.Errorf("%w: password exceeds %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	if strings.IndexByte(pw, 0) >= 0 {
		return fmt.Errorf("%w: password contains NUL byte", ErrInvalidInput)
	}
	for _, r := range pw {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: password contains control character", ErrInvalidInput)
		}
	}
	return nil
}
