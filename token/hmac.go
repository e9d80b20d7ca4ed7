package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const hmacFieldCount = 4

// HMACConfig defines [HMACCodec] parameters.
type HMACConfig struct {
	// Secret keys the HMAC digest. Required; rotating it invalidates all
	// outstanding tokens.
	Secret string
	// TTL is the fixed token lifetime. Defaults to [DefaultTTL].
	TTL time.Duration
	// Now overrides the clock. Defaults to [time.Now].
	Now func() time.Time
}

// HMACCodec encodes the session identity as four colon-joined fields:
//
//	b64url(userID):b64url(email):issuedAtMillis:hex(hmac-sha256)
//
// The digest covers the first three fields and is keyed by the secret.
// Base64url field encoding keeps the delimiter out of the identity fields,
// and the hex digest cannot contain a colon, so splitting on ":" is always
// unambiguous.
type HMACCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACCodec validates cfg and returns an [HMACCodec].
func NewHMACCodec(cfg HMACConfig) (*HMACCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("hmac codec requires a secret")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL < 0 {
		return nil, errors.New("invalid token TTL")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &HMACCodec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    cfg.Now,
	}, nil
}

// Encode builds a signed token for the identity. A zero IssuedAt is stamped
// with the current time.
func (c *HMACCodec) Encode(identity Identity) (string, error) {
	if identity.UserID == "" {
		return "", errors.New("identity requires a user id")
	}

	issuedAt := identity.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = c.now()
	}

	payload := base64.RawURLEncoding.EncodeToString([]byte(identity.UserID)) +
		":" + base64.RawURLEncoding.EncodeToString([]byte(identity.Email)) +
		":" + strconv.FormatInt(issuedAt.UnixMilli(), 10)

	return payload + ":" + c.digest(payload), nil
}

// Decode validates the token and returns its identity, or nil for any
// malformed, tampered, or expired input.
func (c *HMACCodec) Decode(raw string) *Identity {
	fields := strings.Split(raw, ":")
	if len(fields) != hmacFieldCount {
		return nil
	}

	payload := fields[0] + ":" + fields[1] + ":" + fields[2]

	supplied, err := hex.DecodeString(fields[3])
	if err != nil {
		return nil
	}
	expected, err := hex.DecodeString(c.digest(payload))
	if err != nil {
		return nil
	}
	if !hmac.Equal(supplied, expected) {
		return nil
	}

	issuedAtMillis, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil
	}
	issuedAt := time.UnixMilli(issuedAtMillis)

	now := c.now()
	if now.Sub(issuedAt) > c.ttl {
		return nil
	}
	if issuedAt.Sub(now) > maxFutureIssue {
		return nil
	}

	userID, err := base64.RawURLEncoding.DecodeString(fields[0])
	if err != nil {
		return nil
	}
	email, err := base64.RawURLEncoding.DecodeString(fields[1])
	if err != nil {
		return nil
	}

	return &Identity{
		UserID:   string(userID),
		Email:    string(email),
		IssuedAt: issuedAt,
	}
}

func (c *HMACCodec) digest(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
