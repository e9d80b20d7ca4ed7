package token

import "time"

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// maxFutureIssue bounds tolerated clock skew: tokens stamped further in the
// future than this are rejected.
const maxFutureIssue = 2 * time.Minute

// Identity is the decoded content of a valid session token.
type Identity struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}

// Codec encodes and decodes session tokens. Implementations must be safe
// for concurrent use and must return nil from Decode for every invalid
// input rather than an error.
type Codec interface {
	Encode(identity Identity) (string, error)
	Decode(raw string) *Identity
}
