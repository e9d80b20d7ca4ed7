// Package password derives and verifies peppered bcrypt password digests.
//
// # Design
//
// Hash returns a [Credential] pair: the bcrypt digest and a salt string that
// is the cost factor, an opaque pairing token callers must hand back to
// Verify unchanged. The deployment pepper is appended to the password before
// hashing; inputs longer than bcrypt's 72-byte limit are pre-hashed with
// SHA-256 so no byte of a long password is silently ignored.
//
// # Error tiers
//
// Malformed input (oversized, NUL, control bytes) is a caller bug and is
// returned as [ErrInvalidInput] from Hash. Verification failures are routine
// and always resolve to false, never an error. Failures inside the bcrypt
// library are wrapped with [ErrUnavailable].
//
// # What this package must NOT do
//
//   - Log plaintext or digest values.
//   - Hold mutable shared state; every call is independent and safe for
//     concurrent use.
package password
