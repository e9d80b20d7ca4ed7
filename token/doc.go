// Package token builds and validates self-contained, signed, time-limited
// session credentials with no server-side storage.
//
// # Design
//
// A token has exactly two states, valid and invalid/expired. There is no
// revoked state: logout deletes the client-held cookie, and compromise
// response is rotating the signing secret, which invalidates every
// outstanding token at once.
//
// Two [Codec] implementations share that contract. [HMACCodec] is the
// stable wire format: four colon-joined fields where the identity fields
// are base64url-encoded (so a colon inside an email can never make parsing
// ambiguous) and the fourth field is an HMAC-SHA256 digest over the first
// three. [JWTCodec] carries the same identity as HS256 JWT claims for
// deployments standardizing on that format.
//
// # Failure semantics
//
// Decode returns nil for any malformed, truncated, tampered, or expired
// input, never an error and never a panic. Validation is a pure function
// of the token string and the clock.
package token
