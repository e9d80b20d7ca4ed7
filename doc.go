// Package authcore is the credential and access-control core for a
// multi-tenant administrative dashboard. It owns password hashing, stateless
// session-token issuance and validation, the time-boxed password-reset-code
// lifecycle, and resource/client-scoped permission resolution.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserRepository] and [ResetCodeStore] collaborator interfaces, and
// value types (Credential, ResetCode, MetricsSnapshot). Hashing lives in
// password/, token codecs in token/, and pure permission resolution in
// access/. Rate limiting and audit dispatch live under internal/ and are
// never exported.
//
// # What this package must NOT do
//
//   - Own the user record store. Callers supply a [UserRepository]; the core
//     never opens a database connection of its own.
//   - Hold server-side session state. Session tokens are self-contained and
//     validated without storage; logout is a client-side cookie delete.
//   - Log or serialize plaintext passwords, hashes, reset codes, or the
//     pepper through any sink.
package authcore
