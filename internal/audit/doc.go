// Package audit provides the security-event model and sinks for authcore
// diagnostics: failed logins, reset attempts, permission denials.
//
// # Design
//
// Events flow through an async [Dispatcher] so that emitting never blocks a
// request beyond a channel send. Sinks are pluggable; the key-value writer
// produces the tagged dump format the dashboard's monitoring ingests, the
// JSON writer produces one object per line.
//
// # What this package must NOT do
//
//   - Carry plaintext passwords, hashes, reset codes, or tokens in events.
//   - Import authcore or any sibling package.
package audit
