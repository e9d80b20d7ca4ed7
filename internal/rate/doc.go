// Package rate provides Redis-backed fixed-window counters that throttle
// password-reset requests.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key
// prefixes:
//   - prr:e:  — reset requests per normalized email
//   - prr:ip: — reset requests per client IP
//
// # What this package must NOT do
//
//   - Implement reset lifecycle policy (that lives in the engine).
//   - Be imported outside the authcore module.
package rate
