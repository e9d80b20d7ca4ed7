// Package access resolves whether a principal may perform an operation on a
// coarse application resource or on a specific client-scoped entity.
//
// # Design
//
// Resolution is a pure function over the role, the grant list, and the
// clock. The package never fetches users or grants; callers pass in state.
// Deny-by-default governs every path: an admin role short-circuits to allow,
// everything else must be explicitly enumerated.
//
// # Architecture boundaries
//
// This package owns the role/resource policy table and the grant-matching
// rules. Fetching the principal's record is the engine's job.
//
// # What this package must NOT do
//
//   - Perform I/O or touch a datastore.
//   - Distinguish "never granted" from "revoked/expired" in its results.
//   - Import authcore or any sibling package.
package access
