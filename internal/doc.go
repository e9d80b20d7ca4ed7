// Package internal holds small shared primitives for the authcore module:
// reset-code generation and email normalization. Nothing here is part of
// the public API.
package internal
