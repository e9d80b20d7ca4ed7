package authcore

import (
	"errors"

	"github.com/quartzsec/authcore/password"
)

var (
	// ErrInvalidCredentials is returned for every expected authentication
	// failure: unknown email, wrong password, invalid or consumed reset
	// code. Callers must map it to a single generic response and never
	// surface which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordInvalidInput marks a caller bug in password handling
	// (oversized input, NUL or control bytes), not user misbehavior.
	ErrPasswordInvalidInput = password.ErrInvalidInput
	// ErrHashingUnavailable wraps failures inside the hashing library
	// itself. The core is unusable when this is returned.
	ErrHashingUnavailable = password.ErrUnavailable
	// ErrResetStoreUnavailable wraps reset-code store backend failures.
	ErrResetStoreUnavailable = errors.New("reset code store unavailable")
	// ErrResetRateLimited is returned when reset requests for an email or
	// IP exceed the configured window budget.
	ErrResetRateLimited = errors.New("password reset rate limited")
	// ErrResetDiagnosticsDisabled is returned by ListResetCodes outside
	// development mode.
	ErrResetDiagnosticsDisabled = errors.New("reset code listing disabled outside development")
	// ErrUserNotFound is returned by UserRepository implementations when
	// no record matches. The engine never lets it escape to callers of
	// authentication flows.
	ErrUserNotFound = errors.New("user not found")
	// ErrEngineNotReady is returned when an Engine method is called before
	// Builder.Build completed.
	ErrEngineNotReady = errors.New("engine not initialized")
)
