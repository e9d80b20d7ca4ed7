package authcore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quartzsec/authcore/internal"
	"github.com/quartzsec/authcore/internal/rate"
)

// StoreResetCode stores a caller-generated 6-digit code for the email,
// stamped with the configured TTL. Any prior code for that email is
// silently replaced: only the latest request is honorable.
func (e *Engine) StoreResetCode(ctx context.Context, email, code, userID string) error {
	if e == nil || e.resetStore == nil {
		return ErrEngineNotReady
	}

	now := time.Now()
	return e.resetStore.Put(ctx, ResetCode{
		Email:     internal.NormalizeEmail(email),
		Code:      code,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(e.config.Reset.TTL),
	})
}

// VerifyResetCode reports whether the code matches the live code stored for
// the email. Side-effect free and repeatable: verifying does not consume
// the code, so client-side re-validation is harmless. Wrong, expired, and
// absent codes all resolve to false, never an error.
func (e *Engine) VerifyResetCode(ctx context.Context, email, code string) bool {
	if e == nil || e.resetStore == nil {
		return false
	}

	stored, err := e.resetStore.Get(ctx, email)
	if err != nil || stored == nil {
		e.noteResetVerifyFailure(ctx, email)
		return false
	}
	if !stored.ExpiresAt.After(time.Now()) {
		e.noteResetVerifyFailure(ctx, email)
		return false
	}
	if subtle.ConstantTimeCompare([]byte(stored.Code), []byte(code)) != 1 {
		e.noteResetVerifyFailure(ctx, email)
		return false
	}

	return true
}

// UserIDForResetCode returns the user bound to the email's live code, or ""
// when none exists.
func (e *Engine) UserIDForResetCode(ctx context.Context, email string) string {
	if e == nil || e.resetStore == nil {
		return ""
	}

	stored, err := e.resetStore.Get(ctx, email)
	if err != nil || stored == nil {
		return ""
	}
	return stored.UserID
}

// RemoveResetCode deletes the email's code. Callers must invoke this after
// the password is actually changed; verification alone never consumes a
// code. Removing an absent code is not an error.
func (e *Engine) RemoveResetCode(ctx context.Context, email string) error {
	if e == nil || e.resetStore == nil {
		return ErrEngineNotReady
	}
	return e.resetStore.Delete(ctx, email)
}

// ListResetCodes dumps every live code. Diagnostic only: it returns
// [ErrResetDiagnosticsDisabled] unless development mode is on.
func (e *Engine) ListResetCodes(ctx context.Context) ([]ResetCode, error) {
	if e == nil || e.resetStore == nil {
		return nil, ErrEngineNotReady
	}
	if !e.config.Development {
		return nil, ErrResetDiagnosticsDisabled
	}
	return e.resetStore.List(ctx)
}

// RequestPasswordReset issues a fresh code for the email and hands it to
// the notifier. The outcome is uniform whether or not the email is known;
// callers learn nothing about account existence. Requests beyond the window
// budget return [ErrResetRateLimited].
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	normalized := internal.NormalizeEmail(email)
	requestID := uuid.NewString()

	if e.resetLimiter != nil {
		err := e.resetLimiter.CheckResetRequest(ctx, normalized, clientIPFromContext(ctx))
		if errors.Is(err, rate.ErrRateLimited) {
			e.metricInc(MetricResetRateLimited)
			e.emitAudit(ctx, AuditEvent{
				EventType: auditEventResetRateLimited,
				Email:     normalized,
				Success:   false,
				Error:     auditErrRateLimited,
				Metadata:  map[string]string{"request_id": requestID},
			})
			return ErrResetRateLimited
		}
		if err != nil {
			return fmt.Errorf("reset throttle check failed: %w", err)
		}
	}

	record, err := e.users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Uniform outcome: audit the miss, tell the caller nothing.
			e.emitAudit(ctx, AuditEvent{
				EventType: auditEventResetRequest,
				Email:     normalized,
				Success:   false,
				Error:     auditErrUserNotFound,
				Metadata:  map[string]string{"request_id": requestID},
			})
			return nil
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	code, err := internal.NewResetCode()
	if err != nil {
		return fmt.Errorf("reset code generation failed: %w", err)
	}

	if err := e.StoreResetCode(ctx, normalized, code, record.UserID); err != nil {
		return err
	}

	if e.notifier != nil {
		e.notifier.SendResetCode(ctx, record.Email, code)
	}

	e.metricInc(MetricResetRequested)
	e.emitAudit(ctx, AuditEvent{
		EventType: auditEventResetRequest,
		UserID:    record.UserID,
		Email:     normalized,
		Success:   true,
		Metadata:  map[string]string{"request_id": requestID},
	})

	return nil
}

// ConfirmPasswordReset verifies the code, installs the new password, and
// consumes the code. Verify-then-remove runs inside this call, so a given
// code yields at most one successful password change; replays fail with
// [ErrInvalidCredentials].
func (e *Engine) ConfirmPasswordReset(ctx context.Context, email, code, newPW string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	if !e.VerifyResetCode(ctx, email, code) {
		e.metricInc(MetricResetConfirmFailure)
		return ErrInvalidCredentials
	}

	userID := e.UserIDForResetCode(ctx, email)
	if userID == "" {
		e.metricInc(MetricResetConfirmFailure)
		return ErrInvalidCredentials
	}

	credential, err := e.hasher.Hash(newPW)
	if err != nil {
		return err
	}

	update := UserUpdate{
		PasswordHash: &credential.Hash,
		PasswordSalt: &credential.Salt,
	}
	if err := e.users.Update(ctx, userID, update); err != nil {
		return fmt.Errorf("credential update failed: %w", err)
	}

	if err := e.RemoveResetCode(ctx, email); err != nil {
		return err
	}

	e.metricInc(MetricResetConfirmSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType: auditEventResetConfirm,
		UserID:    userID,
		Email:     internal.NormalizeEmail(email),
		Success:   true,
	})

	return nil
}

func (e *Engine) noteResetVerifyFailure(ctx context.Context, email string) {
	e.metricInc(MetricResetVerifyFailure)
	e.emitAudit(ctx, AuditEvent{
		EventType: auditEventResetVerifyFailure,
		Email:     internal.NormalizeEmail(email),
		Success:   false,
		Error:     auditErrInvalidResetCode,
	})
}
