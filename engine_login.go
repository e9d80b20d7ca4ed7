package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/quartzsec/authcore/internal"
)

// Login authenticates the email/password pair and issues a session token.
// Unknown email and wrong password both return [ErrInvalidCredentials]; no
// caller-visible signal distinguishes them. Repository transport failures
// are returned wrapped, since they mean the core cannot answer at all.
func (e *Engine) Login(ctx context.Context, email, pw string) (string, error) {
	if e == nil || e.users == nil {
		return "", ErrEngineNotReady
	}

	record, err := e.users.GetByEmail(ctx, internal.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, AuditEvent{
				EventType: auditEventLoginFailure,
				Email:     internal.NormalizeEmail(email),
				Success:   false,
				Error:     auditErrUserNotFound,
			})
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("user lookup failed: %w", err)
	}

	if !e.hasher.Verify(pw, record.PasswordHash, record.PasswordSalt) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType: auditEventLoginFailure,
			UserID:    record.UserID,
			Email:     record.Email,
			Success:   false,
			Error:     auditErrInvalidCredentials,
		})
		return "", ErrInvalidCredentials
	}

	raw, err := e.IssueSession(ctx, record.UserID, record.Email)
	if err != nil {
		return "", err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType: auditEventLoginSuccess,
		UserID:    record.UserID,
		Email:     record.Email,
		Success:   true,
	})

	return raw, nil
}

// ChangePassword verifies the old password and installs a new credential
// pair. The old-password check failing returns [ErrInvalidCredentials];
// new-password validation errors surface as tier-1 input errors.
func (e *Engine) ChangePassword(ctx context.Context, userID, oldPW, newPW string) error {
	if e == nil || e.users == nil {
		return ErrEngineNotReady
	}

	record, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricPasswordChangeFailure)
			return ErrInvalidCredentials
		}
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !e.hasher.Verify(oldPW, record.PasswordHash, record.PasswordSalt) {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType: auditEventPasswordChange,
			UserID:    record.UserID,
			Email:     record.Email,
			Success:   false,
			Error:     auditErrInvalidCredentials,
		})
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
	if err := e.users.Update(ctx, record.UserID, update); err != nil {
		return fmt.Errorf("credential update failed: %w", err)
	}

	e.metricInc(MetricPasswordChangeSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType: auditEventPasswordChange,
		UserID:    record.UserID,
		Email:     record.Email,
		Success:   true,
	})

	return nil
}
