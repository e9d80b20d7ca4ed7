package authcore

import (
	"context"
	"time"

	internalaudit "github.com/quartzsec/authcore/internal/audit"
)

const (
	auditEventLoginSuccess       = "login_success"
	auditEventLoginFailure       = "login_failure"
	auditEventSessionRejected    = "session_rejected"
	auditEventPasswordChange     = "password_change"
	auditEventResetRequest       = "password_reset_request"
	auditEventResetRateLimited   = "password_reset_rate_limited"
	auditEventResetVerifyFailure = "password_reset_verify_failure"
	auditEventResetConfirm       = "password_reset_confirm"
	auditEventResourceDenied     = "resource_access_denied"
	auditEventClientDenied       = "client_access_denied"
)

const (
	auditErrInvalidCredentials = "invalid_credentials"
	auditErrUserNotFound       = "user_not_found"
	auditErrInvalidToken       = "invalid_token"
	auditErrInvalidResetCode   = "invalid_reset_code"
	auditErrRateLimited        = "rate_limited"
	auditErrAccessDenied       = "access_denied"
)

type auditDispatcher = internalaudit.Dispatcher

func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	return internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Enabled,
		BufferSize: cfg.BufferSize,
		DropIfFull: cfg.DropIfFull,
	}, sink)
}

func (e *Engine) emitAudit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.IP == "" {
		event.IP = clientIPFromContext(ctx)
	}
	e.audit.Emit(ctx, event)
}
