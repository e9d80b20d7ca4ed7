package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/quartzsec/authcore/access"
)

// CanAccessResource reports whether the role may use the coarse application
// resource. Pure: no I/O, no audit, usable on every request.
func (e *Engine) CanAccessResource(role access.Role, resource access.Resource) bool {
	if e == nil || e.policy == nil {
		return false
	}
	return e.policy.CanAccessResource(role, resource)
}

// CanAccessClient reports whether the role plus grant list satisfies the
// required level for the client code. Pure; grants are supplied by the
// caller, never fetched.
func (e *Engine) CanAccessClient(role access.Role, grants []access.Grant, clientCode string, required access.Level) bool {
	if e == nil {
		return false
	}
	return access.CanAccessClient(role, grants, clientCode, required)
}

// AuthorizeResource fetches the user and resolves a resource-level check,
// auditing denials. Repository failures are returned as errors; an unknown
// user is an ordinary denial.
func (e *Engine) AuthorizeResource(ctx context.Context, userID string, resource access.Resource) (bool, error) {
	if e == nil || e.users == nil {
		return false, ErrEngineNotReady
	}

	record, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("user lookup failed: %w", err)
	}

	if !e.CanAccessResource(record.Role, resource) {
		e.metricInc(MetricResourceDenied)
		e.emitAudit(ctx, AuditEvent{
			EventType: auditEventResourceDenied,
			UserID:    record.UserID,
			Email:     record.Email,
			Success:   false,
			Error:     auditErrAccessDenied,
			Metadata:  map[string]string{"resource": string(resource)},
		})
		return false, nil
	}

	return true, nil
}

// AuthorizeClient fetches the user and resolves a client-scoped check,
// auditing denials.
func (e *Engine) AuthorizeClient(ctx context.Context, userID, clientCode string, required access.Level) (bool, error) {
	if e == nil || e.users == nil {
		return false, ErrEngineNotReady
	}

	record, err := e.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("user lookup failed: %w", err)
	}

	if !e.CanAccessClient(record.Role, record.Grants, clientCode, required) {
		e.metricInc(MetricClientDenied)
		e.emitAudit(ctx, AuditEvent{
			EventType:  auditEventClientDenied,
			UserID:     record.UserID,
			Email:      record.Email,
			ClientCode: clientCode,
			Success:    false,
			Error:      auditErrAccessDenied,
			Metadata:   map[string]string{"required_level": required.String()},
		})
		return false, nil
	}

	return true, nil
}
