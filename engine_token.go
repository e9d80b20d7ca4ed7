package authcore

import (
	"context"

	"github.com/quartzsec/authcore/token"
)

// IssueSession builds a signed session token for the identity. Called at
// login time; the token is self-contained and nothing is stored server-side.
func (e *Engine) IssueSession(ctx context.Context, userID, email string) (string, error) {
	if e == nil || e.codec == nil {
		return "", ErrEngineNotReady
	}

	raw, err := e.codec.Encode(token.Identity{UserID: userID, Email: email})
	if err != nil {
		return "", err
	}

	e.metricInc(MetricTokenIssued)
	return raw, nil
}

// ValidateSession decodes and validates a session token. Any malformed,
// tampered, or expired token yields nil — never an error. Rejections are
// audited without the token value itself.
func (e *Engine) ValidateSession(ctx context.Context, raw string) *SessionIdentity {
	if e == nil || e.codec == nil {
		return nil
	}

	identity := e.codec.Decode(raw)
	if identity == nil {
		e.metricInc(MetricTokenRejected)
		e.emitAudit(ctx, AuditEvent{
			EventType: auditEventSessionRejected,
			Success:   false,
			Error:     auditErrInvalidToken,
		})
		return nil
	}

	return identity
}
