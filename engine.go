package authcore

import (
	"github.com/quartzsec/authcore/access"
	"github.com/quartzsec/authcore/internal/rate"
	"github.com/quartzsec/authcore/password"
	"github.com/quartzsec/authcore/token"
)

// Engine is the credential and access-control core. Construct it through
// [Builder.Build]; after that, every method is safe for concurrent use.
//
// Engine instances are intended to be configured during initialization and
// then treated as immutable.
type Engine struct {
	config       Config
	hasher       *password.Hasher
	codec        token.Codec
	policy       *access.Policy
	resetStore   ResetCodeStore
	resetLimiter *rate.Limiter
	users        UserRepository
	notifier     Notifier
	audit        *auditDispatcher
	metrics      *Metrics
}

// Close drains the audit dispatcher. Safe to call on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded under buffer
// pressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot deep-copies every engine counter.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
