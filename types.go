package authcore

import (
	"context"
	"io"
	"time"

	"github.com/quartzsec/authcore/access"
	internalaudit "github.com/quartzsec/authcore/internal/audit"
	"github.com/quartzsec/authcore/password"
	"github.com/quartzsec/authcore/token"
)

// Credential is the hash/salt pair produced at registration or password
// reset. The salt is the hashing cost factor rendered as a string; callers
// must treat it as an opaque pairing token, never as entropy to combine
// manually. Credentials are never logged or serialized outward.
type Credential = password.Credential

// SessionIdentity is the decoded identity carried by a valid session token.
type SessionIdentity = token.Identity

// UserRecord is the account view the core needs from the record store:
// identity, credential pair, role, and the scoped grant list.
type UserRecord struct {
	UserID       string
	Email        string
	PasswordHash string
	PasswordSalt string
	Role         access.Role
	Grants       []access.Grant
}

// UserUpdate is a partial update applied through [UserRepository.Update].
// Nil fields are left untouched.
type UserUpdate struct {
	PasswordHash *string
	PasswordSalt *string
	Role         *access.Role
	Grants       *[]access.Grant
}

// UserRepository is the collaborator interface over the external record
// store. The core treats it as an opaque get/update-by-id repository and
// performs no other I/O. Implementations must return [ErrUserNotFound]
// (possibly wrapped) when no record matches.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (UserRecord, error)
	GetByEmail(ctx context.Context, email string) (UserRecord, error)
	Update(ctx context.Context, userID string, update UserUpdate) error
}

// ResetCode is a stored password-reset code bound to an identity and an
// absolute expiry. Validity is a pure function of "now"; there is no
// background sweeper.
type ResetCode struct {
	Email     string
	Code      string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ResetCodeStore holds at most one active code per normalized email.
// Put replaces any prior code for the same email (last write wins).
// Get returns nil without error when no live code exists; expired
// entries are treated as absent. Reads and writes must be linearizable
// per key.
type ResetCodeStore interface {
	Put(ctx context.Context, code ResetCode) error
	Get(ctx context.Context, email string) (*ResetCode, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]ResetCode, error)
}

// Notifier delivers a freshly issued reset code to the user. Dispatch is
// fire-and-forget: the engine ignores delivery outcomes and implementations
// must not block on network I/O longer than the request allows.
type Notifier interface {
	SendResetCode(ctx context.Context, email, code string)
}

// NoOpNotifier discards reset-code notifications.
type NoOpNotifier struct{}

// SendResetCode implements [Notifier] by doing nothing.
func (NoOpNotifier) SendResetCode(context.Context, string, string) {}

// AuditEvent is a structured security event emitted by the engine:
// failed logins, reset attempts, permission denials. Events never carry
// plaintext secrets.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit
// dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes one JSON object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// KVWriterSink is an [AuditSink] that writes one tagged key-value line per
// event, the diagnostic dump format consumed by the dashboard's monitoring.
type KVWriterSink = internalaudit.KVWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// NewKVWriterSink creates a [KVWriterSink] that writes to w.
func NewKVWriterSink(w io.Writer) *KVWriterSink {
	return internalaudit.NewKVWriterSink(w)
}
