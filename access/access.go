package access

import (
	"strings"
	"time"
)

// Role is a user-level attribute. Admin short-circuits all per-resource and
// per-client checks; every other role is resolved against the policy table
// and the grant list.
type Role string

const (
	// RoleAdmin bypasses all resource and client checks.
	RoleAdmin Role = "admin"
	// RoleBasic is resolved against the policy table and explicit grants.
	RoleBasic Role = "basic"
)

// Resource is a coarse application area subject to role-based gating,
// distinct from the fine-grained client scoping used for tenant data.
type Resource string

const (
	// ResourceUsers is the user administration area.
	ResourceUsers Resource = "users"
	// ResourcePermissions is the grant administration area.
	ResourcePermissions Resource = "permissions"
	// ResourceAudit is the security event log area.
	ResourceAudit Resource = "audit"
	// ResourceClients is the tenant client directory.
	ResourceClients Resource = "clients"
	// ResourceFiles is the tenant file area.
	ResourceFiles Resource = "files"
	// ResourceFolders is the tenant folder area.
	ResourceFolders Resource = "folders"
	// ResourceSettings is the application settings area.
	ResourceSettings Resource = "settings"
)

// Level is a client-scoped permission level. Levels form a total order:
// read < write < admin.
type Level uint8

const (
	// LevelNone is the zero value and matches nothing.
	LevelNone Level = iota
	// LevelRead allows read operations on a client's data.
	LevelRead
	// LevelWrite allows read and write operations.
	LevelWrite
	// LevelAdmin allows all operations including grant management.
	LevelAdmin
)

// ParseLevel maps the stored permission-type string to a [Level].
// Matching is case-insensitive. Unknown strings map to LevelNone.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read":
		return LevelRead, true
	case "write":
		return LevelWrite, true
	case "admin":
		return LevelAdmin, true
	default:
		return LevelNone, false
	}
}

// String renders the level in its stored form.
func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelWrite:
		return "write"
	case LevelAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Grant asserts that a user may act on a specific client at a given level,
// optionally time-bounded. ClientCode comparisons are case-insensitive.
// Duplicate codes are permitted by storage; resolution folds over all
// matches, so duplicates can only widen access, never narrow it.
type Grant struct {
	ClientCode string
	ClientName string
	Level      Level
	GrantedBy  string
	GrantedAt  time.Time
	ExpiresAt  *time.Time
}

// Expired reports whether the grant's expiry, if any, has passed.
func (g Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && !g.ExpiresAt.After(now)
}

// CanAccessResource reports whether the role may use the resource under the
// default policy table.
func CanAccessResource(role Role, resource Resource) bool {
	return DefaultPolicy().CanAccessResource(role, resource)
}

// CanAccessClient reports whether the role plus grant list satisfies the
// required level for the client code, evaluated at the current time.
func CanAccessClient(role Role, grants []Grant, clientCode string, required Level) bool {
	return CanAccessClientAt(time.Now(), role, grants, clientCode, required)
}

// CanAccessClientAt is [CanAccessClient] with an explicit clock.
//
// The effective level is the maximum over all non-expired grants whose code
// matches case-insensitively. No matching grant means no access, never an
// error, and is indistinguishable from an expired one.
func CanAccessClientAt(now time.Time, role Role, grants []Grant, clientCode string, required Level) bool {
	if role == RoleAdmin {
		return true
	}
	if required == LevelNone {
		return false
	}

	effective := LevelNone
	for _, grant := range grants {
		if !strings.EqualFold(grant.ClientCode, clientCode) {
			continue
		}
		if grant.Expired(now) {
			continue
		}
		if grant.Level > effective {
			effective = grant.Level
		}
	}

	return effective >= required
}
