package access

import (
	"errors"
	"sync"
)

// Policy is the static role→resource table consulted by resource-level
// checks. Roles not present in the table are denied everything; the admin
// role never reaches the table.
type Policy struct {
	mu      sync.RWMutex
	allowed map[Role]map[Resource]struct{}
	frozen  bool
}

// NewPolicy creates an empty, mutable [Policy].
func NewPolicy() *Policy {
	return &Policy{
		allowed: make(map[Role]map[Resource]struct{}),
	}
}

// Allow enumerates resources the role may use. Must be called before
// [Policy.Freeze].
func (p *Policy) Allow(role Role, resources ...Resource) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frozen {
		return errors.New("policy frozen")
	}
	if role == "" {
		return errors.New("role name cannot be empty")
	}
	if role == RoleAdmin {
		return errors.New("admin role is implicit and cannot be enumerated")
	}

	set, ok := p.allowed[role]
	if !ok {
		set = make(map[Resource]struct{})
		p.allowed[role] = set
	}
	for _, resource := range resources {
		set[resource] = struct{}{}
	}

	return nil
}

// Freeze prevents further changes. Must be called before the policy is used
// for resolution.
func (p *Policy) Freeze() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frozen = true
}

// CanAccessResource reports whether the role may use the resource.
// Admin is allowed unconditionally; everything else is deny-by-default.
func (p *Policy) CanAccessResource(role Role, resource Resource) bool {
	if role == RoleAdmin {
		return true
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	set, ok := p.allowed[role]
	if !ok {
		return false
	}
	_, ok = set[resource]
	return ok
}

var (
	defaultPolicyOnce sync.Once
	defaultPolicy     *Policy
)

// DefaultPolicy returns the frozen dashboard policy: basic users see the
// tenant-facing areas only, administrative areas stay admin-only.
func DefaultPolicy() *Policy {
	defaultPolicyOnce.Do(func() {
		p := NewPolicy()
		_ = p.Allow(RoleBasic, ResourceClients, ResourceFiles, ResourceFolders)
		p.Freeze()
		defaultPolicy = p
	})
	return defaultPolicy
}
