package authcore

import (
	"context"
	"sync"
	"time"

	"github.com/quartzsec/authcore/internal"
)

// MemoryResetStore is the default in-process [ResetCodeStore]: a
// mutex-guarded map keyed by normalized email. Storing a code silently
// replaces any prior one for that email; only the latest request is
// honorable. Reads and writes are linearizable per key under the single
// lock. Contents do not survive process restart.
type MemoryResetStore struct {
	mu    sync.Mutex
	codes map[string]ResetCode
}

// NewMemoryResetStore creates an empty [MemoryResetStore].
func NewMemoryResetStore() *MemoryResetStore {
	return &MemoryResetStore{
		codes: make(map[string]ResetCode),
	}
}

// Put stores the code under its normalized email, replacing any prior one.
func (s *MemoryResetStore) Put(_ context.Context, code ResetCode) error {
	key := internal.NormalizeEmail(code.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[key] = code
	return nil
}

// Get returns the live code for the email, or nil when none exists.
// Expired entries are dropped lazily here; there is no background sweeper.
func (s *MemoryResetStore) Get(_ context.Context, email string) (*ResetCode, error) {
	key := internal.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[key]
	if !ok {
		return nil, nil
	}
	if !code.ExpiresAt.After(time.Now()) {
		delete(s.codes, key)
		return nil, nil
	}

	copied := code
	return &copied, nil
}

// Delete removes the email's code. Removing an absent code is not an error.
func (s *MemoryResetStore) Delete(_ context.Context, email string) error {
	key := internal.NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, key)
	return nil
}

// List returns every live code. Diagnostic use only; the engine gates it
// behind development mode.
func (s *MemoryResetStore) List(_ context.Context) ([]ResetCode, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ResetCode, 0, len(s.codes))
	for key, code := range s.codes {
		if !code.ExpiresAt.After(now) {
			delete(s.codes, key)
			continue
		}
		out = append(out, code)
	}
	return out, nil
}
