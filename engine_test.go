package authcore

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/quartzsec/authcore/access"
)

type mockUserRepository struct {
	mu      sync.Mutex
	users   map[string]UserRecord
	byEmail map[string]string
	failAll error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:   make(map[string]UserRecord),
		byEmail: make(map[string]string),
	}
}

func (r *mockUserRepository) add(record UserRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[record.UserID] = record
	r.byEmail[record.Email] = record.UserID
}

func (r *mockUserRepository) get(userID string) UserRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID]
}

func (r *mockUserRepository) GetByID(_ context.Context, userID string) (UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return UserRecord{}, r.failAll
	}
	record, ok := r.users[userID]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return record, nil
}

func (r *mockUserRepository) GetByEmail(_ context.Context, email string) (UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return UserRecord{}, r.failAll
	}
	userID, ok := r.byEmail[email]
	if !ok {
		return UserRecord{}, ErrUserNotFound
	}
	return r.users[userID], nil
}

func (r *mockUserRepository) Update(_ context.Context, userID string, update UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	record, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if update.PasswordHash != nil {
		record.PasswordHash = *update.PasswordHash
	}
	if update.PasswordSalt != nil {
		record.PasswordSalt = *update.PasswordSalt
	}
	if update.Role != nil {
		record.Role = *update.Role
	}
	if update.Grants != nil {
		record.Grants = *update.Grants
	}
	r.users[userID] = record
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: make(map[string]string)}
}

func (n *recordingNotifier) SendResetCode(_ context.Context, email, code string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = code
}

func (n *recordingNotifier) code(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[email]
}

func newTestConfig() Config {
	cfg := defaultConfig()
	cfg.Pepper = "test-pepper"
	cfg.Password.Cost = 4 // keep test hashing fast
	cfg.Development = true
	return cfg
}

func newTestEngine(t *testing.T, repo UserRepository, mutate ...func(*Builder)) *Engine {
	t.Helper()

	b := New().
		WithConfig(newTestConfig()).
		WithUserRepository(repo)
	for _, fn := range mutate {
		fn(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis failed to start: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedUser(t *testing.T, engine *Engine, repo *mockUserRepository, userID, email, pw string, role access.Role, grants []access.Grant) UserRecord {
	t.Helper()

	credential, err := engine.HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	record := UserRecord{
		UserID:       userID,
		Email:        email,
		PasswordHash: credential.Hash,
		PasswordSalt: credential.Salt,
		Role:         role,
		Grants:       grants,
	}
	repo.add(record)
	return record
}
