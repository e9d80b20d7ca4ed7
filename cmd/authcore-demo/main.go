// Command authcore-demo walks the full credential lifecycle against the
// in-memory collaborators: registration, login, session validation, a
// password reset round-trip, and permission checks. Audit events stream to
// stdout as key-value lines.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quartzsec/authcore"
	"github.com/quartzsec/authcore/access"
)

type memoryRepository struct {
	mu      sync.Mutex
	byID    map[string]authcore.UserRecord
	byEmail map[string]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		byID:    make(map[string]authcore.UserRecord),
		byEmail: make(map[string]string),
	}
}

func (r *memoryRepository) add(record authcore.UserRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[record.UserID] = record
	r.byEmail[record.Email] = record.UserID
}

func (r *memoryRepository) GetByID(_ context.Context, userID string) (authcore.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[userID]
	if !ok {
		return authcore.UserRecord{}, authcore.ErrUserNotFound
	}
	return record, nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (authcore.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.byEmail[email]
	if !ok {
		return authcore.UserRecord{}, authcore.ErrUserNotFound
	}
	return r.byID[userID], nil
}

func (r *memoryRepository) Update(_ context.Context, userID string, update authcore.UserUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.byID[userID]
	if !ok {
		return authcore.ErrUserNotFound
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
	r.byID[userID] = record
	return nil
}

type consoleNotifier struct{}

func (consoleNotifier) SendResetCode(_ context.Context, email, code string) {
	fmt.Printf(">> reset code for %s: %s\n", email, code)
}

func main() {
	ctx := context.Background()
	repo := newMemoryRepository()

	pepper := os.Getenv("AUTHCORE_PEPPER")
	if pepper == "" {
		pepper = "demo-pepper-do-not-deploy"
	}

	engine, err := authcore.New().
		WithPepper(pepper).
		WithUserRepository(repo).
		WithNotifier(consoleNotifier{}).
		WithAuditSink(authcore.NewKVWriterSink(os.Stdout)).
		WithDevelopment(true).
		Build()
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}
	defer engine.Close()

	// Registration: the HTTP layer hashes and stores the credential.
	credential, err := engine.HashPassword("correcthorse1")
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	grantExpiry := time.Now().Add(30 * 24 * time.Hour)
	user := authcore.UserRecord{
		UserID:       uuid.NewString(),
		Email:        "alice@example.com",
		PasswordHash: credential.Hash,
		PasswordSalt: credential.Salt,
		Role:         access.RoleBasic,
		Grants: []access.Grant{{
			ClientCode: "cam",
			ClientName: "Camden Holdings",
			Level:      access.LevelWrite,
			GrantedBy:  "admin@example.com",
			GrantedAt:  time.Now(),
			ExpiresAt:  &grantExpiry,
		}},
	}
	repo.add(user)

	// Login and session check.
	sessionToken, err := engine.Login(ctx, "alice@example.com", "correcthorse1")
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	identity := engine.ValidateSession(ctx, sessionToken)
	if identity == nil {
		log.Fatal("session token did not validate")
	}
	fmt.Printf(">> session valid for %s (%s)\n", identity.Email, identity.UserID)

	// Wrong password resolves to the uniform failure.
	if _, err := engine.Login(ctx, "alice@example.com", "wrongpass1"); err == nil {
		log.Fatal("expected login failure")
	}

	// Password reset round-trip.
	if err := engine.RequestPasswordReset(ctx, "alice@example.com"); err != nil {
		log.Fatalf("request reset: %v", err)
	}
	codes, err := engine.ListResetCodes(ctx)
	if err != nil {
		log.Fatalf("list reset codes (enable Development in Config): %v", err)
	}
	for _, code := range codes {
		if engine.VerifyResetCode(ctx, code.Email, code.Code) {
			if err := engine.ConfirmPasswordReset(ctx, code.Email, code.Code, "trustno1again"); err != nil {
				log.Fatalf("confirm reset: %v", err)
			}
			fmt.Println(">> password reset complete")
		}
	}

	// Permission checks.
	for _, check := range []struct {
		code  string
		level access.Level
	}{
		{"CAM", access.LevelRead},
		{"CAM", access.LevelAdmin},
		{"other", access.LevelRead},
	} {
		ok, err := engine.AuthorizeClient(ctx, user.UserID, check.code, check.level)
		if err != nil {
			log.Fatalf("authorize client: %v", err)
		}
		fmt.Printf(">> client %s at %s: %t\n", check.code, check.level, ok)
	}

	snapshot := engine.MetricsSnapshot()
	fmt.Printf(">> logins ok=%d failed=%d resets=%d\n",
		snapshot.Counters[authcore.MetricLoginSuccess],
		snapshot.Counters[authcore.MetricLoginFailure],
		snapshot.Counters[authcore.MetricResetConfirmSuccess],
	)
}
