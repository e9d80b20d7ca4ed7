package authcore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quartzsec/authcore/access"
)

func TestResetCodeLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	engine := newTestEngine(t, repo)
	seedUser(t, engine, repo, "u1", "a@b.com", "old-password-1", access.RoleBasic, nil)

	if err := engine.StoreResetCode(ctx, "a@b.com", "482913", "u1"); err != nil {
		t.Fatalf("StoreResetCode failed: %v", err)
	}

	if !engine.VerifyResetCode(ctx, "a@b.com", "482913") {
		t.Fatal("expected stored code to verify")
	}
	// Verification is repeatable and side-effect free.
	if !engine.VerifyResetCode(ctx, "a@b.com", "482913") {
		t.Fatal("expected re-verification to succeed")
	}
	if engine.VerifyResetCode(ctx, "a@b.com", "000000") {
		t.Fatal("expected wrong code to fail")
	}
	if engine.VerifyResetCode(ctx, "other@b.com", "482913") {
		t.Fatal("expected wrong email to fail")
	}

	if got := engine.UserIDForResetCode(ctx, "a@b.com"); got != "u1" {
		t.Fatalf("expected bound user u1, got %q", got)
	}

	if err := engine.RemoveResetCode(ctx, "a@b.com"); err != nil {
		t.Fatalf("RemoveResetCode failed: %v", err)
	}
	if engine.VerifyResetCode(ctx, "a@b.com", "482913") {
		t.Fatal("expected removed code to fail verification")
	}
	if got := engine.UserIDForResetCode(ctx, "a@b.com"); got != "" {
		t.Fatalf("expected no bound user after removal, got %q", got)
	}
}

func TestResetCodeExpiry(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()

	store := NewMemoryResetStore()
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithResetStore(store)
	})

	// Plant an already-expired code directly in the store.
	now := time.Now()
	if err := store.Put(ctx, ResetCode{
		Email:     "a@b.com",
		Code:      "482913",
		UserID:    "u1",
		CreatedAt: now.Add(-time.Hour),
		ExpiresAt: now.Add(-45 * time.Minute),
	}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if engine.VerifyResetCode(ctx, "a@b.com", "482913") {
		t.Fatal("expected expired code to fail verification")
	}
}

func TestStoreResetCodeReplacesPrior(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	engine := newTestEngine(t, repo)

	if err := engine.StoreResetCode(ctx, "a@b.com", "111111", "u1"); err != nil {
		t.Fatalf("StoreResetCode failed: %v", err)
	}
	if err := engine.StoreResetCode(ctx, "a@b.com", "222222", "u1"); err != nil {
		t.Fatalf("StoreResetCode failed: %v", err)
	}

	if engine.VerifyResetCode(ctx, "a@b.com", "111111") {
		t.Fatal("expected replaced code to fail")
	}
	if !engine.VerifyResetCode(ctx, "a@b.com", "222222") {
		t.Fatal("expected latest code to verify")
	}
}

func TestRequestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	notifier := newRecordingNotifier()
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithNotifier(notifier)
	})
	seedUser(t, engine, repo, "u1", "a@b.com", "old-password-1", access.RoleBasic, nil)

	if err := engine.RequestPasswordReset(ctx, " A@B.com "); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}

	code := notifier.code("a@b.com")
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}
	if code[0] == '0' {
		t.Fatalf("expected code in [100000, 999999], got %q", code)
	}
	if !engine.VerifyResetCode(ctx, "a@b.com", code) {
		t.Fatal("expected issued code to verify")
	}

	if err := engine.ConfirmPasswordReset(ctx, "a@b.com", code, "new-password-1"); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}

	updated := repo.get("u1")
	if !engine.VerifyPassword("new-password-1", updated.PasswordHash, updated.PasswordSalt) {
		t.Fatal("expected new password to verify after reset")
	}
	if engine.VerifyPassword("old-password-1", updated.PasswordHash, updated.PasswordSalt) {
		t.Fatal("expected old password to stop verifying")
	}

	// The code was consumed; a replay cannot change the password again.
	if err := engine.ConfirmPasswordReset(ctx, "a@b.com", code, "another-password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected replay to fail with ErrInvalidCredentials, got %v", err)
	}
}

func TestRequestPasswordResetUnknownEmailIsUniform(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	notifier := newRecordingNotifier()
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithNotifier(notifier)
	})

	if err := engine.RequestPasswordReset(ctx, "nobody@b.com"); err != nil {
		t.Fatalf("expected uniform success for unknown email, got %v", err)
	}
	if notifier.code("nobody@b.com") != "" {
		t.Fatal("expected no code dispatched for unknown email")
	}
}

func TestRequestPasswordResetRateLimited(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	repo := newMockUserRepository()

	cfg := newTestConfig()
	cfg.Reset.MaxRequests = 2
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithConfig(cfg).WithRedis(rdb)
	})
	seedUser(t, engine, repo, "u1", "a@b.com", "old-password-1", access.RoleBasic, nil)

	for i := 0; i < 2; i++ {
		if err := engine.RequestPasswordReset(ctx, "a@b.com"); err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
	}
	if err := engine.RequestPasswordReset(ctx, "a@b.com"); !errors.Is(err, ErrResetRateLimited) {
		t.Fatalf("expected ErrResetRateLimited, got %v", err)
	}
}

func TestRequestPasswordResetIPThrottle(t *testing.T) {
	_, rdb := newTestRedis(t)
	repo := newMockUserRepository()

	cfg := newTestConfig()
	cfg.Reset.MaxRequests = 2
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithConfig(cfg).WithRedis(rdb)
	})

	ctx := WithClientIP(context.Background(), "10.0.0.9")
	for i := 0; i < 2; i++ {
		if err := engine.RequestPasswordReset(ctx, "a@b.com"); err != nil {
			t.Fatalf("request %d failed: %v", i+1, err)
		}
	}
	// Third request from the same IP trips the per-IP window even though
	// the email changed.
	if err := engine.RequestPasswordReset(ctx, "c@d.com"); !errors.Is(err, ErrResetRateLimited) {
		t.Fatalf("expected ErrResetRateLimited, got %v", err)
	}
}

func TestListResetCodesGating(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()

	cfg := newTestConfig()
	cfg.Development = false
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithConfig(cfg)
	})

	if _, err := engine.ListResetCodes(ctx); !errors.Is(err, ErrResetDiagnosticsDisabled) {
		t.Fatalf("expected ErrResetDiagnosticsDisabled, got %v", err)
	}

	dev := newTestEngine(t, repo)
	if err := dev.StoreResetCode(ctx, "a@b.com", "482913", "u1"); err != nil {
		t.Fatalf("StoreResetCode failed: %v", err)
	}
	codes, err := dev.ListResetCodes(ctx)
	if err != nil {
		t.Fatalf("ListResetCodes failed: %v", err)
	}
	if len(codes) != 1 || codes[0].Code != "482913" {
		t.Fatalf("unexpected listing: %+v", codes)
	}
}

func TestConfirmPasswordResetRejectsWeakInput(t *testing.T) {
	ctx := context.Background()
	repo := newMockUserRepository()
	engine := newTestEngine(t, repo)
	seedUser(t, engine, repo, "u1", "a@b.com", "old-password-1", access.RoleBasic, nil)

	if err := engine.StoreResetCode(ctx, "a@b.com", "482913", "u1"); err != nil {
		t.Fatalf("StoreResetCode failed: %v", err)
	}

	err := engine.ConfirmPasswordReset(ctx, "a@b.com", "482913", "bad\x00password")
	if !errors.Is(err, ErrPasswordInvalidInput) {
		t.Fatalf("expected ErrPasswordInvalidInput, got %v", err)
	}

	// The code survives a failed confirmation attempt.
	if !engine.VerifyResetCode(ctx, "a@b.com", "482913") {
		t.Fatal("expected code to remain after rejected new password")
	}
}

func TestResetFlowAgainstRedisStore(t *testing.T) {
	_, rdb := newTestRedis(t)
	ctx := context.Background()
	repo := newMockUserRepository()
	notifier := newRecordingNotifier()

	cfg := newTestConfig()
	cfg.Reset.MaxRequests = 0 // isolate the store path
	engine := newTestEngine(t, repo, func(b *Builder) {
		b.WithConfig(cfg).WithRedis(rdb).WithNotifier(notifier)
	})
	seedUser(t, engine, repo, "u1", "a@b.com", "old-password-1", access.RoleBasic, nil)

	if err := engine.RequestPasswordReset(ctx, "a@b.com"); err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	code := notifier.code("a@b.com")
	if err := engine.ConfirmPasswordReset(ctx, "a@b.com", code, "new-password-1"); err != nil {
		t.Fatalf("ConfirmPasswordReset failed: %v", err)
	}

	updated := repo.get("u1")
	if !engine.VerifyPassword("new-password-1", updated.PasswordHash, updated.PasswordSalt) {
		t.Fatal("expected new password to verify after reset")
	}
}
