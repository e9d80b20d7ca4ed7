package password

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()

	h, err := NewHasher(Config{
		Cost:   bcrypt.MinCost,
		Pepper: "test-pepper",
	})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return h
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	credential, err := h.Hash("correcthorse1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if credential.Hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if credential.Salt != strconv.Itoa(bcrypt.MinCost) {
		t.Fatalf("expected salt to be the cost factor, got %q", credential.Salt)
	}

	if !h.Verify("correcthorse1", credential.Hash, credential.Salt) {
		t.Fatal("expected correct password to verify")
	}
	if h.Verify("wrongpass1", credential.Hash, credential.Salt) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashProducesDistinctDigests(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("samepassword1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := h.Hash("samepassword1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first.Hash == second.Hash {
		t.Fatal("expected per-hash randomness in digests")
	}
}

func TestHashRejectsInvalidInput(t *testing.T) {
	h := newTestHasher(t)

	cases := []struct {
		name     string
		password string
	}{
		{"empty", ""},
		{"oversized", strings.Repeat("a", 1001)},
		{"nul byte", "pass\x00word"},
		{"escape byte", "pass\x1bword"},
		{"delete byte", "pass\x7fword"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.Hash(tc.password); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestHashAllowsBenignWhitespace(t *testing.T) {
	h := newTestHasher(t)

	for _, pw := range []string{"tab\there", "line\nbreak", "carriage\rreturn"} {
		if _, err := h.Hash(pw); err != nil {
			t.Fatalf("expected %q to hash, got %v", pw, err)
		}
	}
}

func TestVerifyNeverErrors(t *testing.T) {
	h := newTestHasher(t)

	credential, err := h.Hash("validpassword1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	cases := []struct {
		name               string
		password, hash, salt string
	}{
		{"garbage hash", "validpassword1", "not-a-bcrypt-hash", credential.Salt},
		{"empty hash", "validpassword1", "", credential.Salt},
		{"mismatched salt", "validpassword1", credential.Hash, "31"},
		{"non-numeric salt", "validpassword1", credential.Hash, "abc"},
		{"invalid password input", "bad\x00input", credential.Hash, credential.Salt},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if h.Verify(tc.password, tc.hash, tc.salt) {
				t.Fatal("expected verification to fail")
			}
		})
	}
}

func TestPepperIsLoadBearing(t *testing.T) {
	h := newTestHasher(t)
	other, err := NewHasher(Config{Cost: bcrypt.MinCost, Pepper: "rotated-pepper"})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	credential, err := h.Hash("correcthorse1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if other.Verify("correcthorse1", credential.Hash, credential.Salt) {
		t.Fatal("expected verification under a different pepper to fail")
	}
}

func TestLongPasswordsRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	long := strings.Repeat("p", 1000)
	credential, err := h.Hash(long)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !h.Verify(long, credential.Hash, credential.Salt) {
		t.Fatal("expected long password to verify")
	}
	if h.Verify(strings.Repeat("p", 999)+"q", credential.Hash, credential.Salt) {
		t.Fatal("expected near-miss long password to fail")
	}
}

func TestNewHasherValidation(t *testing.T) {
	if _, err := NewHasher(Config{Cost: bcrypt.MinCost}); err == nil {
		t.Fatal("expected missing pepper to be rejected")
	}
	if _, err := NewHasher(Config{Cost: 99, Pepper: "p"}); err == nil {
		t.Fatal("expected out-of-range cost to be rejected")
	}
	h, err := NewHasher(Config{Pepper: "p"})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	if h.cost != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, h.cost)
	}
}
