package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifyRoundtrip(t *testing.T) {
	h, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "" || h == "password123" {
		t.Fatalf("hash must not be empty or clear text, got %q", h)
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("expected bcrypt self-describing form, got %q", h)
	}
	if !VerifyPassword(h, "password123") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(h, "password124") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPassword_PerPasswordSalt(t *testing.T) {
	h1, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	h2, err := HashPassword("password123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}
	// Salts are random per call, so equal plaintexts hash differently,
	// yet both verify.
	if h1 == h2 {
		t.Fatalf("expected distinct salts to yield distinct hashes")
	}
	if !VerifyPassword(h1, "password123") || !VerifyPassword(h2, "password123") {
		t.Fatalf("both hashes must verify the same plaintext")
	}
}

func TestHashPassword_CostOutOfRangeFallsBack(t *testing.T) {
	h, err := HashPassword("secret", -1)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("bcrypt.Cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Fatalf("malformed hash must never verify")
	}
}
