package service

import (
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("alice@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !svc.Validate(token) {
		t.Fatalf("freshly issued token should validate")
	}

	subject, err := svc.Subject(token)
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", subject)
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", 24*time.Hour)
	svc.now = fixedClock(issued)

	token, err := svc.Generate("bob@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = fixedClock(issued.Add(24 * time.Hour).Add(time.Second))
	if svc.Validate(token) {
		t.Fatalf("token past its TTL should be invalid")
	}
	if _, err := svc.Subject(token); err == nil {
		t.Fatalf("expected error extracting subject from expired token")
	}
}

func TestTokenService_ExpiryBoundaryIsExclusive(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", 24*time.Hour)
	svc.now = fixedClock(issued)

	token, err := svc.Generate("carol@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// One second before expiry: still valid.
	svc.now = fixedClock(issued.Add(24*time.Hour - time.Second))
	if !svc.Validate(token) {
		t.Fatalf("token one second before expiry should be valid")
	}

	// Exactly at expiry: already invalid.
	svc.now = fixedClock(issued.Add(24 * time.Hour))
	if svc.Validate(token) {
		t.Fatalf("token expiring exactly now should be invalid")
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Generate("dave@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	// Flip one character in the payload.
	payload := []byte(parts[1])
	if payload[4] == 'A' {
		payload[4] = 'B'
	} else {
		payload[4] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if svc.Validate(tampered) {
		t.Fatalf("tampered token should not validate")
	}
	if _, err := svc.Subject(tampered); err == nil {
		t.Fatalf("expected error extracting subject from tampered token")
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Generate("eve@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if verifier.Validate(token) {
		t.Fatalf("token signed with a different secret should be invalid")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if svc.Validate(token) {
			t.Fatalf("malformed token %q should not validate", token)
		}
		if _, err := svc.Subject(token); err == nil {
			t.Fatalf("expected error for malformed token %q", token)
		}
	}
}
