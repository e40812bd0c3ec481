package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/voyagehub/travel-bookings/internal/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	tok, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user id 42, got %d", userID)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = tokens.Verify(tok)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = tokens.Verify(tampered)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokens("secret-a", time.Hour)
	verifier := NewTokens("secret-b", time.Hour)

	tok, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.Verify(tok); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
