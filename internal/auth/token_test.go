package auth

import (
	"errors"
	"testing"
	"time"
)

func TestNewTokenIssuerDisabledWithoutSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("", time.Hour)
	if issuer != nil {
		t.Fatal("expected nil issuer without secret")
	}
	if _, _, err := issuer.Issue(1); !errors.Is(err, ErrTokensDisabled) {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := issuer.Verify("anything"); !errors.Is(err, ErrTokensDisabled) {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", time.Hour)
	token, expires, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Fatalf("expected expiry in the future, got %s", expires)
	}
	id, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if id != 42 {
		t.Fatalf("Verify() = %d, want 42", id)
	}
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	token, _, err := NewTokenIssuer("one", time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := NewTokenIssuer("two", time.Hour).Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Verify() error = %v, want ErrUnauthenticated", err)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	issuer.now = time.Now
	if _, err := issuer.Verify(token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("Verify() error = %v, want ErrUnauthenticated", err)
	}
}
