package token

import (
	"strings"
	"testing"
	"time"
)

func TestNewSigner_EmptySecret_ReturnsError(t *testing.T) {
	if _, err := NewSigner(""); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}

func TestSigner_Sign_ProducesJWT(t *testing.T) {
	s, err := NewSigner("test-secret")
	if err != nil {
		t.Fatalf("NewSigner returned error: %v", err)
	}

	tok, err := s.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Errorf("token should have 3 segments, got %d", len(parts))
	}
}

func TestSigner_SignThenParse_RoundTripsEmail(t *testing.T) {
	s, _ := NewSigner("test-secret")
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tok, err := s.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := s.Parse(tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}
	if claims.IssuedAt == nil || !claims.IssuedAt.Time.Equal(fixed) {
		t.Errorf("IssuedAt = %v, want %v", claims.IssuedAt, fixed)
	}
	if claims.ExpiresAt != nil {
		t.Errorf("ExpiresAt = %v, want nil", claims.ExpiresAt)
	}
}

func TestSigner_Parse_WrongSecret_ReturnsError(t *testing.T) {
	s1, _ := NewSigner("secret-1")
	s2, _ := NewSigner("secret-2")

	tok, err := s1.Sign("user@example.com")
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := s2.Parse(tok); err == nil {
		t.Error("expected error when parsing with a different secret")
	}
}
