package utils

import (
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager("test-secret-with-enough-length", time.Minute)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := m.GenerateAccessToken(42, "owner", "Admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "owner" || claims.Role != "Admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	a, _ := NewTokenManager("secret-a", time.Minute)
	b, _ := NewTokenManager("secret-b", time.Minute)

	token, err := a.GenerateAccessToken(1, "u", "Staff")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := b.ValidateToken(token); err == nil {
		t.Fatalf("expected validation error for token signed with another secret")
	}
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	m, err := NewTokenManager("s", 0)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	if m.AccessTTL() != DefaultAccessTokenTTL {
		t.Fatalf("expected default ttl, got %s", m.AccessTTL())
	}
}
