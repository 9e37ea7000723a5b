package auth

import (
	"testing"
	"time"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

func testSession() *domain.Session {
	return &domain.Session{
		ID:   "sid-1",
		User: &domain.UserProfile{Username: "alice", Role: domain.RoleManager},
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	raw, err := m.Issue(testSession())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.SessionID != "sid-1" {
		t.Fatalf("unexpected sid: %q", claims.SessionID)
	}
	if claims.Username != "alice" || claims.Role != domain.RoleManager {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	raw, err := NewTokenManager("secret-a", time.Hour).Issue(testSession())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	// NewTokenManager clamps non-positive TTLs, so build one directly.
	m.ttl = -time.Minute

	raw, err := m.Issue(testSession())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Parse(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	if _, err := m.Parse("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
