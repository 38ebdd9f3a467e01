package token

import (
	"testing"
	"time"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    42,
		Email: "agent@test.com",
		Role:  domain.RoleAgent,
	}
}

func TestIssueThenVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if raw == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, ok := iss.Verify(raw)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if claims.UserID != 42 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if claims.Email != "agent@test.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleAgent {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, ok := NewIssuer("secret-b", time.Hour).Verify(raw); ok {
		t.Fatalf("token signed with another secret must not verify")
	}
}

func TestVerify_Expired(t *testing.T) {
	base := time.Now()
	iss := NewIssuer("secret", DefaultTTL)

	raw, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// 8 days forward: past the 7-day window.
	iss.WithClock(func() time.Time { return base.Add(8 * 24 * time.Hour) })
	if _, ok := iss.Verify(raw); ok {
		t.Fatalf("expired token must not verify")
	}
}

func TestVerify_Tampered(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	raw, err := iss.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte anywhere in the encoding; none may verify.
	for i := 0; i < len(raw); i++ {
		mutated := []byte(raw)
		mutated[i] ^= 0x01
		if _, ok := iss.Verify(string(mutated)); ok {
			t.Fatalf("tampered token (byte %d flipped) must not verify", i)
		}
	}
}

func TestVerify_Garbage(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c", "ey.ey.ey"} {
		if _, ok := iss.Verify(raw); ok {
			t.Fatalf("garbage input %q must not verify", raw)
		}
	}
}
