package jwt_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtx "github.com/dropDatabas3/peoplehub/internal/jwt"
)

func newIssuer(t *testing.T, ttl time.Duration) *jwtx.Issuer {
	t.Helper()
	iss, err := jwtx.NewIssuer("unit-test-secret", "peoplehub", ttl)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return iss
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	iss := newIssuer(t, time.Hour)
	raw, exp, err := iss.Issue(jwtx.Identity{UserID: "u1", Email: "a@b.cl", Name: "Ana"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatal("exp should be in the future")
	}
	id, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != "u1" || id.Email != "a@b.cl" || id.Name != "Ana" {
		t.Fatalf("identity mismatch: %+v", id)
	}
}

func TestVerifyExpired(t *testing.T) {
	iss := newIssuer(t, time.Nanosecond)
	raw, _, err := iss.Issue(jwtx.Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := iss.Verify(raw); !errors.Is(err, jwtx.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTampered(t *testing.T) {
	iss := newIssuer(t, time.Hour)
	raw, _, _ := iss.Issue(jwtx.Identity{UserID: "u1"})
	parts := strings.Split(raw, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	if _, err := iss.Verify(strings.Join(parts, ".")); !errors.Is(err, jwtx.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	a := newIssuer(t, time.Hour)
	b, err := jwtx.NewIssuer("other-secret", "peoplehub", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	raw, _, _ := a.Issue(jwtx.Identity{UserID: "u1"})
	if _, err := b.Verify(raw); !errors.Is(err, jwtx.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestEmptySecretRejected(t *testing.T) {
	if _, err := jwtx.NewIssuer("", "peoplehub", time.Hour); err == nil {
		t.Fatal("empty secret must be rejected at construction")
	}
}
