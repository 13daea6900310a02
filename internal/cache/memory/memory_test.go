package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/cache"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := New("t", time.Minute)

	if _, err := m.Get(ctx, "k"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	b, err := m.Get(ctx, "k")
	if err != nil || string(b) != "v" {
		t.Fatalf("get: %q %v", b, err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "k"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := New("", time.Minute)
	if err := m.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := m.Get(ctx, "k"); !errors.Is(err, cache.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}
