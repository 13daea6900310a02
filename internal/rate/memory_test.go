package rate

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterWindow(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "login:1.2.3.4")
		if err != nil {
			t.Fatalf("allow: %v", err)
		}
		if !res.Allowed {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	res, err := l.Allow(ctx, "login:1.2.3.4")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if res.Allowed {
		t.Fatal("4th hit should be denied")
	}
	if res.RetryAfter <= 0 {
		t.Fatal("RetryAfter should be positive when denied")
	}

	// Otra key no comparte ventana.
	other, err := l.Allow(ctx, "login:5.6.7.8")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if !other.Allowed {
		t.Fatal("different key must have its own window")
	}
}
