package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h, err := Hash("s3cret-123456", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !Verify("s3cret-123456", h) {
		t.Fatal("expected match")
	}
	if Verify("wrong", h) {
		t.Fatal("expected mismatch")
	}
}

func TestEmptyNeverVerifies(t *testing.T) {
	h, err := Hash("x", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if Verify("", h) {
		t.Fatal("empty plain must not verify")
	}
	if Verify("x", "") {
		t.Fatal("empty hash must not verify")
	}
}

func TestHashEmptyFails(t *testing.T) {
	if _, err := Hash("", bcrypt.MinCost); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestCostsNormalize(t *testing.T) {
	c := Costs{Default: 0, Sensitive: 0}.Normalize()
	if c.Default != 10 || c.Sensitive != 10 {
		t.Fatalf("unexpected normalized costs: %+v", c)
	}
	c = Costs{Default: 10, Sensitive: 12}.Normalize()
	if c.Sensitive != 12 {
		t.Fatalf("sensitive cost clobbered: %+v", c)
	}
}
