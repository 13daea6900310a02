package email

import (
	"context"
	"errors"
	"testing"
)

type fakeMailer struct {
	err   error
	calls int
}

func (f *fakeMailer) Send(context.Context, Message) error {
	f.calls++
	return f.err
}

func TestFallbackUsesPrimaryFirst(t *testing.T) {
	primary := &fakeMailer{}
	secondary := &fakeMailer{}
	f := NewFallback(primary, secondary)

	if err := f.Send(context.Background(), Message{To: "a@b.cl"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if primary.calls != 1 || secondary.calls != 0 {
		t.Fatalf("unexpected calls: primary=%d secondary=%d", primary.calls, secondary.calls)
	}
}

func TestFallbackTriesNextOnFailure(t *testing.T) {
	primary := &fakeMailer{err: errors.New("boom")}
	secondary := &fakeMailer{}
	f := NewFallback(primary, secondary)

	if err := f.Send(context.Background(), Message{To: "a@b.cl"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if secondary.calls != 1 {
		t.Fatal("secondary should have been tried")
	}
}

func TestFallbackAllFail(t *testing.T) {
	f := NewFallback(&fakeMailer{err: errors.New("x")}, &fakeMailer{err: errors.New("y")})
	if err := f.Send(context.Background(), Message{To: "a@b.cl"}); err == nil {
		t.Fatal("expected error when all providers fail")
	}
}
