package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowPerKeyBurst(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("a") {
		t.Fatal("third call within the hour should be denied")
	}
	if !l.Allow("b") {
		t.Fatal("keys must not share buckets")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 1)
	if err := l.Wait(context.Background(), "a"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "a"); err == nil {
		t.Fatal("expected Wait to fail once the bucket is empty and ctx expires")
	}
}

func TestUnlimitedWhenNoRequestsConfigured(t *testing.T) {
	l := NewInMemoryLimiter(0, time.Minute, 1)
	for i := 0; i < 100; i++ {
		if !l.Allow("a") {
			t.Fatalf("call %d denied", i)
		}
	}
}
