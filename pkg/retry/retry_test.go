package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	attempts, err := Do(context.Background(), logger.NewNop(), "always-fails", func() error {
		calls++
		return errors.New("boom")
	}, Config{MaxAttempts: 3})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 || calls != 3 {
		t.Fatalf("expected 3 attempts, got attempts=%d calls=%d", attempts, calls)
	}
}

func TestDoReturnsOnFirstSuccess(t *testing.T) {
	calls := 0
	attempts, err := Do(context.Background(), logger.NewNop(), "second-succeeds", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}, Config{MaxAttempts: 3})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestDoPermanentStopsImmediately(t *testing.T) {
	sentinel := errors.New("fatal")
	attempts, err := Do(context.Background(), logger.NewNop(), "permanent", func() error {
		return Permanent(sentinel)
	}, Config{MaxAttempts: 3})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}
