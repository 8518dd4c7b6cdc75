package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

// Config describes a bounded, fixed-interval retry policy.
type Config struct {
	MaxAttempts uint64
	Interval    time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		Interval:    5 * time.Second,
	}
}

// Permanent stops retrying and returns err from Do.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs operation until it succeeds, returns a Permanent error, or MaxAttempts is reached.
// It returns the number of attempts made together with the last error.
func Do(ctx context.Context, log logger.Logger, operationName string, operation func() error, cfg Config) (int, error) {
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Interval), cfg.MaxAttempts-1),
		ctx,
	)

	attempts := 0
	counted := func() error {
		attempts++
		return operation()
	}

	notify := func(err error, t time.Duration) {
		log.Warn(
			"Operation failed, retrying...",
			"operation", operationName,
			"attempt", attempts,
			"error", err,
			"next_attempt_in", t.Round(time.Millisecond).String(),
		)
	}

	err := backoff.RetryNotify(counted, bo, notify)
	return attempts, err
}
