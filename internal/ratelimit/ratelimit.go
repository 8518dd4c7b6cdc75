package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	Allow(key string) bool
	// Wait blocks until key may proceed or ctx is done.
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter keeps one token bucket per key in memory
type InMemoryLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit // Rate of adding tokens
	b       int        // Bucket size
}

// NewInMemoryLimiter creates a new rate limiter
// Example: NewInMemoryLimiter(60, time.Minute, 5) -> 60 requests per minute per key, burst of 5
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	r := rate.Inf
	if requests > 0 {
		r = rate.Every(per / time.Duration(requests))
	}
	if burst < 1 {
		burst = 1
	}
	return &InMemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       r,
		b:       burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.buckets[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = limiter
	}
	return limiter
}

// Allow checks if key may perform an action now
func (l *InMemoryLimiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	return l.bucket(key).Wait(ctx)
}
