package util

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces calls to an upstream API with a token bucket. The
// bucket holds a small burst so a backfill can issue a handful of requests
// back to back before settling at the steady per-minute rate.
type RateLimiter struct {
	mu     sync.Mutex
	rate   float64 // tokens per second
	burst  float64
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a limiter allowing perMinute calls per minute,
// with a burst of one tenth of that (at least one).
func NewRateLimiter(perMinute int) *RateLimiter {
	burst := float64(perMinute) / 10
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:   float64(perMinute) / 60,
		burst:  burst,
		tokens: burst,
		last:   time.Now(),
	}
}

// Wait takes one token, sleeping exactly as long as the bucket needs to
// refill it. It returns early if ctx is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		now := time.Now()
		rl.tokens += now.Sub(rl.last).Seconds() * rl.rate
		if rl.tokens > rl.burst {
			rl.tokens = rl.burst
		}
		rl.last = now

		if rl.tokens >= 1 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		wait := time.Duration((1 - rl.tokens) / rl.rate * float64(time.Second))
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
