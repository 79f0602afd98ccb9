package util

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Delays are capped so a long retry chain against a down upstream doesn't
// back off into minutes.
const maxRetryDelay = 30 * time.Second

// Retry calls fn up to maxAttempts times, doubling the delay after each
// failure starting from baseDelay. Up to 25% jitter is added so concurrent
// callers hitting the same upstream don't retry in lockstep. Cancellation
// is honored between attempts; the final error carries the attempt count.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay << (attempt - 1)
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
		if delay > 0 {
			delay += time.Duration(rand.Int63n(int64(delay)/4 + 1))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("after %d attempts: %w", maxAttempts, err)
}
