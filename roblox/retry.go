package roblox

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryRateLimited runs fn until it succeeds or fails with something
// other than a RateLimitError. The engine itself never retries throttled
// calls; this is the caller-side policy for when waiting out HTTP 429 is
// acceptable. The service's Retry-After hint is honored when present,
// exponential backoff is used when it is not.
func RetryRateLimited[T any](ctx context.Context, maxElapsed time.Duration, fn func() (T, error)) (T, error) {
	operation := func() (T, error) {
		value, err := fn()
		if err != nil {
			var rateLimited *RateLimitError
			if errors.As(err, &rateLimited) {
				if rateLimited.RetryAfter > 0 {
					return value, &backoff.RetryAfterError{Duration: rateLimited.RetryAfter}
				}
				return value, err
			}
			return value, backoff.Permanent(err)
		}
		return value, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
}
