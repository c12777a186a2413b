package roblox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryRateLimitedHonorsHint(t *testing.T) {
	calls := 0

	start := time.Now()
	value, err := RetryRateLimited(context.Background(), 5*time.Second, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, &RateLimitError{RetryAfter: 20 * time.Millisecond}
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 3, calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRetryRateLimitedStopsOnOtherErrors(t *testing.T) {
	calls := 0
	wantErr := errors.New("boom")

	_, err := RetryRateLimited(context.Background(), time.Second, func() (int, error) {
		calls++
		return 0, wantErr
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls, "non rate-limit errors are not retried")
}

func TestRetryRateLimitedRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryRateLimited(ctx, time.Second, func() (int, error) {
		return 0, &RateLimitError{RetryAfter: 50 * time.Millisecond}
	})

	assert.Error(t, err)
}
