package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/office-catalog/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	fast := retry.LinearBackoff(time.Millisecond)

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.RetryConfig{
			MaxAttempts: 5,
			Backoff:     fast,
		}, func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.RetryConfig{
			MaxAttempts: 4,
			Backoff:     fast,
		}, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 4, calls)
	})

	t.Run("NotRetryable", func(t *testing.T) {
		permanent := errors.New("permanent")
		var calls int
		err := retry.Do(t.Context(), retry.RetryConfig{
			MaxAttempts: 4,
			Backoff:     fast,
			ShouldRetry: func(err error) bool {
				return errors.Is(err, errTemporary)
			},
		}, func() error {
			calls++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), retry.RetryConfig{}, func() error {
			calls++
			return errTemporary
		})
		assert.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		var calls int
		err := retry.Do(ctx, retry.RetryConfig{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("ContextDoneWhileWaiting", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()
		err := retry.Do(ctx, retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(time.Minute),
		}, func() error {
			return errTemporary
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.ErrorIs(t, err, errTemporary)
	})
}

func TestLinearBackoff(t *testing.T) {
	b := retry.LinearBackoff(25 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		assert.Equal(t, 25*time.Millisecond, b(attempt))
	}
}

func TestExponentialBackoff(t *testing.T) {
	b := retry.ExponentialBackoff(10 * time.Millisecond)
	for attempt := 1; attempt <= 4; attempt++ {
		base := time.Duration(1<<attempt) * 10 * time.Millisecond
		d := b(attempt)
		assert.Greater(t, d, base)
		assert.LessOrEqual(t, d, base+base/2)
	}
}
