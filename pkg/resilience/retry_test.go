package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonotes/pkg/resilience"
)

var errBoom = errors.New("boom")

func fastPolicy(attempts int) resilience.Policy {
	return resilience.Policy{Attempts: attempts, Backoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond, Factor: 2}
}

func TestDo(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		err := resilience.Do(context.Background(), "op", fastPolicy(3), func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after failures", func(t *testing.T) {
		calls := 0
		err := resilience.Do(context.Background(), "op", fastPolicy(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts run out", func(t *testing.T) {
		calls := 0
		err := resilience.Do(context.Background(), "op", fastPolicy(2), func(context.Context) error {
			calls++
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 2, calls)
	})

	t.Run("non retryable error stops immediately", func(t *testing.T) {
		p := fastPolicy(5)
		p.Retryable = func(error) bool { return false }
		calls := 0
		err := resilience.Do(context.Background(), "op", p, func(context.Context) error {
			calls++
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		_ = resilience.Do(context.Background(), "op", resilience.Policy{}, func(context.Context) error {
			calls++
			return errBoom
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context interrupts backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		p := resilience.Policy{Attempts: 3, Backoff: time.Hour}
		err := resilience.Do(ctx, "op", p, func(context.Context) error {
			cancel()
			return errBoom
		})
		require.ErrorIs(t, err, resilience.ErrInterrupted)
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errBoom)
	})
}
