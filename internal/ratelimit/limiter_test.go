package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/linkshrink/linkshrink/internal/ratelimit"
	"github.com/linkshrink/linkshrink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter(t *testing.T) {
	t.Run("allows up to the limit then rejects", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemoryStore(), 3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(context.Background(), "client")

			require.NoError(t, err)
			assert.True(t, allowed, "request %d should pass", i+1)
		}

		allowed, err := limiter.Allow(context.Background(), "client")

		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("limits are per key", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemoryStore(), 1, time.Minute)

		allowed, err := limiter.Allow(context.Background(), "a")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(context.Background(), "b")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window expiry frees the budget", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemoryStore(), 1, 10*time.Millisecond)

		allowed, err := limiter.Allow(context.Background(), "client")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(context.Background(), "client")
		require.NoError(t, err)
		assert.False(t, allowed)

		time.Sleep(20 * time.Millisecond)

		allowed, err = limiter.Allow(context.Background(), "client")
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

type failingStore struct{}

func (failingStore) Record(context.Context, string, time.Duration) (int64, error) {
	return 0, assert.AnError
}

func TestSlidingWindowLimiter_StoreError(t *testing.T) {
	limiter := ratelimit.NewSlidingWindowLimiter(failingStore{}, 1, time.Minute)

	allowed, err := limiter.Allow(context.Background(), "client")

	assert.False(t, allowed)
	assert.Error(t, err)
}
