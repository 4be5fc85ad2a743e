package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := NewSlidingWindowLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlidingWindowLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	require.True(t, ok)
	ok, _ = limiter.Allow(ctx, "10.0.0.1")
	require.False(t, ok)

	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, 20*time.Millisecond)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	require.True(t, ok)
	ok, _ = limiter.Allow(ctx, "10.0.0.1")
	require.False(t, ok)

	time.Sleep(30 * time.Millisecond)

	ok, _ = limiter.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
}
