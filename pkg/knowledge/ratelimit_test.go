package knowledge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_AllowUpToLimit(t *testing.T) {
	store := NewLocalWindowStore(time.Minute)
	limiter := NewRateLimiter(store, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(ctx, "wikipedia"), "call %d should be allowed", i+1)
	}
	assert.False(t, limiter.Allow(ctx, "wikipedia"))
}

func TestRateLimiter_SourcesCountedSeparately(t *testing.T) {
	store := NewLocalWindowStore(time.Minute)
	limiter := NewRateLimiter(store, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "wikipedia"))
	assert.False(t, limiter.Allow(ctx, "wikipedia"))
	assert.True(t, limiter.Allow(ctx, "dictionary"))
}

func TestRateLimiter_ZeroLimitDisablesLimiting(t *testing.T) {
	store := NewLocalWindowStore(time.Minute)
	limiter := NewRateLimiter(store, 0, time.Minute)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow(ctx, "community"))
	}
}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, context.DeadlineExceeded
}

func (failingStore) Get(ctx context.Context, key string) (int64, error) {
	return 0, context.DeadlineExceeded
}

func TestRateLimiter_StoreFailureFailsOpen(t *testing.T) {
	limiter := NewRateLimiter(failingStore{}, 1, time.Minute)
	assert.True(t, limiter.Allow(context.Background(), "wikipedia"))
}

func TestRateLimiter_SlidingWindowSpansBuckets(t *testing.T) {
	store := NewLocalWindowStore(time.Minute)
	limiter := NewRateLimiter(store, 10, time.Minute)
	ctx := context.Background()

	// Fill one bucket to the ceiling.
	limiter.now = func() time.Time { return time.Unix(30, 0) }
	for i := 0; i < 10; i++ {
		assert.True(t, limiter.Allow(ctx, "wikipedia"), "call %d should be allowed", i+1)
	}

	// Just past the boundary the previous bucket still weighs in almost
	// fully, so a fresh burst is denied rather than doubling the ceiling.
	limiter.now = func() time.Time { return time.Unix(61, 0) }
	assert.False(t, limiter.Allow(ctx, "wikipedia"))

	// By the end of the next bucket that weight has decayed away.
	limiter.now = func() time.Time { return time.Unix(119, 0) }
	assert.True(t, limiter.Allow(ctx, "wikipedia"))
}

func TestLocalWindowStore_Incr(t *testing.T) {
	store := NewLocalWindowStore(time.Minute)
	ctx := context.Background()

	n, err := store.Incr(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Incr(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
