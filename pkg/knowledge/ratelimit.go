package knowledge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// WindowStore counts requests inside a rolling window. The redis-backed
// implementation keeps the count correct across worker processes; the local
// one is a single-process fallback.
type WindowStore interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

// RedisWindowStore counts via INCR with a TTL set on first increment.
type RedisWindowStore struct {
	client *redis.Client
}

func NewRedisWindowStore(client *redis.Client) *RedisWindowStore {
	return &RedisWindowStore{client: client}
}

func (s *RedisWindowStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, fmt.Errorf("redis expire: %w", err)
		}
	}
	return count, nil
}

func (s *RedisWindowStore) Get(ctx context.Context, key string) (int64, error) {
	count, err := s.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return count, nil
}

// LocalWindowStore keeps window counters in a go-cache instance.
type LocalWindowStore struct {
	cache *cache.Cache
}

func NewLocalWindowStore(window time.Duration) *LocalWindowStore {
	return &LocalWindowStore{
		cache: cache.New(2*window, 4*window),
	}
}

func (s *LocalWindowStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	// Add is a no-op when the key already exists inside its ttl
	_ = s.cache.Add(key, int64(0), ttl)
	return s.cache.IncrementInt64(key, 1)
}

func (s *LocalWindowStore) Get(ctx context.Context, key string) (int64, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return 0, nil
	}
	count, ok := v.(int64)
	if !ok {
		return 0, nil
	}
	return count, nil
}

// RateLimiter enforces a per-source request ceiling over a sliding window.
// Allow never blocks: an over-limit call is simply denied and the caller
// degrades to "no candidate from this source".
type RateLimiter struct {
	store  WindowStore
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(store WindowStore, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		store:  store,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one slot for the source if the ceiling permits it. The
// sliding count weighs the previous bucket by the fraction of it the window
// still overlaps, so a burst straddling a bucket boundary cannot double the
// ceiling.
func (r *RateLimiter) Allow(ctx context.Context, sourceName string) bool {
	if r.limit <= 0 {
		return true
	}
	now := r.now()
	windowSec := int64(r.window.Seconds())
	bucket := now.Unix() / windowSec

	// Counters must outlive their own bucket by one more window so the
	// previous bucket stays readable.
	current, err := r.store.Incr(ctx, r.bucketKey(sourceName, bucket), 2*r.window)
	if err != nil {
		// A broken counter must not take the pipeline down with it
		return true
	}
	previous, err := r.store.Get(ctx, r.bucketKey(sourceName, bucket-1))
	if err != nil {
		previous = 0
	}

	elapsed := float64(now.Unix()%windowSec) / float64(windowSec)
	weighted := float64(current) + float64(previous)*(1-elapsed)
	return weighted <= float64(r.limit)
}

func (r *RateLimiter) bucketKey(sourceName string, bucket int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", sourceName, bucket)
}
