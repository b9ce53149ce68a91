package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
}

// Limiter counts attempts per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Reset(ctx context.Context, key string) error
}

// RedisLimiter implements a fixed-window counter on INCR + EXPIREAT.
type RedisLimiter struct {
	client      redis.Cmdable
	prefix      string
	window      time.Duration
	maxAttempts int64
	now         func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, prefix string, window time.Duration, maxAttempts int64) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisLimiter{
		client:      client,
		prefix:      prefix,
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func (rl *RedisLimiter) key(key string) string {
	return fmt.Sprintf("%s:%s", rl.prefix, key)
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.now().Truncate(rl.window)
	resetAt := windowStart.Add(rl.window)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, rl.key(key))
	pipe.ExpireAt(ctx, rl.key(key), resetAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limiter error: %w", err)
	}

	return decide(incr.Val(), rl.maxAttempts, resetAt), nil
}

func (rl *RedisLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.Del(ctx, rl.key(key)).Err()
}

func decide(count, max int64, resetAt time.Time) Decision {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
