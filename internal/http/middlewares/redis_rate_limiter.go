package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter is a fixed-window limiter shared by every instance pointing at
// the same Redis, using INCR with an EXPIRE set on the first hit.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, ident string) (bool, error) {
	seconds := int64(r.window / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	key := fmt.Sprintf("%s:%d:%s", r.prefix, seconds, ident)

	count, err := r.client.Do(ctx, r.client.B().Incr().Key(key).Build()).AsInt64()
	if err != nil {
		return true, fmt.Errorf("incr %s: %w", key, err)
	}

	if count == 1 {
		expire := r.client.B().Expire().Key(key).Seconds(seconds).Build()
		if err := r.client.Do(ctx, expire).Error(); err != nil {
			return true, fmt.Errorf("expire %s: %w", key, err)
		}
	}

	return count <= int64(r.limit), nil
}
