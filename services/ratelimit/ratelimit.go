package ratelimit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a fixed-window request counter backed by Redis. The magic-link
// endpoint uses it to cap sign-in mails per client IP.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		limit:  int64(limit),
		window: window,
	}
}

// Allow counts one request for the key and reports whether it is still under
// the window's limit. Redis failures fail open: a broken limiter must not
// lock the household out of signing in.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	n, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("Rate limiter: error counting %s: %v", redisKey, err)
		return true, err
	}

	if n == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			log.Printf("Rate limiter: error setting TTL on %s: %v", redisKey, err)
		}
	}

	return n <= l.limit, nil
}
