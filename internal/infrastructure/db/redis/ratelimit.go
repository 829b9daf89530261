package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultWindow      = time.Minute
	defaultMaxAttempts = 10
)

// LoginLimiter is a fixed-window rate limiter for authentication attempts.
// Key format: login_attempts:<key>:<window_start_unix>
type LoginLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int64
}

// NewLoginLimiter creates a limiter allowing maxAttempts per window. Zero
// values fall back to defaults.
func NewLoginLimiter(client *redis.Client, window time.Duration, maxAttempts int64) *LoginLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &LoginLimiter{client: client, window: window, maxAttempts: maxAttempts}
}

// Allow records an attempt for key and reports whether it is within the
// limit. The counter expires with the window, so idle keys cost nothing.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.maxAttempts, nil
}

func (l *LoginLimiter) key(key string) string {
	windowStart := time.Now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("login_attempts:%s:%d", key, windowStart)
}
