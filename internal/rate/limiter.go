package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds limiter tuning parameters.
type Config struct {
	// MaxRequests is the per-key budget inside one window.
	MaxRequests int
	// Window is the fixed counting window.
	Window time.Duration
	// EnableIPThrottle adds a second counter keyed by client IP.
	EnableIPThrottle bool
}

// Limiter enforces the reset-request budget per email and optionally per IP
// using Redis counters.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// CheckResetRequest counts one reset request against the email's window
// budget, and the IP's when IP throttling is enabled. Returns
// [ErrRateLimited] once a budget is exceeded.
func (l *Limiter) CheckResetRequest(ctx context.Context, email, ip string) error {
	if err := l.enforceFixedWindow(ctx, emailKey(email)); err != nil {
		return err
	}

	if l.config.EnableIPThrottle && ip != "" {
		if err := l.enforceFixedWindow(ctx, ipKey(ip)); err != nil {
			return err
		}
	}

	return nil
}

func (l *Limiter) enforceFixedWindow(ctx context.Context, key string) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	if count > int64(l.config.MaxRequests) {
		return ErrRateLimited
	}

	return nil
}

func emailKey(email string) string {
	return "prr:e:" + email
}

func ipKey(ip string) string {
	return "prr:ip:" + ip
}
