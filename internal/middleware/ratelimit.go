package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sergiorey/hotel-reservation/internal/config"
)

// limiterStore is the slice of Redis the limiter uses.  *redis.Client
// satisfies it; tests supply a fake.
type limiterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// NewRateLimiter returns a fixed-window limiter backed by Redis: one
// counter per client IP, incremented per request and expiring with
// the window.  When Redis is unavailable the middleware lets traffic
// through rather than failing closed.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return rateLimit(cfg, rdb)
}

func rateLimit(cfg config.RateLimitConfig, store limiterStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}
			key := cfg.Prefix + ":" + ip
			ctx := c.Request().Context()

			n, err := store.Incr(ctx, key).Result()
			if err != nil {
				c.Logger().Warnf("ratelimit: redis error for key=%s: %v", key, err)
				return next(c)
			}
			if n == 1 {
				if err := store.Expire(ctx, key, cfg.Window).Err(); err != nil {
					c.Logger().Warnf("ratelimit: set expiry for key=%s failed: %v", key, err)
				}
			}

			remaining := int64(cfg.Limit) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Limit) {
				ttl, err := store.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					// The counter has no expiry, so the initial Expire must
					// have failed.  Re-arm it or the client stays limited
					// long after the window should have closed.
					_ = store.Expire(ctx, key, cfg.Window).Err()
					ttl = cfg.Window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl/time.Second)+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":   "too_many_requests",
					"message": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
