package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	defaultOTPPerMinute = 5
	otpRateKeyPrefix    = "rl:otp:"
)

// RateKeyFunc picks the throttling subject for a request. An empty key
// exempts the request.
type RateKeyFunc func(c *fiber.Ctx) string

// OTPRateLimit caps code sends per subject per minute using Redis counters.
// Without a client it is a no-op, and cache errors let the request through.
func OTPRateLimit(cache *redis.Client, perMinute int, keyFn RateKeyFunc) fiber.Handler {
	if perMinute <= 0 {
		perMinute = defaultOTPPerMinute
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next()
		}
		subject := keyFn(c)
		if subject == "" {
			return c.Next()
		}

		ctx := c.UserContext()
		key := otpRateKeyPrefix + subject
		cnt, err := cache.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}
		if cnt == 1 {
			cache.Expire(ctx, key, time.Minute)
		}
		if cnt > int64(perMinute) {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many code requests. Please wait a minute and try again.")
		}
		return c.Next()
	}
}
