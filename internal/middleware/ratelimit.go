package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/homemadechefs/chefcms/internal/logger"
	"github.com/homemadechefs/chefcms/internal/ratelimit"
)

// RateLimit applies a per-IP limit to a route. If the limiter itself fails
// the request is allowed through; rate limiting is protection, not a
// dependency.
func RateLimit(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := limiter.Allow(c.Context(), c.IP())
		if err != nil {
			logger.Get().Error().Err(err).Msg("Rate limiter error")
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			logger.Get().Warn().
				Str("ip", c.IP()).
				Str("path", c.Path()).
				Msg("Rate limit exceeded")

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		}

		return c.Next()
	}
}
