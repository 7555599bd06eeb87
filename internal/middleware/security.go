package middleware

import (
	"time"

	"github.com/fernandoludvig/finance-api/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Security sets the standard hardening headers. Cross-origin embedding
// stays open so the docs page can load Swagger UI from its CDN.
func Security() fiber.Handler {
	return helmet.New(helmet.Config{
		CrossOriginEmbedderPolicy: "unsafe-none",
	})
}

// RateLimit allows max requests per client IP within window.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Response{
				Success: false, Message: "Too many requests, please try again later.",
			})
		},
	})
}
