package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// NoCacheHeaders sets no-cache headers. Pool figures are recomputed per
// request and must never be served stale.
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// PrivateCacheHeaders sets private cache headers (for user-specific data)
func PrivateCacheHeaders(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			seconds := int(maxAge.Seconds())
			c.Set("Cache-Control", "private, max-age="+itoa(seconds))
		}

		return err
	}
}

// itoa converts int to string without pulling in strconv formatting
func itoa(i int) string {
	if i == 0 {
		return "0"
	}

	var b [20]byte
	pos := len(b)
	neg := i < 0
	if neg {
		i = -i
	}

	for i > 0 {
		pos--
		b[pos] = byte('0' + i%10)
		i /= 10
	}

	if neg {
		pos--
		b[pos] = '-'
	}

	return string(b[pos:])
}
