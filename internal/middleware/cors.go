package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// ApplyCORSHeaders reflects the caller's origin so browser clients on any
// domain can talk to the API with credentials. The error handler calls this
// too, otherwise failed requests would be unreadable from a browser.
func ApplyCORSHeaders(c *fiber.Ctx) {
	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		origin = "*"
	}
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Origin, Content-Type, Accept, Authorization")
	c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
}

// CORS sets the CORS headers on every response and answers preflight
// requests directly, before any other middleware runs.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ApplyCORSHeaders(c)
		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).SendString("ok")
		}
		return c.Next()
	}
}
