package middleware

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

// Tracing starts a server span per request. Probe and scrape endpoints are skipped.
func Tracing(serverName string) fiber.Handler {
	return otelfiber.Middleware(
		otelfiber.WithServerName(serverName),
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			switch c.Path() {
			case "/metrics", "/health", "/healthz":
				return true
			}
			return false
		}),
	)
}
