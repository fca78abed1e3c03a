package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"applesapi/internal/service"
)

// NewApp builds the Fiber app with the shared error handler. Path parameters are left
// raw for routing, the apple handlers decode them.
func NewApp(logger log.FieldLogger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})
}

// RegisterRoutes attaches the probe and apple routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, health Pinger, svc service.AppleService, logger log.FieldLogger) {
	app.Get("/health", HealthCheck(health))
	app.Get("/healthz", LivenessProbe())

	apples := app.Group("/api/apples")
	apples.Get("/", ListApples(svc, logger))
	apples.Post("/", CreateApple(svc, logger))
	apples.Get("/:id", GetApple(svc, logger))
	apples.Put("/:id", UpdateApple(svc, logger))
	apples.Delete("/:id", DeleteApple(svc, logger))
}

// RegisterMetrics exposes the gatherer in the Prometheus text format at /metrics.
func RegisterMetrics(app *fiber.App, g prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}
