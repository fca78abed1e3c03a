package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"applesapi/docs"
	"applesapi/internal/config"
	handlers "applesapi/internal/http/handler"
	"applesapi/internal/http/middleware"
	"applesapi/internal/logging"
	"applesapi/internal/otel"
)

// @title Apples API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	shutdownTracing, err := otel.Init(context.Background(), logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize tracing")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	apples, err := newBackend(context.Background(), cfg, logger, reg)
	if err != nil {
		logger.WithError(err).WithField("store_backend", cfg.StoreBackend).Fatal("failed to initialize store")
	}
	defer apples.Close()

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.WithError(err).Fatal("failed to register http metrics")
	}

	app := handlers.NewApp(logger)

	app.Use(middleware.RequestID())
	app.Use(middleware.Tracing("applesapi"))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(logger))

	handlers.RegisterRoutes(app, apples.Health, apples.Service, logger)
	handlers.RegisterMetrics(app, reg)

	// Set once before serving; the UI follows the scheme of the page it is loaded from.
	docs.SwaggerInfo.Host = cfg.AppHost
	app.Get("/swagger/*", swagger.HandlerDefault)

	addr := ":" + cfg.Port
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.WithError(err).WithField("addr", addr).Fatal("failed to listen")
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	logger.WithFields(log.Fields{
		"addr":          addr,
		"store_backend": cfg.StoreBackend,
		"id_policy":     apples.Policy.String(),
	}).Info("server starting")

	if err := serve(app, ln, sig, shutdownTracing, logger); err != nil {
		logger.WithError(err).Error("server stopped")
	}
}

const shutdownTimeout = 10 * time.Second

// serve runs app on ln until stop fires. flush runs after the server has drained,
// so spans from the last requests are exported before the process exits.
func serve(app *fiber.App, ln net.Listener, stop <-chan os.Signal, flush func(context.Context) error, logger log.FieldLogger) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-stop
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.WithError(err).Error("http shutdown")
		}
	}()

	err := app.Listener(ln)
	if err == nil {
		// Listener returns as soon as the socket closes, before in-flight requests finish.
		<-stopped
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if ferr := flush(ctx); ferr != nil {
		logger.WithError(ferr).Error("tracing shutdown")
	}
	return err
}
