package api

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"techcommerce/frontend/domain"
	"techcommerce/frontend/metrics"
	"techcommerce/frontend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

const idleTimeout = 5 * time.Second

// Options carries the dependencies wired into the Fiber app
type Options struct {
	Port      int
	Logger    *slog.Logger
	Handler   FrontendHandler
	Metrics   *metrics.Metrics     // optional; nil disables /metrics
	AccessLog domain.AccessLogSink // optional
}

type route struct {
	method  string
	path    string
	handler fiber.Handler
}

// routes is the static (method, path) -> handler table
func routes(h FrontendHandler, m *metrics.Metrics) []route {
	table := []route{
		{fiber.MethodGet, "/", h.Home},
		{fiber.MethodGet, "/health", h.Health},
		{fiber.MethodGet, "/ready", h.Ready},
		{fiber.MethodGet, "/version", h.Version},
		{fiber.MethodGet, "/swagger/*", swagger.HandlerDefault},
	}
	if m != nil {
		table = append(table, route{fiber.MethodGet, "/metrics", m.Handler()})
	}
	return table
}

// NewApp builds the Fiber app: request logger, metrics, recover, then the route table.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               domain.ServiceName,
		IdleTimeout:           idleTimeout,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(opts.Logger, opts.AccessLog))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
	}
	// innermost, so a recovered panic still reaches the logger and metrics as an error
	app.Use(recover.New())

	for _, r := range routes(opts.Handler, opts.Metrics) {
		app.Add(r.method, r.path, r.handler)
	}

	app.Hooks().OnListen(func(ld fiber.ListenData) error {
		port := opts.Port
		if p, err := strconv.Atoi(ld.Port); err == nil {
			port = p
		}
		opts.Logger.Info(fmt.Sprintf("Frontend service running on port %d", port), "port", port)
		return nil
	})

	return app
}
