package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techcommerce/frontend/api"
	"techcommerce/frontend/buildinfo"
	"techcommerce/frontend/config"
	"techcommerce/frontend/logging"
	"techcommerce/frontend/metrics"
	"techcommerce/frontend/services"

	_ "techcommerce/frontend/docs" // Import generated docs
)

// @title TechCommerce Frontend
// @version 1.0
// @description Frontend service exposing liveness and readiness probes and a static homepage
// @BasePath /
// @schemes http

func main() {
	buildinfo.SetStartTime(time.Now())

	cfg := config.Load()
	logger := logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	info := buildinfo.GetInfo()
	logger.Info("Starting application",
		"build", info.String(), "version", info.Version, "commit", info.Commit)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	accessLog, err := services.NewAccessLogServiceFromConfig(initCtx, &cfg.AccessLog, logger)
	cancelInit()
	if err != nil {
		logger.Error("Failed to initialize access log sinks", "error", err)
		os.Exit(1)
	}

	opts := api.Options{
		Port:    cfg.Port,
		Logger:  logger,
		Handler: api.NewFrontendHandler(logger, nil),
		Metrics: metrics.New(),
	}
	if accessLog.Enabled() {
		opts.AccessLog = accessLog
	}
	app := api.NewApp(opts)

	// Listen from a different goroutine
	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			logger.Error("Failed to start server", "port", cfg.Port, "error", err)
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logger.Info("Gracefully shutting down...")
	if err := app.ShutdownWithTimeout(time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second); err != nil {
		logger.Warn("Error shutting down server", "error", err)
	}

	if err := accessLog.Shutdown(); err != nil {
		logger.Warn("Error shutting down access log", "error", err)
	}

	logger.Info("Frontend service stopped")
}
