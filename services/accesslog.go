package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"techcommerce/frontend/config"
	"techcommerce/frontend/database"
	"techcommerce/frontend/domain"
)

var _ domain.AccessLogSink = &AccessLogService{}

// AccessLogService fans access records out to every configured sink.
// Sink failures are logged and never reach the client.
type AccessLogService struct {
	sinks   []domain.AccessLogSink
	closers []func() error
	logger  *slog.Logger
}

func NewAccessLogService(logger *slog.Logger, sinks ...domain.AccessLogSink) *AccessLogService {
	return &AccessLogService{sinks: sinks, logger: logger}
}

// NewAccessLogServiceFromConfig connects the sinks enabled in cfg.
// With no sink enabled the returned service is a no-op.
func NewAccessLogServiceFromConfig(ctx context.Context, cfg *config.AccessLogConfig, logger *slog.Logger) (*AccessLogService, error) {
	svc := NewAccessLogService(logger)

	if cfg.ClickHouse.Enabled {
		db, err := database.InitClickHouse(ctx, &cfg.ClickHouse)
		if err != nil {
			return nil, err
		}
		svc.addBatchedSink(cfg, db, db.Close)
		logger.Info("ClickHouse access log enabled")
	}

	if cfg.Redis.Enabled {
		client, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			_ = svc.Shutdown()
			return nil, err
		}
		svc.addBatchedSink(cfg, database.NewRedisStream(client, cfg.Redis.Stream, cfg.Redis.MaxLen), client.Close)
		logger.Info("Redis access log enabled", "stream", cfg.Redis.Stream)
	}

	return svc, nil
}

// addBatchedSink puts writer behind its own batcher so a slow backend never
// holds up the request that produced the record.
func (s *AccessLogService) addBatchedSink(cfg *config.AccessLogConfig, writer AccessRecordWriter, closeFn func() error) {
	batcher := NewAccessLogBatcher(
		cfg.BufferChannelCapacity,
		cfg.BatchSize,
		time.Duration(cfg.FlushIntervalSeconds)*time.Second,
		writer,
		s.logger,
	)
	batcher.Start()
	s.sinks = append(s.sinks, batcher)
	// batcher first so the final flush still has a connection
	s.closers = append(s.closers, batcher.Shutdown, closeFn)
}

// Enabled reports whether any sink is configured
func (s *AccessLogService) Enabled() bool {
	return len(s.sinks) > 0
}

func (s *AccessLogService) Record(ctx context.Context, record domain.AccessRecord) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Record(ctx, record); err != nil {
			s.logger.Warn("access log sink failed", "path", record.Path, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown flushes buffered records and closes sink connections
func (s *AccessLogService) Shutdown() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("access log shutdown: %w", err)
	}
	return nil
}
