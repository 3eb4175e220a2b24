package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techcommerce/frontend/domain"
	"techcommerce/frontend/logging"
)

type captureSink struct {
	mu      sync.Mutex
	records []domain.AccessRecord
}

func (s *captureSink) Record(_ context.Context, record domain.AccessRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		out = append(out, rec)
	}
	return out
}

func newApp(logger *slog.Logger, sink domain.AccessLogSink) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger(logger, sink))
	app.Get("/health", func(c *fiber.Ctx) error {
		logger.Info("handler ran")
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})
	return app
}

func TestRequestLoggerRunsBeforeHandler(t *testing.T) {
	var buf bytes.Buffer
	app := newApp(logging.New(&buf, slog.LevelInfo), nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "HTTP request", lines[0]["message"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.Equal(t, "/health", lines[0]["path"])
	assert.NotEmpty(t, lines[0]["time"])
	assert.Equal(t, "handler ran", lines[1]["message"])
}

func TestRequestLoggerLogsUnmatchedRoutes(t *testing.T) {
	var buf bytes.Buffer
	sink := &captureSink{}
	app := newApp(logging.New(&buf, slog.LevelInfo), sink)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/nonexistent", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "/nonexistent", lines[0]["path"])

	require.Len(t, sink.records, 1)
	assert.Equal(t, fiber.StatusNotFound, sink.records[0].Status)
}

func TestRequestLoggerShipsAccessRecords(t *testing.T) {
	var buf bytes.Buffer
	sink := &captureSink{}
	app := newApp(logging.New(&buf, slog.LevelInfo), sink)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)

	require.Len(t, sink.records, 2)
	assert.Equal(t, "GET", sink.records[0].Method)
	assert.Equal(t, "/health", sink.records[0].Path)
	assert.Equal(t, fiber.StatusOK, sink.records[0].Status)
	assert.False(t, sink.records[0].Time.IsZero())
	assert.Equal(t, "/boom", sink.records[1].Path)
	assert.Equal(t, fiber.StatusInternalServerError, sink.records[1].Status)
}
