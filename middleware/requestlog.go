package middleware

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"techcommerce/frontend/domain"
)

// RequestLogMessage is the message of the per-request log record
const RequestLogMessage = "HTTP request"

// RequestLogger emits one record per request before the rest of the chain runs.
// If sink is non-nil it also receives an AccessRecord once the status is known.
func RequestLogger(logger *slog.Logger, sink domain.AccessLogSink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		// fasthttp reuses the path buffer after the handler returns
		path := strings.Clone(c.Path())
		logger.Info(RequestLogMessage, "method", c.Method(), "path", path)

		err := c.Next()
		if sink == nil {
			return err
		}

		_ = sink.Record(c.UserContext(), domain.AccessRecord{
			Method:   c.Method(),
			Path:     path,
			Status:   responseStatus(c, err),
			Duration: time.Since(start),
			Time:     start,
		})
		return err
	}
}

// responseStatus predicts the status the error handler will write for err
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
