package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Metrics) *fiber.App {
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return errors.New("backend exploded")
	})
	app.Get("/metrics", m.Handler())
	return app
}

func TestMiddlewareCountsMatchedRoutes(t *testing.T) {
	m := New()
	app := newTestApp(m)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/health", "200")))
}

func TestMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	m := New()
	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/nonexistent", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", UnmatchedRoute, "404")))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", UnmatchedRoute, "405")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	app := newTestApp(m)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "frontend_http_requests_total")
	assert.Contains(t, string(body), "frontend_build_info")
}

func TestMiddlewareCountsPlainErrorsAsServerErrors(t *testing.T) {
	m := New()
	app := newTestApp(m)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/fail", "500")))
}
