package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetricsApp(t *testing.T, skip ...string) (*fiber.App, *Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg, skip...)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Handler())
	return app, m, reg
}

func TestMetrics_CountsByRouteAndStatus(t *testing.T) {
	app, m, _ := newMetricsApp(t)
	app.Get("/api/posts/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Delete("/api/posts/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Post("/api/topics", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "exists") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db down") })

	for _, r := range []struct{ method, path string }{
		{"GET", "/api/posts/1"},
		{"GET", "/api/posts/2"},
		{"DELETE", "/api/posts/2"},
		{"POST", "/api/topics"},
		{"GET", "/boom"},
	} {
		_, err := app.Test(httptest.NewRequest(r.method, r.path, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/posts/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("DELETE", "/api/posts/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/topics", "409")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/boom", "500")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.latency))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetrics_SkipPaths(t *testing.T) {
	app, _, reg := newMetricsApp(t, "/metrics", "/healthz")
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, p := range []string{"/metrics", "/healthz"} {
		_, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
	}

	count, err := testutil.GatherAndCount(reg, "orion_http_requests_total", "orion_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}
