package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"glow/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	m := NewMetrics()

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/products/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"data": nil})
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/products/:id", "200"))
	assert.Equal(t, 2.0, got)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "glow_http_requests_total")
}

func TestRateLimit_DeniesAfterBurst(t *testing.T) {
	e := echo.New()
	e.POST("/api/reviews", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(0.001, 1))

	do := func() int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reviews", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimit_Disabled(t *testing.T) {
	e := echo.New()
	e.POST("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RateLimit(0, 1))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLog_WritesStatus(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "glow-api", "info")

	e := echo.New()
	e.Use(RequestLog(l))
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	out := buf.String()
	assert.True(t, strings.Contains(out, `"status":500`), out)
	assert.Contains(t, out, `"level":"error"`)
}
