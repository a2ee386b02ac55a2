package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/a", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/a", "GET", 200, 30*time.Millisecond)
	m.RecordError("/a", "GET", "NOT_FOUND")
	m.RecordTableInteraction("tickets", "sort")
	m.RecordTableInteraction("tickets", "sort")

	s := m.Snapshot()
	require.Equal(t, int64(2), s.Requests["/a|GET|200"])
	require.Equal(t, 20.0, s.AvgLatencyMillis["/a|GET|200"])
	require.Equal(t, int64(1), s.Errors["/a|GET|NOT_FOUND"])
	require.Equal(t, int64(2), s.TableInteractions["tickets|sort"])

	var nilMetrics *Metrics
	nilMetrics.RecordTableInteraction("x", "y")
	require.Empty(t, nilMetrics.Snapshot().Requests)
}

func TestRequestLoggerRecordsRoutePattern(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, "req-1", resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/items/7", nil))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	require.Equal(t, int64(2), m.Snapshot().Requests["/items/:id|GET|204"])
}
