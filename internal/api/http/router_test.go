package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-admin/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/listing"
	"github.com/spec-kit/helpdesk-admin/internal/observability"
	"github.com/spec-kit/helpdesk-admin/internal/service"
	apperrors "github.com/spec-kit/helpdesk-admin/pkg/util/errorutil"
)

type ticketStub struct {
	rows []domain.Ticket
}

func (s *ticketStub) List(_ context.Context, q listing.Query) (listing.Page[domain.Ticket], error) {
	from := min(q.Offset(), len(s.rows))
	to := min(from+q.Limit(), len(s.rows))
	return listing.Page[domain.Ticket]{Items: s.rows[from:to], Total: len(s.rows)}, nil
}

func (s *ticketStub) DeleteMany(_ context.Context, ids []string) (int64, error) {
	before := len(s.rows)
	s.rows = slices.DeleteFunc(s.rows, func(t domain.Ticket) bool { return slices.Contains(ids, t.ID) })
	return int64(before - len(s.rows)), nil
}

// fakeAuth trusts the X-Role header; requests without it are anonymous.
func fakeAuth(c *fiber.Ctx) error {
	role := c.Get("X-Role")
	if role == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	auth.SetPrincipal(c, &auth.Principal{
		SessionID: "sess-" + role,
		Agent:     &domain.Agent{ID: "agent-1", Name: "Robin", Role: domain.AgentRole(role), Active: true},
	})
	return c.Next()
}

func newTestApp(t *testing.T) (*fiber.App, *ticketStub) {
	t.Helper()
	repo := &ticketStub{}
	for i := 1; i <= 25; i++ {
		repo.rows = append(repo.rows, domain.Ticket{ID: fmt.Sprintf("t-%02d", i), Title: fmt.Sprintf("Ticket %d", i)})
	}
	tables := service.NewTableService(config.TableConfig{
		SkeletonRows:    3,
		DefaultPageSize: 10,
		PageSizeOptions: []int{10, 20},
	}, service.TableDependencies{Tickets: repo})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, metrics)})
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		Auth:           handlers.NewAuthHandler(nil),
		Tables:         handlers.NewTablesHandler(tables),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: fakeAuth,
	})
	return app, repo
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("X-Role", role)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "%v", body)
	return d
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

const adminRole = "ADMIN"

func TestListTables(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/admin/tables", adminRole, "")
	require.Equal(t, nethttp.StatusOK, status)
	require.Equal(t, []any{map[string]any{"name": "tickets", "title": "Tickets"}}, body["data"])
}

func TestShowTableAppliesQuery(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/admin/tables/tickets?page=2", adminRole, "")
	require.Equal(t, nethttp.StatusOK, status)
	footer := data(t, body)["footer"].(map[string]any)
	require.Equal(t, "11–20 of 25", footer["label"])

	status, body = call(t, app, nethttp.MethodGet, "/admin/tables/tickets?page_size=30", adminRole, "")
	require.Equal(t, nethttp.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestSortEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodPost, "/admin/tables/tickets/sort", adminRole, `{"column":"title"}`)
	require.Equal(t, nethttp.StatusOK, status)
	sort := data(t, body)["sort"].(map[string]any)
	require.Equal(t, "title", sort["order_by"])
	require.Equal(t, "asc", sort["order"])

	status, body = call(t, app, nethttp.MethodPost, "/admin/tables/tickets/sort", adminRole, `{"column":"nope"}`)
	require.Equal(t, nethttp.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_FAILED", errorCode(body))
}

func TestSkeletonEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/admin/tables/tickets/skeleton", adminRole, "")
	require.Equal(t, nethttp.StatusOK, status)
	view := data(t, body)
	require.Equal(t, true, view["loading"])
	require.Len(t, view["rows"], 3)
}

func TestUnknownTable(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/admin/tables/invoices", adminRole, "")
	require.Equal(t, nethttp.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestUnmatchedRouteUsesErrorEnvelope(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/nope", "", "")
	require.Equal(t, nethttp.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestTablesRequireAuthentication(t *testing.T) {
	app, _ := newTestApp(t)
	status, body := call(t, app, nethttp.MethodGet, "/admin/tables", "", "")
	require.Equal(t, nethttp.StatusUnauthorized, status)
	require.Equal(t, "UNAUTHORIZED", errorCode(body))
}

func TestDeleteSelection(t *testing.T) {
	app, repo := newTestApp(t)

	status, body := call(t, app, nethttp.MethodPost, "/admin/tables/tickets/selection", adminRole, `{"key":"t-03"}`)
	require.Equal(t, nethttp.StatusOK, status)
	toolbar := data(t, body)["toolbar"].(map[string]any)
	require.Equal(t, "1 selected", toolbar["title"])
	require.Equal(t, true, toolbar["can_delete"])

	status, body = call(t, app, nethttp.MethodDelete, "/admin/tables/tickets/selection", adminRole, "")
	require.Equal(t, nethttp.StatusOK, status)
	require.Equal(t, float64(1), data(t, body)["deleted"])
	require.Len(t, repo.rows, 24)
}

func TestDeleteSelectionForbiddenForAgents(t *testing.T) {
	app, repo := newTestApp(t)

	status, _ := call(t, app, nethttp.MethodPost, "/admin/tables/tickets/selection", "AGENT", `{"all":true}`)
	require.Equal(t, nethttp.StatusOK, status)

	status, body := call(t, app, nethttp.MethodDelete, "/admin/tables/tickets/selection", "AGENT", "")
	require.Equal(t, nethttp.StatusForbidden, status)
	require.Equal(t, "FORBIDDEN", errorCode(body))
	require.Len(t, repo.rows, 25)
}

func TestResetStateEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := call(t, app, nethttp.MethodPost, "/admin/tables/tickets/columns", adminRole, `{"column":"status","visible":false}`)
	require.Equal(t, nethttp.StatusOK, status)

	status, _ = call(t, app, nethttp.MethodDelete, "/admin/tables/tickets/state", adminRole, "")
	require.Equal(t, nethttp.StatusNoContent, status)

	_, body := call(t, app, nethttp.MethodGet, "/admin/tables/tickets", adminRole, "")
	var keys []string
	for _, h := range data(t, body)["header"].([]any) {
		keys = append(keys, h.(map[string]any)["key"].(string))
	}
	require.Contains(t, keys, "status")
}

func TestMetricsRequireAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	status, _ := call(t, app, nethttp.MethodGet, "/admin/metrics", "SUPERVISOR", "")
	require.Equal(t, nethttp.StatusForbidden, status)

	status, body := call(t, app, nethttp.MethodGet, "/admin/metrics", adminRole, "")
	require.Equal(t, nethttp.StatusOK, status)
	require.Contains(t, data(t, body), "requests")
}
