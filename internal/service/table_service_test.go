package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-admin/internal/config"
	"github.com/spec-kit/helpdesk-admin/internal/domain"
	"github.com/spec-kit/helpdesk-admin/internal/events"
	"github.com/spec-kit/helpdesk-admin/internal/observability"
	"github.com/spec-kit/helpdesk-admin/internal/persistence"
	"github.com/spec-kit/helpdesk-admin/internal/table"
	apperrors "github.com/spec-kit/helpdesk-admin/pkg/util/errorutil"
)

var (
	admin = Session{ID: "sess-1", AgentID: "a-01", Role: domain.AgentRoleAdmin}
	agent = Session{ID: "sess-2", AgentID: "a-02", Role: domain.AgentRoleAgent}
)

func tableConfig() config.TableConfig {
	return config.TableConfig{
		SkeletonRows:    4,
		DefaultPageSize: 10,
		PageSizeOptions: []int{10, 20, 50},
		StateTTLMinutes: 120,
	}
}

type harness struct {
	svc     *TableService
	tickets *memoryRepo[domain.Ticket]
	agents  *fakeAgents
	store   *persistence.MemoryTableStateStore
	metrics *observability.Metrics
	deleted []events.Event
}

func newHarness(t *testing.T, cfg config.TableConfig) *harness {
	t.Helper()
	h := &harness{
		tickets: tickets(25),
		agents:  newFakeAgents(agents(12)...),
		store:   persistence.NewMemoryTableStateStore(),
		metrics: observability.NewMetrics(),
	}
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventRowsDeleted, func(_ context.Context, e events.Event) error {
		h.deleted = append(h.deleted, e)
		return nil
	})
	h.svc = NewTableService(cfg, TableDependencies{
		Tickets:    h.tickets,
		Agents:     h.agents,
		Store:      h.store,
		Dispatcher: dispatcher,
		Metrics:    h.metrics,
	})
	return h
}

func (h *harness) state(t *testing.T, session Session, resource string) persistence.TableState {
	t.Helper()
	state, ok, err := h.store.Load(context.Background(), session.ID, resource)
	require.NoError(t, err)
	require.True(t, ok)
	return state
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "not a domain error: %v", err)
	return de.Code
}

func headerKeys(view table.View) []string {
	keys := make([]string, len(view.Header))
	for i, h := range view.Header {
		keys[i] = h.Key
	}
	return keys
}

func TestTableServiceResources(t *testing.T) {
	h := newHarness(t, tableConfig())
	require.Equal(t, []ResourceInfo{
		{Name: "tickets", Title: "Tickets"},
		{Name: "agents", Title: "Agents"},
	}, h.svc.Resources())

	_, err := h.svc.Render(context.Background(), admin, "invoices")
	require.Equal(t, "NOT_FOUND", errCode(t, err))
}

func TestRenderDefaults(t *testing.T) {
	h := newHarness(t, tableConfig())
	view, err := h.svc.Render(context.Background(), admin, "tickets")
	require.NoError(t, err)

	require.Len(t, view.Rows, 10)
	require.Equal(t, "t-01", view.Rows[0].Key)
	require.Equal(t, table.SortState{OrderBy: "updated", Order: table.OrderDesc}, view.Sort)
	require.Equal(t, "1–10 of 25", view.Footer.Label)
	require.Equal(t, []int{10, 20, 50}, view.Footer.PageSizeOptions)
	require.Equal(t, "Tickets", view.Toolbar.Title)
	require.False(t, view.Toolbar.CanDelete)

	q := h.tickets.lastQuery()
	require.Equal(t, "updated", q.SortField)
	require.Equal(t, table.OrderDesc, q.SortOrder)

	state := h.state(t, admin, "tickets")
	require.Equal(t, 1, state.Query.Page)
	require.False(t, state.UpdatedAt.IsZero())
}

func TestRenderSortCyclePersists(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()
	sortTitle := Interaction{Kind: InteractionSort, Column: "title"}

	for _, want := range []table.SortState{
		{OrderBy: "title", Order: table.OrderAsc},
		{OrderBy: "title", Order: table.OrderDesc},
		{},
		{OrderBy: "title", Order: table.OrderAsc},
	} {
		view, err := h.svc.Render(ctx, admin, "tickets", sortTitle)
		require.NoError(t, err)
		require.Equal(t, want, view.Sort)
		require.Equal(t, want, h.state(t, admin, "tickets").Query.Sort())
		require.Equal(t, want.OrderBy, h.tickets.lastQuery().SortField)
	}
	require.Equal(t, int64(4), h.metrics.Snapshot().TableInteractions["tickets|sort"])
}

func TestRenderSortRejectsBadColumns(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionSort, Column: "nope"})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionSort, Column: "tags"})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: "drag"})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestRenderPaging(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	view, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 2})
	require.NoError(t, err)
	require.Equal(t, "11–20 of 25", view.Footer.Label)

	view, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 9})
	require.NoError(t, err)
	require.Equal(t, "21–25 of 25", view.Footer.Label)
	require.Equal(t, 3, h.state(t, admin, "tickets").Query.Page)

	view, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 3, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, "1–20 of 25", view.Footer.Label)

	_, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, PageSize: 15})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	_, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: -1})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	require.Equal(t, 20, h.state(t, admin, "tickets").Query.PageSize)
}

func TestRenderSearchResetsPage(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 3})
	require.NoError(t, err)
	_, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionSearch, Search: "  printer "})
	require.NoError(t, err)

	q := h.state(t, admin, "tickets").Query
	require.Equal(t, 1, q.Page)
	require.Equal(t, "printer", q.Search)
	require.Equal(t, "printer", h.tickets.lastQuery().Search)
}

func TestRenderToggleColumnPersists(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	view, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionToggleColumn, Column: "priority", Visible: false})
	require.NoError(t, err)
	require.NotContains(t, headerKeys(view), "priority")
	require.Equal(t, []string{"priority"}, h.state(t, admin, "tickets").Table.HiddenColumns)

	view, err = h.svc.Render(ctx, admin, "tickets")
	require.NoError(t, err)
	require.NotContains(t, headerKeys(view), "priority")
	require.Contains(t, headerKeys(view), "status")
}

func TestRenderRejectsTogglingDeclaredHiddenColumn(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()
	h.svc.register(&tableResource[domain.Ticket]{
		name:  "archived_tickets",
		title: "Archived tickets",
		columns: table.MustColumns(
			table.Column[domain.Ticket]{Key: "title", Title: "Title", DataIndex: "Title"},
			table.Column[domain.Ticket]{Key: "external_key", Title: "Key", DataIndex: "ExternalKey", Hidden: true},
		),
		rowKey: func(x domain.Ticket) string { return x.ID },
		repo:   h.tickets,
	})

	_, err := h.svc.Render(ctx, admin, "archived_tickets",
		Interaction{Kind: InteractionToggleColumn, Column: "external_key", Visible: true})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	view, err := h.svc.Render(ctx, admin, "archived_tickets",
		Interaction{Kind: InteractionToggleColumn, Column: "title", Visible: false})
	require.NoError(t, err)
	require.Empty(t, headerKeys(view))
}

func TestRenderSelectionIsPrunedAcrossPages(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	view, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionToggleRow, Key: "t-02"})
	require.NoError(t, err)
	require.Equal(t, "1 selected", view.Toolbar.Title)
	require.True(t, view.Toolbar.CanDelete)
	require.True(t, view.Rows[1].Selected)

	view, err = h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 2})
	require.NoError(t, err)
	require.Zero(t, view.Toolbar.SelectedCount)
	require.Empty(t, h.state(t, admin, "tickets").Table.SelectedKeys)
}

func TestRenderSelectionKeptAcrossPages(t *testing.T) {
	cfg := tableConfig()
	cfg.KeepSelectionAcrossPages = true
	h := newHarness(t, cfg)
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionToggleRow, Key: "t-02"})
	require.NoError(t, err)
	view, err := h.svc.Render(ctx, admin, "tickets",
		Interaction{Kind: InteractionPage, Page: 2},
		Interaction{Kind: InteractionToggleRow, Key: "t-15"},
	)
	require.NoError(t, err)
	require.Equal(t, 2, view.Toolbar.SelectedCount)
	require.Equal(t, []string{"t-02", "t-15"}, h.state(t, admin, "tickets").Table.SelectedKeys)
}

func TestRenderProtectedRows(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "agents", Interaction{Kind: InteractionToggleRow, Key: "a-01"})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	view, err := h.svc.Render(ctx, admin, "agents", Interaction{Kind: InteractionSelectAll, Checked: true})
	require.NoError(t, err)
	require.Equal(t, 9, view.Toolbar.SelectedCount)
	require.True(t, view.Rows[0].Disabled)
	require.False(t, view.Rows[0].Selected)
	require.True(t, view.Selection.Checked)
}

func TestSkeletonDoesNotFetch(t *testing.T) {
	h := newHarness(t, tableConfig())
	view, err := h.svc.Skeleton(context.Background(), admin, "tickets")
	require.NoError(t, err)

	require.True(t, view.Loading)
	require.Len(t, view.Rows, 4)
	require.True(t, view.Rows[0].Skeleton)
	require.Nil(t, view.Footer)
	require.Zero(t, h.tickets.queryCount())
}

func TestDeleteSelected(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "agents", Interaction{Kind: InteractionPage, Page: 2})
	require.NoError(t, err)
	view, err := h.svc.Render(ctx, admin, "agents", Interaction{Kind: InteractionSelectAll, Checked: true})
	require.NoError(t, err)
	require.Equal(t, 2, view.Toolbar.SelectedCount)

	n, err := h.svc.DeleteSelected(ctx, admin, "agents")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	require.Len(t, h.agents.rows, 10)

	state := h.state(t, admin, "agents")
	require.Equal(t, 1, state.Query.Page)
	require.Empty(t, state.Table.SelectedKeys)

	require.Len(t, h.deleted, 1)
	event := h.deleted[0]
	require.Equal(t, "agents", event.Resource)
	require.Equal(t, admin.ID, event.Actor.Session)
	require.Equal(t, events.RowsDeletedPayload{RequestedKeys: []string{"a-11", "a-12"}, Deleted: 2}, event.Payload)
}

func TestDeleteSelectedRequiresSelectionAndRole(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.DeleteSelected(ctx, admin, "tickets")
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	view, err := h.svc.Render(ctx, agent, "tickets", Interaction{Kind: InteractionToggleRow, Key: "t-01"})
	require.NoError(t, err)
	require.False(t, view.Toolbar.CanDelete)

	_, err = h.svc.DeleteSelected(ctx, agent, "tickets")
	require.Equal(t, "FORBIDDEN", errCode(t, err))
	require.Empty(t, h.tickets.deleted)
	require.Empty(t, h.deleted)
}

func TestResetState(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionSort, Column: "title"})
	require.NoError(t, err)
	require.NoError(t, h.svc.ResetState(ctx, admin, "tickets"))

	view, err := h.svc.Render(ctx, admin, "tickets")
	require.NoError(t, err)
	require.Equal(t, "updated", view.Sort.OrderBy)
}

func TestSessionsDoNotShareState(t *testing.T) {
	h := newHarness(t, tableConfig())
	ctx := context.Background()

	_, err := h.svc.Render(ctx, admin, "tickets", Interaction{Kind: InteractionPage, Page: 2})
	require.NoError(t, err)
	view, err := h.svc.Render(ctx, agent, "tickets")
	require.NoError(t, err)
	require.Equal(t, 1, view.Footer.Current)
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string, string) (persistence.TableState, bool, error) {
	return persistence.TableState{}, false, errors.New("connection refused")
}

func (brokenStore) Save(context.Context, string, string, persistence.TableState) error {
	return errors.New("connection refused")
}

func (brokenStore) Delete(context.Context, string, string) error {
	return errors.New("connection refused")
}

func TestRenderSurvivesStoreFailure(t *testing.T) {
	svc := NewTableService(tableConfig(), TableDependencies{Tickets: tickets(3), Store: brokenStore{}})
	view, err := svc.Render(context.Background(), admin, "tickets", Interaction{Kind: InteractionSort, Column: "title"})
	require.NoError(t, err)
	require.Len(t, view.Rows, 3)
	require.Equal(t, "title", view.Sort.OrderBy)
}
