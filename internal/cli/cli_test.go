package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-admin/internal/service"
	"github.com/spec-kit/helpdesk-admin/internal/table"
)

type row struct {
	ID    string
	Name  string
	Seats int
}

func sampleTable(loading bool) *table.Table[row] {
	cols := table.MustColumns(
		table.Column[row]{Key: "name", Title: "Name", DataIndex: "Name"},
		table.Column[row]{Key: "seats", Title: "Seats", DataIndex: "Seats", Align: table.AlignRight},
		table.Column[row]{Key: table.ActionsColumnKey, Kind: table.CellActions,
			Actions: func(row, int) []table.Action { return []table.Action{{Key: "edit", Label: "Edit"}} }},
	)
	return table.New(table.Props[row]{
		Columns:      cols,
		DataSource:   []row{{ID: "1", Name: "Acme", Seats: 12}, {ID: "2", Name: "Globex", Seats: 3}},
		Loading:      loading,
		SkeletonRows: 2,
		Sort:         table.SortState{OrderBy: "name", Order: table.OrderAsc},
		Toolbar:      &table.Toolbar{Title: "Customers"},
		Pagination:   &table.Pagination{Current: 1, PageSize: 10, Total: 2},
	})
}

func TestRenderView(t *testing.T) {
	var buf bytes.Buffer
	RenderView(&buf, sampleTable(false).View())
	out := buf.String()

	require.Contains(t, out, "Customers")
	require.Contains(t, out, "Name ▲")
	require.Contains(t, out, "Seats")
	require.Contains(t, out, "Globex")
	require.Contains(t, out, "1–2 of 2")
	require.NotContains(t, out, "Edit")
	require.Less(t, strings.Index(out, "Acme"), strings.Index(out, "Globex"))
}

func TestRenderViewSkeleton(t *testing.T) {
	var buf bytes.Buffer
	RenderView(&buf, sampleTable(true).View())
	out := buf.String()

	require.NotContains(t, out, "Acme")
	require.NotContains(t, out, "of 2")
	require.Equal(t, 4, strings.Count(out, "░░░░"))
}

func TestListRequest(t *testing.T) {
	f := listFlags{search: "printer", page: 2, sort: "updated", order: "desc", hide: []string{"tags"}}
	state, interactions, err := f.listRequest(20)
	require.NoError(t, err)
	require.Equal(t, "updated", state.Query.SortField)
	require.Equal(t, table.OrderDesc, state.Query.SortOrder)
	require.Equal(t, 20, state.Query.PageSize)
	require.Equal(t, []string{"tags"}, state.Table.HiddenColumns)
	require.Equal(t, []service.Interaction{
		{Kind: service.InteractionSearch, Search: "printer"},
		{Kind: service.InteractionPage, Page: 2},
	}, interactions)

	_, _, err = listFlags{order: "sideways"}.listRequest(10)
	require.ErrorIs(t, err, table.ErrInvalidOrder)
}

func TestTablesCommandNeedsNoDatabase(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tables", "--log-level", "error"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[0], "tickets"))
	require.Contains(t, out.String(), "email_settings")
}
