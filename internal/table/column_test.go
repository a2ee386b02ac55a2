package table

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string
	Manager   *account
	Labels    map[string]string
	Tags      []string
	CreatedAt time.Time
	Locked    bool
}

func TestNewColumnsValidation(t *testing.T) {
	_, err := NewColumns(
		Column[account]{Key: "name"},
		Column[account]{Key: "name"},
	)
	require.True(t, errors.Is(err, ErrDuplicateColumnKey))

	_, err = NewColumns(Column[account]{Key: ""})
	require.True(t, errors.Is(err, ErrEmptyColumnKey))

	_, err = NewColumns(Column[account]{Key: "x", Kind: CellCustom})
	require.True(t, errors.Is(err, ErrMissingRender))

	cols, err := NewColumns(
		Column[account]{Key: "name", Title: "Name"},
		Column[account]{Key: "secret", Hidden: true},
		Column[account]{Key: "role"},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "secret", "role"}, cols.Keys())
	require.Equal(t, []string{"name", "role"}, cols.DefaultVisible())

	col, ok := cols.Lookup("role")
	require.True(t, ok)
	require.Equal(t, "role", col.Key)
	_, ok = cols.Lookup("missing")
	require.False(t, ok)
}

func TestColumnSortableDefaults(t *testing.T) {
	require.True(t, Column[account]{Key: "name"}.IsSortable())
	require.False(t, Column[account]{Key: "name", Sortable: Bool(false)}.IsSortable())
	require.False(t, Column[account]{Key: "ops", Kind: CellActions}.IsSortable())
	require.False(t, Column[account]{Key: ActionsColumnKey}.IsSortable())
	require.True(t, Column[account]{Key: ActionsColumnKey, Sortable: Bool(true)}.IsSortable())
}

func TestCellResolution(t *testing.T) {
	created := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
	boss := &account{Name: "Grace"}
	row := account{
		ID:        "a1",
		Name:      "Ada",
		Manager:   boss,
		Labels:    map[string]string{"team": "core"},
		Tags:      []string{"vip", "beta"},
		CreatedAt: created,
		Locked:    true,
	}

	cases := []struct {
		name string
		col  Column[account]
		want string
	}{
		{"go field name", Column[account]{Key: "n", DataIndex: "Name"}, "Ada"},
		{"json tag", Column[account]{Key: "n", DataIndex: "name"}, "Ada"},
		{"nested pointer", Column[account]{Key: "m", DataIndex: "Manager.Name"}, "Grace"},
		{"map key", Column[account]{Key: "t", DataIndex: "Labels.team"}, "core"},
		{"missing map key", Column[account]{Key: "t", DataIndex: "Labels.site"}, Placeholder},
		{"missing field", Column[account]{Key: "x", DataIndex: "Nope"}, Placeholder},
		{"no data index", Column[account]{Key: "x"}, Placeholder},
		{"string slice", Column[account]{Key: "tags", DataIndex: "Tags"}, "vip, beta"},
		{"bool", Column[account]{Key: "locked", DataIndex: "Locked"}, "Yes"},
		{"date", Column[account]{Key: "c", DataIndex: "CreatedAt", Kind: CellDate, DateLayout: "2006-01-02"}, "2025-03-04"},
		{"accessor", Column[account]{Key: "a", Accessor: func(a account) any { return len(a.Tags) }}, "2"},
		{"accessor nil", Column[account]{Key: "a", Accessor: func(a account) any { return a.Labels["none"] }}, ""},
		{"render", Column[account]{Key: "r", DataIndex: "Name", Render: func(v any, a account, i int) string {
			return v.(string) + "!"
		}}, "Ada!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.col.cell(row, 0).Text)
		})
	}

	orphan := account{ID: "a2"}
	require.Equal(t, Placeholder, Column[account]{Key: "m", DataIndex: "Manager.Name"}.cell(orphan, 0).Text)
	require.Equal(t, Placeholder, Column[account]{Key: "c", DataIndex: "CreatedAt", Kind: CellDate}.cell(orphan, 0).Text)
}

func TestBadgeTone(t *testing.T) {
	col := Column[account]{
		Key:       "role",
		DataIndex: "Role",
		Kind:      CellBadge,
		Tones:     map[string]Tone{"ADMIN": ToneDanger},
	}
	require.Equal(t, ToneDanger, col.cell(account{Role: "ADMIN"}, 0).Tone)
	require.Equal(t, ToneDefault, col.cell(account{Role: "AGENT"}, 0).Tone)
	require.Equal(t, "badge", col.cell(account{Role: "AGENT"}, 0).Kind)
}

func TestActionsColumnDefaults(t *testing.T) {
	col := Column[account]{
		Key:  ActionsColumnKey,
		Kind: CellActions,
		Actions: func(a account, i int) []Action {
			return []Action{{Key: "edit", Label: "Edit"}, {Key: "delete", Label: "Delete", Disabled: a.Locked}}
		},
	}
	cell := col.cell(account{Locked: true}, 3)
	require.Equal(t, AlignCenter, cell.Align)
	require.Equal(t, defaultActionsWidth, cell.Width)
	require.True(t, cell.NoWrap)
	require.Len(t, cell.Actions, 2)
	require.True(t, cell.Actions[1].Disabled)

	explicit := Column[account]{Key: ActionsColumnKey, Width: 80, Align: AlignRight}
	cell = explicit.cell(account{}, 0)
	require.Equal(t, 80, cell.Width)
	require.Equal(t, AlignRight, cell.Align)
}

func TestFieldKey(t *testing.T) {
	key := FieldKey[account]("ID")
	require.Equal(t, "a1", key(account{ID: "a1"}))
	require.Equal(t, "", FieldKey[account]("Missing")(account{ID: "a1"}))

	type numbered struct{ Num int }
	require.Equal(t, "42", FieldKey[numbered]("Num")(numbered{Num: 42}))
}
