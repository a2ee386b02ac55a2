// Package table implements a generic, I/O-free data table: column registry,
// selection, sorting, column visibility, pagination footer, skeleton rows and
// the composition root that turns them into a render-agnostic View.
//
// Callers own data fetching, deletion and navigation. The table only derives
// state transitions from UI events and reports them through callbacks.
package table

import (
	"fmt"
)

// Align is the horizontal alignment of a column.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Fixed pins a column to one side of a horizontally scrolling table.
type Fixed string

const (
	FixedNone  Fixed = ""
	FixedLeft  Fixed = "left"
	FixedRight Fixed = "right"
)

// CellKind selects how a column renders its cells.
type CellKind int

const (
	CellText CellKind = iota
	CellBadge
	CellDate
	CellActions
	CellCustom
)

// String returns the wire name of the kind.
func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellBadge:
		return "badge"
	case CellDate:
		return "date"
	case CellActions:
		return "actions"
	case CellCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Tone is the color family of a badge cell.
type Tone string

const (
	ToneDefault Tone = "default"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Action is a button rendered in an actions cell or in the toolbar.
type Action struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

const (
	// ActionsColumnKey marks a column as the row actions column even when its
	// kind is not CellActions.
	ActionsColumnKey = "actions"
	// Placeholder is rendered for values that are nil or cannot be resolved.
	Placeholder = "-"

	defaultActionsWidth = 120
	defaultDateLayout   = "2006-01-02 15:04"
)

// Column describes one table column.
type Column[T any] struct {
	Key   string
	Title string
	// DataIndex is a dotted field path into the row. Struct fields match by Go
	// name or json tag; maps with string keys are indexed by key.
	DataIndex string
	// Accessor takes precedence over DataIndex.
	Accessor func(row T) any
	Width    int
	Align    Align
	// Sortable defaults to true, except for action columns.
	Sortable *bool
	Kind     CellKind

	Tones      map[string]Tone
	DateLayout string
	Actions    func(row T, index int) []Action
	Render     func(value any, row T, index int) string

	Ellipsis bool
	Hidden   bool
	Fixed    Fixed
}

// Bool returns a pointer to v, for Column.Sortable.
func Bool(v bool) *bool {
	return &v
}

// IsSortable reports whether the column header gets a sort affordance.
func (c Column[T]) IsSortable() bool {
	if c.Sortable != nil {
		return *c.Sortable
	}
	return !c.isActions()
}

func (c Column[T]) isActions() bool {
	return c.Kind == CellActions || c.Key == ActionsColumnKey
}

func (c Column[T]) align() Align {
	if c.Align != "" {
		return c.Align
	}
	if c.isActions() {
		return AlignCenter
	}
	return AlignLeft
}

func (c Column[T]) width() int {
	if c.Width > 0 {
		return c.Width
	}
	if c.isActions() {
		return defaultActionsWidth
	}
	return 0
}

func (c Column[T]) value(row T) (any, bool) {
	if c.Accessor != nil {
		v := c.Accessor(row)
		if isNil(v) {
			return nil, false
		}
		return v, true
	}
	if c.DataIndex == "" {
		return nil, false
	}
	return lookupPath(row, c.DataIndex)
}

// Columns is the validated, ordered column set of a table.
type Columns[T any] struct {
	cols  []Column[T]
	index map[string]int
}

// NewColumns validates the descriptors and builds a registry.
func NewColumns[T any](cols ...Column[T]) (Columns[T], error) {
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		if col.Key == "" {
			return Columns[T]{}, fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if _, exists := index[col.Key]; exists {
			return Columns[T]{}, fmt.Errorf("column %q: %w", col.Key, ErrDuplicateColumnKey)
		}
		if col.Kind == CellCustom && col.Render == nil {
			return Columns[T]{}, fmt.Errorf("column %q: %w", col.Key, ErrMissingRender)
		}
		index[col.Key] = i
	}
	copied := make([]Column[T], len(cols))
	copy(copied, cols)
	return Columns[T]{cols: copied, index: index}, nil
}

// MustColumns is NewColumns for static column sets.
func MustColumns[T any](cols ...Column[T]) Columns[T] {
	c, err := NewColumns(cols...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of columns.
func (c Columns[T]) Len() int {
	return len(c.cols)
}

// All returns a copy of the descriptors in declaration order.
func (c Columns[T]) All() []Column[T] {
	out := make([]Column[T], len(c.cols))
	copy(out, c.cols)
	return out
}

// Keys returns every column key in declaration order.
func (c Columns[T]) Keys() []string {
	keys := make([]string, 0, len(c.cols))
	for _, col := range c.cols {
		keys = append(keys, col.Key)
	}
	return keys
}

// Lookup finds a column by key.
func (c Columns[T]) Lookup(key string) (Column[T], bool) {
	i, ok := c.index[key]
	if !ok {
		return Column[T]{}, false
	}
	return c.cols[i], true
}

// DefaultVisible returns the keys of all non-hidden columns.
func (c Columns[T]) DefaultVisible() []string {
	keys := make([]string, 0, len(c.cols))
	for _, col := range c.cols {
		if !col.Hidden {
			keys = append(keys, col.Key)
		}
	}
	return keys
}
