package table

import (
	"fmt"
	"strings"
)

// Order is a sort direction. OrderNone means unsorted.
type Order string

const (
	OrderNone Order = ""
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder accepts asc/ascend/ascending, desc/descend/descending and an
// empty string or "none" for unsorted.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "null":
		return OrderNone, nil
	case "asc", "ascend", "ascending":
		return OrderAsc, nil
	case "desc", "descend", "descending":
		return OrderDesc, nil
	default:
		return OrderNone, fmt.Errorf("%w: %q", ErrInvalidOrder, s)
	}
}

func (o Order) next() Order {
	switch o {
	case OrderNone:
		return OrderAsc
	case OrderAsc:
		return OrderDesc
	default:
		return OrderNone
	}
}

// SortState is the single active sort. Order is OrderNone exactly when
// OrderBy is empty.
type SortState struct {
	OrderBy string `json:"order_by"`
	Order   Order  `json:"order"`
}

// Normalize enforces the OrderBy/Order invariant.
func (s SortState) Normalize() SortState {
	if s.OrderBy == "" || s.Order == OrderNone {
		return SortState{}
	}
	if s.Order != OrderAsc && s.Order != OrderDesc {
		return SortState{}
	}
	return s
}

// OrderFor returns the order shown on column key.
func (s SortState) OrderFor(key string) Order {
	if s.OrderBy != key {
		return OrderNone
	}
	return s.Order
}

// NextSort is the sort state machine: a column cycles asc, desc, unsorted;
// clicking a different column restarts at asc.
func NextSort(current SortState, key string) SortState {
	current = current.Normalize()
	if current.OrderBy != key {
		return SortState{OrderBy: key, Order: OrderAsc}
	}
	next := current.Order.next()
	if next == OrderNone {
		return SortState{}
	}
	return SortState{OrderBy: key, Order: next}
}

// Sorter tracks the sort state and reports transitions.
type Sorter struct {
	state    SortState
	sortable func(key string) bool
	onChange func(key string, order Order)
	loading  bool
}

// NewSorter builds a controller. sortable decides which keys accept sorting.
func NewSorter(initial SortState, sortable func(key string) bool, onChange func(key string, order Order)) *Sorter {
	initial = initial.Normalize()
	if initial.OrderBy != "" && !sortable(initial.OrderBy) {
		initial = SortState{}
	}
	return &Sorter{state: initial, sortable: sortable, onChange: onChange}
}

// SetLoading blocks requests while data is loading.
func (s *Sorter) SetLoading(loading bool) {
	s.loading = loading
}

// State returns the current sort.
func (s *Sorter) State() SortState {
	return s.state
}

// RequestSort advances the state machine for key. It reports false and does
// nothing while loading or when key is not sortable.
func (s *Sorter) RequestSort(key string) bool {
	if s.loading || !s.sortable(key) {
		return false
	}
	s.state = NextSort(s.state, key)
	if s.onChange != nil {
		s.onChange(key, s.state.OrderFor(key))
	}
	return true
}
