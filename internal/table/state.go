package table

// State is the part of a table worth persisting between renders. Page and
// search belong to whoever fetches the rows.
type State struct {
	Sort          SortState `json:"sort"`
	SelectedKeys  []string  `json:"selected_keys,omitempty"`
	HiddenColumns []string  `json:"hidden_columns,omitempty"`
}

// WithState seeds props from a stored state. The selection is copied into
// RowSelection.SelectedKeys only as an initial value, so later toggles stay
// uncontrolled.
func WithState[T any](props Props[T], s State) Props[T] {
	props.Sort = s.Sort
	props.HiddenColumns = append([]string(nil), s.HiddenColumns...)
	if props.RowSelection != nil {
		sel := *props.RowSelection
		sel.SelectedKeys = append([]string{}, s.SelectedKeys...)
		props.RowSelection = &sel
	}
	return props
}
