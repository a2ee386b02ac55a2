package table

// SelectionType picks checkbox (multi) or radio (single) selection.
type SelectionType string

const (
	SelectionCheckbox SelectionType = "checkbox"
	SelectionRadio    SelectionType = "radio"
)

// SelectionPolicy decides what happens to selected keys that are not part of
// a newly supplied data source.
type SelectionPolicy int

const (
	// PolicyPrune drops keys that are absent from the new data source.
	PolicyPrune SelectionPolicy = iota
	// PolicyKeep keeps them, so a selection can span pages.
	PolicyKeep
)

// CheckboxProps lets callers make individual rows inert.
type CheckboxProps struct {
	Disabled bool   `json:"disabled"`
	Name     string `json:"name,omitempty"`
}

// RowSelection configures row selection.
type RowSelection[T any] struct {
	Type             SelectionType
	SelectedKeys     []string
	OnChange         func(keys []string, rows []T)
	GetCheckboxProps func(row T) CheckboxProps
	Policy           SelectionPolicy
}

// SelectionHeader is the state of the header checkbox.
type SelectionHeader struct {
	Type          SelectionType `json:"type"`
	Checked       bool          `json:"checked"`
	Indeterminate bool          `json:"indeterminate"`
	Disabled      bool          `json:"disabled"`
	Count         int           `json:"count"`
}

// Selection derives selection transitions for the current page of rows.
type Selection[T any] struct {
	cfg      RowSelection[T]
	rowKey   RowKey[T]
	rows     []T
	keys     []string
	selected *KeySet
}

// NewSelection builds a controller seeded with cfg.SelectedKeys. Keys of
// disabled rows are dropped and the policy is applied without notifying.
func NewSelection[T any](cfg RowSelection[T], rowKey RowKey[T], rows []T) *Selection[T] {
	if cfg.Type == "" {
		cfg.Type = SelectionCheckbox
	}
	s := &Selection[T]{
		cfg:      cfg,
		rowKey:   rowKey,
		selected: NewKeySet(cfg.SelectedKeys...),
	}
	s.reset(rows)
	s.trimRadio()
	return s
}

// trimRadio keeps only the most recently added key in radio mode.
func (s *Selection[T]) trimRadio() {
	if s.cfg.Type == SelectionRadio && s.selected.Len() > 1 {
		keys := s.selected.Keys()
		s.selected.Replace(keys[len(keys)-1])
	}
}

// Type returns the selection type.
func (s *Selection[T]) Type() SelectionType {
	return s.cfg.Type
}

// SetDataSource reconciles the selection with a new page of rows. OnChange is
// called when the reconciliation removed keys.
func (s *Selection[T]) SetDataSource(rows []T) {
	before := s.selected.Len()
	s.reset(rows)
	if s.selected.Len() != before {
		s.notify()
	}
}

func (s *Selection[T]) reset(rows []T) {
	s.rows = rows
	s.keys = s.rowKey.keys(rows)

	present := make(map[string]struct{}, len(rows))
	for i, key := range s.keys {
		if s.disabledAt(i) {
			s.selected.Remove(key)
			continue
		}
		present[key] = struct{}{}
	}
	if s.cfg.Policy == PolicyKeep {
		return
	}
	for _, key := range s.selected.Keys() {
		if _, ok := present[key]; !ok {
			s.selected.Remove(key)
		}
	}
}

// SelectAll selects every enabled row of the current data source, or clears
// the whole selection.
func (s *Selection[T]) SelectAll(checked bool) {
	if !checked {
		s.selected.Clear()
		s.notify()
		return
	}
	if s.cfg.Type == SelectionRadio {
		return
	}
	// Under PolicyPrune the selection is already a subset of this page, so
	// adding every enabled key yields exactly the page. Under PolicyKeep keys
	// from other pages survive.
	for i, key := range s.keys {
		if !s.disabledAt(i) {
			s.selected.Add(key)
		}
	}
	s.notify()
}

// ToggleRow flips the selection of the row at index. Disabled rows are inert.
func (s *Selection[T]) ToggleRow(index int) bool {
	if index < 0 || index >= len(s.rows) || s.disabledAt(index) {
		return false
	}
	key := s.keys[index]
	if s.cfg.Type == SelectionRadio {
		if s.selected.Has(key) {
			s.selected.Clear()
		} else {
			s.selected.Replace(key)
		}
		s.notify()
		return true
	}
	if !s.selected.Remove(key) {
		s.selected.Add(key)
	}
	s.notify()
	return true
}

// IndexOf returns the position of key in the current data source, or -1.
func (s *Selection[T]) IndexOf(key string) int {
	for i, k := range s.keys {
		if k == key {
			return i
		}
	}
	return -1
}

// Keys returns the selected keys in selection order.
func (s *Selection[T]) Keys() []string {
	return s.selected.Keys()
}

// Rows materializes the selected rows of the current data source, in data
// source order.
func (s *Selection[T]) Rows() []T {
	rows := make([]T, 0, s.selected.Len())
	for i, key := range s.keys {
		if s.selected.Has(key) {
			rows = append(rows, s.rows[i])
		}
	}
	return rows
}

// IsSelected reports whether key is selected.
func (s *Selection[T]) IsSelected(key string) bool {
	return s.selected.Has(key)
}

// IsDisabled reports whether the row at index is inert.
func (s *Selection[T]) IsDisabled(index int) bool {
	if index < 0 || index >= len(s.rows) {
		return false
	}
	return s.disabledAt(index)
}

// Header computes the header checkbox state over the current page.
func (s *Selection[T]) Header() SelectionHeader {
	selectable, checked := 0, 0
	for i, key := range s.keys {
		if s.disabledAt(i) {
			continue
		}
		selectable++
		if s.selected.Has(key) {
			checked++
		}
	}
	header := SelectionHeader{
		Type:     s.cfg.Type,
		Disabled: selectable == 0 || s.cfg.Type == SelectionRadio,
		Count:    s.selected.Len(),
	}
	// Radio tables have no header checkbox to fill in.
	if s.cfg.Type != SelectionRadio {
		header.Checked = selectable > 0 && checked == selectable
		header.Indeterminate = checked > 0 && checked < selectable
	}
	return header
}

func (s *Selection[T]) disabledAt(index int) bool {
	if s.cfg.GetCheckboxProps == nil {
		return false
	}
	return s.cfg.GetCheckboxProps(s.rows[index]).Disabled
}

func (s *Selection[T]) notify() {
	if s.cfg.OnChange == nil {
		return
	}
	s.cfg.OnChange(s.Keys(), s.Rows())
}
