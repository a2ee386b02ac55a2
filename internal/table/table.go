package table

// RowHandlers receives pointer events for one row.
type RowHandlers struct {
	OnClick       func()
	OnDoubleClick func()
	OnContextMenu func()
}

// Props is the caller-supplied configuration of a table.
type Props[T any] struct {
	Columns    Columns[T]
	DataSource []T
	// RowKey defaults to the ID field.
	RowKey       RowKey[T]
	Loading      bool
	Pagination   *Pagination
	RowSelection *RowSelection[T]
	Toolbar      *Toolbar
	Size         Size
	Bordered     bool
	OnRow        func(record T, index int) RowHandlers
	OnSortChange func(key string, order Order)

	// Sort and HiddenColumns seed the controllers when the table is built.
	Sort          SortState
	HiddenColumns []string
	// SkeletonRows defaults to DefaultSkeletonRows.
	SkeletonRows int
}

// Table composes the column registry with the selection, sort and
// visibility controllers.
type Table[T any] struct {
	props      Props[T]
	sorter     *Sorter
	visibility *Visibility
	selection  *Selection[T]
}

// New builds a table from props.
func New[T any](props Props[T]) *Table[T] {
	if props.RowKey == nil {
		props.RowKey = FieldKey[T]("ID")
	}
	t := &Table[T]{props: props}
	t.sorter = NewSorter(props.Sort, t.sortable, props.OnSortChange)
	t.sorter.SetLoading(props.Loading)

	t.visibility = NewVisibility(props.Columns.DefaultVisible())
	if len(props.HiddenColumns) > 0 {
		t.visibility.Restore(props.HiddenColumns)
	}
	t.visibility.SetLoading(props.Loading)

	if props.RowSelection != nil {
		t.selection = NewSelection(*props.RowSelection, props.RowKey, props.DataSource)
	}
	return t
}

// Update swaps in new props, keeping sort, visibility and selection state.
func (t *Table[T]) Update(props Props[T]) {
	if props.RowKey == nil {
		props.RowKey = t.props.RowKey
	}
	t.props = props
	t.sorter.onChange = props.OnSortChange
	t.sorter.SetLoading(props.Loading)
	if orderBy := t.sorter.state.OrderBy; orderBy != "" && !t.sortable(orderBy) {
		t.sorter.state = SortState{}
	}
	t.visibility.Reconcile(props.Columns.DefaultVisible())
	t.visibility.SetLoading(props.Loading)

	switch {
	case props.RowSelection == nil:
		t.selection = nil
	case t.selection == nil:
		t.selection = NewSelection(*props.RowSelection, props.RowKey, props.DataSource)
	default:
		// Controlled keys win over the internal selection.
		cfg := *props.RowSelection
		if cfg.Type == "" {
			cfg.Type = SelectionCheckbox
		}
		selected := t.selection.selected
		if cfg.SelectedKeys != nil {
			selected = NewKeySet(cfg.SelectedKeys...)
		}
		t.selection = &Selection[T]{
			cfg:      cfg,
			rowKey:   props.RowKey,
			selected: selected,
		}
		t.selection.trimRadio()
		t.selection.SetDataSource(props.DataSource)
	}
}

func (t *Table[T]) sortable(key string) bool {
	col, ok := t.props.Columns.Lookup(key)
	return ok && col.IsSortable()
}

// RequestSort cycles the sort of column key.
func (t *Table[T]) RequestSort(key string) bool {
	return t.sorter.RequestSort(key)
}

// ToggleColumn shows or hides column key.
func (t *Table[T]) ToggleColumn(key string, visible bool) bool {
	return t.visibility.Toggle(key, visible)
}

// SelectAll checks or unchecks the header checkbox.
func (t *Table[T]) SelectAll(checked bool) bool {
	if t.selection == nil || t.props.Loading {
		return false
	}
	t.selection.SelectAll(checked)
	return true
}

// ToggleRow flips the selection of the row at index.
func (t *Table[T]) ToggleRow(index int) bool {
	if t.selection == nil || t.props.Loading {
		return false
	}
	return t.selection.ToggleRow(index)
}

// ToggleKey flips the selection of the row whose key is key.
func (t *Table[T]) ToggleKey(key string) bool {
	if t.selection == nil {
		return false
	}
	return t.ToggleRow(t.selection.IndexOf(key))
}

// ClickRow toggles the row selection when allowed and forwards the click to
// OnRow.
func (t *Table[T]) ClickRow(index int) {
	if !t.validRow(index) {
		return
	}
	if t.selection != nil && !t.selection.IsDisabled(index) {
		t.selection.ToggleRow(index)
	}
	if h := t.handlers(index); h.OnClick != nil {
		h.OnClick()
	}
}

// DoubleClickRow forwards a double click to OnRow.
func (t *Table[T]) DoubleClickRow(index int) {
	if !t.validRow(index) {
		return
	}
	if h := t.handlers(index); h.OnDoubleClick != nil {
		h.OnDoubleClick()
	}
}

// ContextMenuRow forwards a context-menu event to OnRow.
func (t *Table[T]) ContextMenuRow(index int) {
	if !t.validRow(index) {
		return
	}
	if h := t.handlers(index); h.OnContextMenu != nil {
		h.OnContextMenu()
	}
}

func (t *Table[T]) validRow(index int) bool {
	return !t.props.Loading && index >= 0 && index < len(t.props.DataSource)
}

func (t *Table[T]) handlers(index int) RowHandlers {
	if t.props.OnRow == nil {
		return RowHandlers{}
	}
	return t.props.OnRow(t.props.DataSource[index], index)
}

// Delete hands the selected keys to the toolbar delete handler.
func (t *Table[T]) Delete() bool {
	if t.props.Toolbar == nil || t.props.Toolbar.OnDelete == nil || t.props.Loading {
		return false
	}
	keys := t.SelectedKeys()
	if len(keys) == 0 {
		return false
	}
	t.props.Toolbar.OnDelete(keys)
	return true
}

// SortState returns the active sort.
func (t *Table[T]) SortState() SortState {
	return t.sorter.State()
}

// SelectedKeys returns the selection in selection order.
func (t *Table[T]) SelectedKeys() []string {
	if t.selection == nil {
		return nil
	}
	return t.selection.Keys()
}

// SelectedRows returns the selected rows of the current page.
func (t *Table[T]) SelectedRows() []T {
	if t.selection == nil {
		return nil
	}
	return t.selection.Rows()
}

// VisibleColumns returns the rendered column keys.
func (t *Table[T]) VisibleColumns() []string {
	return t.visibility.Visible()
}

// State snapshots the persisted part of the table.
func (t *Table[T]) State() State {
	return State{
		Sort:          t.sorter.State(),
		SelectedKeys:  t.SelectedKeys(),
		HiddenColumns: t.visibility.Hidden(),
	}
}

func (t *Table[T]) visibleColumns() []Column[T] {
	cols := make([]Column[T], 0, t.props.Columns.Len())
	for _, key := range t.visibility.Visible() {
		if col, ok := t.props.Columns.Lookup(key); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// View renders the current state.
func (t *Table[T]) View() View {
	cols := t.visibleColumns()
	sortState := t.sorter.State()

	view := View{
		Header:   make([]HeaderCell, 0, len(cols)),
		Sort:     sortState,
		Loading:  t.props.Loading,
		Empty:    !t.props.Loading && len(t.props.DataSource) == 0,
		Size:     t.props.Size,
		Bordered: t.props.Bordered,
	}
	if view.Size == "" {
		view.Size = SizeMiddle
	}

	for _, col := range cols {
		view.Header = append(view.Header, HeaderCell{
			Key:      col.Key,
			Title:    col.Title,
			Width:    col.width(),
			Align:    col.align(),
			Fixed:    col.Fixed,
			Ellipsis: col.Ellipsis,
			Sortable: col.IsSortable(),
			Order:    sortState.OrderFor(col.Key),
		})
	}

	if t.props.Loading {
		n := t.props.SkeletonRows
		if n <= 0 {
			n = DefaultSkeletonRows
		}
		view.Rows = skeletonRows(cols, n)
	} else {
		view.Rows = t.rows(cols)
	}

	if t.selection != nil {
		header := t.selection.Header()
		view.Selection = &header
	}
	if t.props.Pagination != nil {
		footer := NewFooter(*t.props.Pagination)
		view.Footer = &footer
	}
	if t.props.Toolbar != nil {
		view.Toolbar = t.toolbarView()
	}
	return view
}

func (t *Table[T]) rows(cols []Column[T]) []RowView {
	rows := make([]RowView, 0, len(t.props.DataSource))
	for i, record := range t.props.DataSource {
		key := t.props.RowKey(record)
		row := RowView{
			Key:   key,
			Index: i,
			Cells: make([]CellView, 0, len(cols)),
		}
		if t.selection != nil {
			row.Selected = t.selection.IsSelected(key)
			row.Disabled = t.selection.IsDisabled(i)
		}
		for _, col := range cols {
			row.Cells = append(row.Cells, col.cell(record, i))
		}
		rows = append(rows, row)
	}
	return rows
}

func (t *Table[T]) toolbarView() *ToolbarView {
	tb := t.props.Toolbar
	selected := len(t.SelectedKeys())
	view := &ToolbarView{
		Title:         toolbarTitle(tb.Title, selected),
		SelectedCount: selected,
		CanDelete:     tb.OnDelete != nil && selected > 0 && !t.props.Loading,
		Actions:       tb.Actions,
	}
	if tb.HideColumnMenu {
		return view
	}
	for _, col := range t.props.Columns.All() {
		if col.Hidden {
			continue
		}
		view.ColumnMenu = append(view.ColumnMenu, ColumnMenuItem{
			Key:      col.Key,
			Title:    col.Title,
			Visible:  t.visibility.IsVisible(col.Key),
			Disabled: t.props.Loading,
		})
	}
	return view
}
