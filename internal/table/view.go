package table

// Size is the density of the rendered table.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMiddle Size = "middle"
	SizeLarge  Size = "large"
)

// View is everything a renderer needs, with no callbacks attached.
type View struct {
	Toolbar   *ToolbarView     `json:"toolbar,omitempty"`
	Selection *SelectionHeader `json:"selection,omitempty"`
	Header    []HeaderCell     `json:"header"`
	Rows      []RowView        `json:"rows"`
	Footer    *Footer          `json:"footer,omitempty"`
	Sort      SortState        `json:"sort"`
	Loading   bool             `json:"loading"`
	Empty     bool             `json:"empty"`
	Size      Size             `json:"size"`
	Bordered  bool             `json:"bordered"`
}

// HeaderCell is one column header.
type HeaderCell struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Width    int    `json:"width,omitempty"`
	Align    Align  `json:"align"`
	Fixed    Fixed  `json:"fixed,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
	Sortable bool   `json:"sortable"`
	Order    Order  `json:"order,omitempty"`
}

// RowView is one body row, real or skeleton.
type RowView struct {
	Key      string     `json:"key"`
	Index    int        `json:"index"`
	Selected bool       `json:"selected,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
	Skeleton bool       `json:"skeleton,omitempty"`
	Cells    []CellView `json:"cells"`
}
