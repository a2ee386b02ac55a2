package table

import "fmt"

// Toolbar configures the strip above the table.
type Toolbar struct {
	Title          string
	OnDelete       func(keys []string)
	Actions        []Action
	HideColumnMenu bool
}

// ToolbarView is the rendered toolbar.
type ToolbarView struct {
	Title         string           `json:"title"`
	SelectedCount int              `json:"selected_count"`
	CanDelete     bool             `json:"can_delete"`
	Actions       []Action         `json:"actions,omitempty"`
	ColumnMenu    []ColumnMenuItem `json:"column_menu,omitempty"`
}

// ColumnMenuItem is one entry of the column visibility menu.
type ColumnMenuItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Visible  bool   `json:"visible"`
	Disabled bool   `json:"disabled,omitempty"`
}

func toolbarTitle(title string, selected int) string {
	if selected > 0 {
		return fmt.Sprintf("%d selected", selected)
	}
	return title
}
