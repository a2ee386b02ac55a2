package dto

// TableQuery is read from the query string of GET /admin/tables/:resource.
// Zero values leave the stored state untouched.
type TableQuery struct {
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
	Search   string `query:"search"`
	// HasSearch is set when the search parameter is present, even if empty.
	HasSearch bool `query:"-"`
}

// SortRequest advances the sort cycle of one column.
type SortRequest struct {
	Column string `json:"column"`
}

// ColumnRequest shows or hides one column.
type ColumnRequest struct {
	Column  string `json:"column"`
	Visible bool   `json:"visible"`
}

// SelectionRequest toggles one row, or the whole page when All is set.
type SelectionRequest struct {
	Key string `json:"key"`
	All *bool  `json:"all"`
}

// PageRequest moves to a page or changes the page size.
type PageRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// SearchRequest replaces the search term.
type SearchRequest struct {
	Search string `json:"search"`
}

// DeleteResponse reports a bulk delete.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
