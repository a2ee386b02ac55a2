// Package listing drives server-side pagination, search and sort for a table
// backed by a remote source.
package listing

import (
	"context"
	"strings"

	"github.com/spec-kit/helpdesk-admin/internal/table"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query is what a fetcher needs to return one page.
type Query struct {
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
	Search    string      `json:"search,omitempty"`
	SortField string      `json:"sort_field,omitempty"`
	SortOrder table.Order `json:"sort_order,omitempty"`
}

// Normalize clamps page and size and clears a half-set sort.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	sort := table.SortState{OrderBy: q.SortField, Order: q.SortOrder}.Normalize()
	q.SortField, q.SortOrder = sort.OrderBy, sort.Order
	return q
}

// Limit is the page size.
func (q Query) Limit() int {
	return q.Normalize().PageSize
}

// Offset is the number of rows before the page.
func (q Query) Offset() int {
	n := q.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Sort returns the sort as table state.
func (q Query) Sort() table.SortState {
	return table.SortState{OrderBy: q.SortField, Order: q.SortOrder}.Normalize()
}

// Page is one fetched page plus the size of the whole result set.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Fetcher returns one page of T for a query.
type Fetcher[T any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc[T any] func(ctx context.Context, q Query) (Page[T], error)

// List calls f.
func (f FetchFunc[T]) List(ctx context.Context, q Query) (Page[T], error) {
	return f(ctx, q)
}
