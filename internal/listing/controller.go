package listing

import (
	"context"
	"strings"

	"github.com/spec-kit/helpdesk-admin/internal/table"
)

// Controller owns the query of a remote table and the last page it fetched.
// It is not safe for concurrent use.
type Controller[T any] struct {
	fetcher Fetcher[T]
	query   Query
	page    Page[T]
	loading bool
	dirty   bool
}

// NewController starts from q, normalized.
func NewController[T any](fetcher Fetcher[T], q Query) *Controller[T] {
	return &Controller[T]{fetcher: fetcher, query: q.Normalize(), dirty: true}
}

// Query returns the current query.
func (c *Controller[T]) Query() Query {
	return c.query
}

// Items returns the rows of the last fetched page.
func (c *Controller[T]) Items() []T {
	return c.page.Items
}

// Total returns the total reported by the last fetch.
func (c *Controller[T]) Total() int {
	return c.page.Total
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	return c.loading
}

// Dirty reports whether the query changed since the last successful Load.
func (c *Controller[T]) Dirty() bool {
	return c.dirty
}

func (c *Controller[T]) set(q Query) bool {
	q = q.Normalize()
	if q == c.query {
		return false
	}
	c.query = q
	c.dirty = true
	return true
}

// SetPage moves to page.
func (c *Controller[T]) SetPage(page int) bool {
	q := c.query
	q.Page = page
	return c.set(q)
}

// SetPageSize changes the page size and returns to page 1.
func (c *Controller[T]) SetPageSize(size int) bool {
	q := c.query
	q.PageSize = size
	q.Page = 1
	return c.set(q)
}

// SetSearch changes the search term and returns to page 1.
func (c *Controller[T]) SetSearch(search string) bool {
	search = strings.TrimSpace(search)
	if search == c.query.Search {
		return false
	}
	q := c.query
	q.Search = search
	q.Page = 1
	return c.set(q)
}

// SetSort changes the sort. An empty field or OrderNone clears it.
func (c *Controller[T]) SetSort(field string, order table.Order) bool {
	q := c.query
	q.SortField = field
	q.SortOrder = order
	return c.set(q)
}

// Load fetches the current page. When the page lies past the end of a
// shrunken result set it moves to the last page and fetches again. An empty
// result set always lands on page 1.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.loading = true
	defer func() { c.loading = false }()

	page, err := c.fetcher.List(ctx, c.query)
	if err != nil {
		return err
	}
	switch {
	case page.Total == 0 && c.query.Page > 1:
		// Nothing to fetch again: every page of an empty set is empty.
		c.query.Page = 1
	case len(page.Items) == 0 && page.Total > 0:
		if last := table.PageCount(page.Total, c.query.PageSize); c.query.Page > last {
			c.query.Page = last
			if page, err = c.fetcher.List(ctx, c.query); err != nil {
				return err
			}
		}
	}
	c.page = page
	c.dirty = false
	return nil
}

// Pagination exposes the query as table pagination props. Page changes from
// the footer flow back into the controller.
func (c *Controller[T]) Pagination(options []int) *table.Pagination {
	return &table.Pagination{
		Current:         c.query.Page,
		PageSize:        c.query.PageSize,
		Total:           c.page.Total,
		PageSizeOptions: options,
		OnChange: func(page, size int) {
			if size != c.query.PageSize {
				c.SetPageSize(size)
				return
			}
			c.SetPage(page)
		},
	}
}

// SortHandler is suitable for table.Props.OnSortChange.
func (c *Controller[T]) SortHandler() func(key string, order table.Order) {
	return func(key string, order table.Order) {
		c.SetSort(key, order)
	}
}
