package table

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pagination is owned by the caller; the table never keeps its own page.
type Pagination struct {
	Current         int
	PageSize        int
	Total           int
	PageSizeOptions []int
	OnChange        func(page, size int)
}

// Footer is the rendered pagination strip.
type Footer struct {
	Current         int    `json:"current"`
	PageSize        int    `json:"page_size"`
	Total           int    `json:"total"`
	From            int    `json:"from"`
	To              int    `json:"to"`
	PageCount       int    `json:"page_count"`
	Label           string `json:"label"`
	PrevDisabled    bool   `json:"prev_disabled"`
	NextDisabled    bool   `json:"next_disabled"`
	PageSizeOptions []int  `json:"page_size_options,omitempty"`
}

// PageCount is ceil(total/size), 0 for an empty set.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Range returns the 1-based positions of the first and last row on page
// current. A page past the end yields 0, 0.
func Range(current, size, total int) (from, to int) {
	if current < 1 {
		current = 1
	}
	if size <= 0 || total <= 0 {
		return 0, 0
	}
	from = (current-1)*size + 1
	if from > total {
		return 0, 0
	}
	to = current * size
	if to > total {
		to = total
	}
	return from, to
}

// RangeLabel formats "from–to of total" with English digit grouping.
func RangeLabel(from, to, total int) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d–%d of %d", from, to, total)
}

// NewFooter derives the footer from the pagination props alone.
func NewFooter(p Pagination) Footer {
	from, to := Range(p.Current, p.PageSize, p.Total)
	pages := PageCount(p.Total, p.PageSize)
	var options []int
	if len(p.PageSizeOptions) > 0 {
		options = append(options, p.PageSizeOptions...)
	}
	return Footer{
		Current:         p.Current,
		PageSize:        p.PageSize,
		Total:           p.Total,
		From:            from,
		To:              to,
		PageCount:       pages,
		Label:           RangeLabel(from, to, p.Total),
		PrevDisabled:    p.Current <= 1,
		NextDisabled:    p.Current >= pages,
		PageSizeOptions: options,
	}
}

// Prev moves one page back unless already on the first page.
func (p Pagination) Prev() bool {
	if p.Current <= 1 {
		return false
	}
	return p.emit(p.Current-1, p.PageSize)
}

// Next moves one page forward unless already on the last page.
func (p Pagination) Next() bool {
	if p.Current >= PageCount(p.Total, p.PageSize) {
		return false
	}
	return p.emit(p.Current+1, p.PageSize)
}

// GoTo jumps to page, clamped to the valid range.
func (p Pagination) GoTo(page int) bool {
	last := PageCount(p.Total, p.PageSize)
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	if page == p.Current {
		return false
	}
	return p.emit(page, p.PageSize)
}

// ChangePageSize switches the page size and always returns to page 1.
func (p Pagination) ChangePageSize(size int) bool {
	if size <= 0 {
		return false
	}
	return p.emit(1, size)
}

func (p Pagination) emit(page, size int) bool {
	if p.OnChange == nil {
		return false
	}
	p.OnChange(page, size)
	return true
}
