package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFooterLabel(t *testing.T) {
	cases := []struct {
		current, size, total int
		label                string
		prev, next           bool
	}{
		{1, 10, 25, "1–10 of 25", true, false},
		{2, 10, 25, "11–20 of 25", false, false},
		{3, 10, 25, "21–25 of 25", false, true},
		{1, 10, 0, "0–0 of 0", true, true},
		{101, 10, 12345, "1,001–1,010 of 12,345", false, false},
		{5, 10, 25, "0–0 of 25", false, true},
	}
	for _, tc := range cases {
		f := NewFooter(Pagination{Current: tc.current, PageSize: tc.size, Total: tc.total})
		require.Equal(t, tc.label, f.Label)
		require.Equal(t, tc.prev, f.PrevDisabled, tc.label)
		require.Equal(t, tc.next, f.NextDisabled, tc.label)
	}
}

func TestPageCount(t *testing.T) {
	require.Equal(t, 0, PageCount(0, 10))
	require.Equal(t, 1, PageCount(10, 10))
	require.Equal(t, 2, PageCount(11, 10))
	require.Equal(t, 0, PageCount(11, 0))
}

func TestPaginationNavigation(t *testing.T) {
	var got [][2]int
	p := Pagination{Current: 3, PageSize: 10, Total: 25, OnChange: func(page, size int) {
		got = append(got, [2]int{page, size})
	}}

	require.False(t, p.Next())
	require.True(t, p.Prev())
	require.True(t, p.ChangePageSize(20))
	require.True(t, p.GoTo(-4))
	// clamped to the last page, which is the current one
	require.False(t, p.GoTo(99))
	require.False(t, p.ChangePageSize(0))
	require.Equal(t, [][2]int{{2, 10}, {1, 20}, {1, 10}}, got)

	first := Pagination{Current: 1, PageSize: 10, Total: 25}
	require.False(t, first.Prev())
	// no handler, nothing to emit
	require.False(t, first.Next())
}
