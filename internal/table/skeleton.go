package table

import (
	"strconv"
	"unicode/utf8"
)

// DefaultSkeletonRows is the number of placeholder rows shown while loading.
const DefaultSkeletonRows = 7

const (
	skeletonMinWidth  = 48
	skeletonCharWidth = 8
	skeletonPadding   = 32
)

// skeletonWidth approximates the rendered width of a column without looking
// at any row.
func skeletonWidth(width int, title string) int {
	if width > 0 {
		return width
	}
	w := utf8.RuneCountInString(title)*skeletonCharWidth + skeletonPadding
	if w < skeletonMinWidth {
		w = skeletonMinWidth
	}
	return w
}

func skeletonRows[T any](cols []Column[T], n int) []RowView {
	rows := make([]RowView, 0, n)
	for i := 0; i < n; i++ {
		cells := make([]CellView, 0, len(cols))
		for _, col := range cols {
			cells = append(cells, CellView{
				Key:    col.Key,
				Kind:   skeletonKind,
				Align:  col.align(),
				Width:  skeletonWidth(col.width(), col.Title),
				Fixed:  col.Fixed,
				NoWrap: col.isActions(),
			})
		}
		rows = append(rows, RowView{
			Key:      "skeleton-" + strconv.Itoa(i),
			Index:    i,
			Skeleton: true,
			Cells:    cells,
		})
	}
	return rows
}
