package cli

import (
	"io"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/spec-kit/helpdesk-admin/internal/table"
)

var sortMarks = map[table.Order]string{
	table.OrderAsc:  " ▲",
	table.OrderDesc: " ▼",
}

// RenderView writes a table view as a terminal table. Action columns are
// left out; the footer carries the pagination label.
func RenderView(w io.Writer, view table.View) {
	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	style := prettytable.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)
	if view.Toolbar != nil {
		tw.SetTitle(view.Toolbar.Title)
	}

	keep := make([]bool, len(view.Header))
	header := prettytable.Row{}
	var configs []prettytable.ColumnConfig
	for i, h := range view.Header {
		if h.Key == table.ActionsColumnKey {
			continue
		}
		keep[i] = true
		header = append(header, h.Title+sortMarks[h.Order])
		configs = append(configs, prettytable.ColumnConfig{
			Number:   len(header),
			Align:    alignment(h.Align),
			WidthMax: maxWidth(h),
		})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, r := range view.Rows {
		row := prettytable.Row{}
		for i, cell := range r.Cells {
			if i >= len(keep) || !keep[i] {
				continue
			}
			value := cell.Text
			if r.Skeleton {
				value = strings.Repeat("░", max(cell.Width/16, 3))
			}
			row = append(row, value)
		}
		tw.AppendRow(row)
	}

	switch {
	case view.Loading:
	case view.Empty:
		tw.AppendFooter(prettytable.Row{"No data"})
	case view.Footer != nil:
		tw.AppendFooter(prettytable.Row{view.Footer.Label})
	}
	tw.Render()
}

func alignment(a table.Align) text.Align {
	switch a {
	case table.AlignRight:
		return text.AlignRight
	case table.AlignCenter:
		return text.AlignCenter
	default:
		return text.AlignLeft
	}
}

func maxWidth(h table.HeaderCell) int {
	if h.Ellipsis {
		return 40
	}
	return 0
}
