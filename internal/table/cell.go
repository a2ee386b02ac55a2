package table

// CellView is one rendered cell.
type CellView struct {
	Key      string   `json:"key"`
	Kind     string   `json:"kind"`
	Text     string   `json:"text"`
	Tone     Tone     `json:"tone,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Align    Align    `json:"align"`
	Width    int      `json:"width,omitempty"`
	Fixed    Fixed    `json:"fixed,omitempty"`
	Ellipsis bool     `json:"ellipsis,omitempty"`
	NoWrap   bool     `json:"no_wrap,omitempty"`
}

const skeletonKind = "skeleton"

func (c Column[T]) cell(row T, index int) CellView {
	view := CellView{
		Key:      c.Key,
		Kind:     c.Kind.String(),
		Align:    c.align(),
		Width:    c.width(),
		Fixed:    c.Fixed,
		Ellipsis: c.Ellipsis,
		NoWrap:   c.isActions(),
	}
	value, ok := c.value(row)

	if c.isActions() {
		if c.Actions != nil {
			view.Actions = c.Actions(row, index)
		}
		if c.Render != nil {
			view.Text = c.Render(value, row, index)
		}
		return view
	}

	switch {
	case c.Render != nil:
		view.Text = c.Render(value, row, index)
	case !ok:
		view.Text = Placeholder
	case c.Kind == CellDate:
		view.Text = formatDate(value, c.DateLayout)
	default:
		view.Text = formatValue(value)
	}

	if c.Kind == CellBadge {
		view.Tone = ToneDefault
		if tone, found := c.Tones[view.Text]; found {
			view.Tone = tone
		}
	}
	return view
}
