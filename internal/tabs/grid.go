package tabs

import (
	"slices"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// Layout constants in canvas cells.
const (
	// HeaderHeight covers the header bar and its rule.
	HeaderHeight = 2
	// FilterRow is the row of the filter buttons.
	FilterRow = 2
	// GridTop is the first row of grid cells.
	GridTop = 4
	// Margin is the left and right padding of the tab area.
	Margin = 1

	MinWidth  = 60
	MinHeight = 16
)

// hiddenPage marks grid buttons excluded by the filter.
const hiddenPage = -1

// Layout is the size of the overlay canvas.
type Layout struct {
	Width, Height int
}

// Normalize clamps the layout to the minimum overlay size.
func (l Layout) Normalize() Layout {
	return Layout{Width: max(l.Width, MinWidth), Height: max(l.Height, MinHeight)}
}

// Grid lays out equally sized cells in pages.
type Grid struct {
	Left, Top  int
	CellWidth  int
	CellHeight int
	ColGap     int
	RowGap     int
	Columns    int
	Rows       int
}

// NewGrid fits cells of cellWidth into the layout below the filter row.
func NewGrid(l Layout, cellWidth int) Grid {
	l = l.Normalize()
	g := Grid{
		Left:       Margin,
		Top:        GridTop,
		CellWidth:  cellWidth,
		CellHeight: 1,
		ColGap:     1,
		RowGap:     1,
	}
	usable := l.Width - 2*Margin
	g.Columns = max(1, (usable+g.ColGap)/(cellWidth+g.ColGap))
	g.Rows = max(1, (l.Height-GridTop+g.RowGap)/(g.CellHeight+g.RowGap))
	return g
}

// PageSize returns the number of cells on a page.
func (g Grid) PageSize() int {
	return max(1, g.Columns*g.Rows)
}

// Slot returns the box of the i-th included cell.
func (g Grid) Slot(i int) button.Box {
	i %= g.PageSize()
	col := i % max(1, g.Columns)
	row := i / max(1, g.Columns)
	return button.Box{
		X: g.Left + col*(g.CellWidth+g.ColGap),
		Y: g.Top + row*(g.CellHeight+g.RowGap),
		W: g.CellWidth,
		H: g.CellHeight,
	}
}

// Place assigns pages and boxes to the cells passing include, in order,
// and hides the others. It returns the page count.
func (g Grid) Place(cells []*button.Button, include func(*button.Button) bool) int {
	n := 0
	for _, c := range cells {
		if !include(c) {
			c.PageVisible = hiddenPage
			continue
		}
		c.PageVisible = n/g.PageSize() + 1
		c.Box = g.Slot(n)
		n++
	}
	return Pages(n, g.PageSize())
}

// Pages returns the number of pages needed for n entries.
func Pages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Filter is a named grid filter with its ordering.
type Filter struct {
	Key   string
	Label func(*Context) string
	// Match tells whether a record passes the filter.
	Match func(id int) bool
	// Compare orders records; it must be total.
	Compare func(a, b int) int
}

// sortCells orders cells by cmp, breaking ties by record id.
func sortCells(cells []*button.Button, cmp func(a, b int) int) {
	slices.SortStableFunc(cells, func(a, b *button.Button) int {
		if cmp != nil {
			if c := cmp(a.RecordID, b.RecordID); c != 0 {
				return c
			}
		}
		return a.RecordID - b.RecordID
	})
}

// filterButtons lays out one button per filter on the filter row.
func filterButtons(ctx *Context, filters []Filter, onClick func(key string)) []*button.Button {
	buttons := make([]*button.Button, 0, len(filters))
	x := Margin
	for _, f := range filters {
		label := f.Label(ctx)
		w := render.Width(label) + 2
		key := f.Key
		buttons = append(buttons, &button.Button{
			ID:      "filter/" + key,
			Box:     button.Box{X: x, Y: FilterRow, W: w, H: 1},
			Label:   label,
			Kind:    button.KindText,
			OnClick: func() { onClick(key) },
		})
		x += w + 1
	}
	return buttons
}
