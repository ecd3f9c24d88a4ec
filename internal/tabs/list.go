package tabs

import (
	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/navigator"
)

// listTab is a filtered, paged grid of records.
type listTab struct {
	base
	ctx       *Context
	grid      Grid
	cellWidth int
	filters   []Filter
	filter    string
	cells     []*button.Button
	filterBtn []*button.Button

	// searchable grids follow the active search instead of their filter.
	searchable bool

	records func(ctx *Context) []int
	cell    func(ctx *Context, id int) *button.Button
}

func (t *listTab) Caps() Capability { return CanRebuild | CanRealign }

func (t *listTab) Filter() string {
	if t.filter == "" {
		return t.filters[0].Key
	}
	return t.filter
}

// Build implements Tab.
func (t *listTab) Build(ctx *Context) {
	t.ctx = ctx
	t.reset()
	t.cells = nil
	t.grid = NewGrid(ctx.Layout, t.cellWidth)

	t.filterBtn = filterButtons(ctx, t.filters, func(key string) {
		if ctx.Actions != nil {
			ctx.Actions.ShowList(t.id, key)
		}
	})
	for _, b := range t.filterBtn {
		t.add(b)
	}

	if ctx.Log != nil {
		for _, id := range t.records(ctx) {
			c := t.cell(ctx, id)
			c.RecordID = id
			c.Kind = button.KindCell
			c.InGrid = func(filter string) bool { return t.includes(filter, id) }
			t.add(c)
			t.cells = append(t.cells, c)
		}
	}
	t.Realign(t.Filter())
}

// Rebuild implements Tab.
func (t *listTab) Rebuild(ctx *Context) {
	filter := t.filter
	t.Build(ctx)
	t.Realign(filter)
}

// Realign implements Tab.
func (t *listTab) Realign(filter string) int {
	f := t.lookup(filter)
	t.filter = f.Key
	for _, b := range t.filterBtn {
		b.Selected = b.ID == "filter/"+f.Key
	}
	sortCells(t.cells, f.Compare)
	return t.grid.Place(t.cells, func(b *button.Button) bool {
		return b.InGrid(f.Key)
	})
}

func (t *listTab) lookup(key string) Filter {
	for _, f := range t.filters {
		if f.Key == key {
			return f
		}
	}
	return t.filters[0]
}

func (t *listTab) includes(filter string, id int) bool {
	if t.searchable && t.ctx.Search.Active() {
		p, ok := t.ctx.Log.Pokemon[id]
		return ok && t.ctx.Search.Matches(p)
	}
	f := t.lookup(filter)
	return f.Match == nil || f.Match(id)
}

// Cells returns the grid buttons in their current order.
func (t *listTab) Cells() []*button.Button {
	return t.cells
}

// PageOf returns the page showing the record, or zero when hidden.
func (t *listTab) PageOf(id int) int {
	for _, c := range t.cells {
		if c.RecordID == id && c.PageVisible > 0 {
			return c.PageVisible
		}
	}
	return 0
}

var _ Tab = (*listTab)(nil)

func newListTab(id navigator.TabID, cellWidth int, filters []Filter) *listTab {
	return &listTab{
		base:      base{id: id},
		cellWidth: cellWidth,
		filters:   filters,
	}
}
