package tabs

import (
	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/navigator"
)

// Registry holds every tab and dispatches on their capabilities.
type Registry struct {
	ctx   *Context
	tabs  map[navigator.TabID]Tab
	order []navigator.TabID
}

// NewRegistry registers the overlay tabs and builds them from ctx.
func NewRegistry(ctx *Context) *Registry {
	r := &Registry{
		ctx:  ctx,
		tabs: make(map[navigator.TabID]Tab),
	}
	for _, t := range []Tab{
		NewPokemonTab(),
		NewPokemonZoom(),
		NewTrainersTab(),
		NewTrainerZoom(),
		NewRoutesTab(),
		NewRouteZoom(),
		NewTMsTab(),
		NewMiscTab(),
	} {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a tab and builds it.
func (r *Registry) Register(t Tab) {
	if _, ok := r.tabs[t.ID()]; !ok {
		r.order = append(r.order, t.ID())
	}
	r.tabs[t.ID()] = t
	t.Build(r.ctx)
}

// Context returns the build context shared by the tabs.
func (r *Registry) Context() *Context {
	return r.ctx
}

// Tab returns the tab with the given id.
func (r *Registry) Tab(id navigator.TabID) (Tab, bool) {
	t, ok := r.tabs[id]
	return t, ok
}

// Buttons returns the buttons of a tab, in registration order.
func (r *Registry) Buttons(id navigator.TabID) []*button.Button {
	if t, ok := r.tabs[id]; ok {
		return t.Buttons()
	}
	return nil
}

// Rebuild rebuilds every tab supporting it, in registration order.
func (r *Registry) Rebuild() {
	for _, id := range r.order {
		if t := r.tabs[id]; t.Caps().Has(CanRebuild) {
			t.Rebuild(r.ctx)
		}
	}
}

// Realign lays out a tab's grid for filter and returns its page count.
// Tabs without a grid have one page.
func (r *Registry) Realign(id navigator.TabID, filter string) int {
	t, ok := r.tabs[id]
	if !ok || !t.Caps().Has(CanRealign) {
		return 1
	}
	return t.Realign(filter)
}

// Load shows a record on a detail tab and returns its page count.
func (r *Registry) Load(id navigator.TabID, info int) int {
	t, ok := r.tabs[id]
	if !ok || !t.Caps().Has(CanLoad) {
		return 1
	}
	return t.Load(info)
}

// Sync brings the current tab in line with st: detail tabs load the
// record, grids follow the filter.
func (r *Registry) Sync(st navigator.State) {
	t, ok := r.tabs[st.Tab]
	if !ok {
		return
	}
	caps := t.Caps()
	if caps.Has(CanLoad) && t.InfoID() != st.InfoID {
		t.Load(st.InfoID)
	}
	if caps.Has(CanRealign) && t.Filter() != st.FilterGrid {
		t.Realign(st.FilterGrid)
	}
}

// CheckInput passes a click no button took to the current tab.
func (r *Registry) CheckInput(st navigator.State, x, y int) bool {
	t, ok := r.tabs[st.Tab]
	if !ok || !t.Caps().Has(CanCheckInput) {
		return false
	}
	return t.CheckInput(x, y, st)
}

// Draw paints the current tab's decorations.
func (r *Registry) Draw(c canvas.Renderer, st navigator.State) {
	t, ok := r.tabs[st.Tab]
	if !ok || !t.Caps().Has(CanDraw) {
		return
	}
	t.Draw(c, st)
}

// PageOf returns the page of a list tab showing the record, or zero.
func (r *Registry) PageOf(id navigator.TabID, record int) int {
	t, ok := r.tabs[id].(*listTab)
	if !ok {
		return 0
	}
	return t.PageOf(record)
}
