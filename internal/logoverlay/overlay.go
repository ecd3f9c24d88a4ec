// Package logoverlay ties the navigator, the tabs and the header bar into
// the log viewer drawn over the tracker.
package logoverlay

import (
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/icons"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/session"
	"github.com/llehouerou/dexlog/internal/tabs"
	"github.com/llehouerou/dexlog/internal/ui/headerbar"
	"github.com/llehouerou/dexlog/internal/ui/render"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Forms opens the popups behind the misc tab actions.
type Forms interface {
	OpenLog()
	OpenSearch()
	LoadData()
	SaveData()
	OpenSettings()
}

// Options configure an Overlay.
type Options struct {
	Text       *resources.Table
	Layout     tabs.Layout
	Session    session.Session
	Screens    session.Screens
	Tracked    tabs.Tracked
	Forms      Forms
	SpritesDir string
	Logger     *zap.Logger
}

// Overlay is the log viewer. It is driven once per frame by the host
// through CheckInput, UpdateSelf and Draw.
type Overlay struct {
	nav     *navigator.Navigator
	reg     *tabs.Registry
	header  *headerbar.Bar
	ctx     *tabs.Context
	search  tabs.Search
	session session.Session
	screens session.Screens
	forms   Forms
	logger  *zap.Logger

	dirty bool
}

var (
	_ navigator.Hooks   = (*Overlay)(nil)
	_ tabs.Actions      = (*Overlay)(nil)
	_ headerbar.Actions = (*Overlay)(nil)
)

// New creates a closed overlay without a log.
func New(opts Options) *Overlay {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	text := opts.Text
	if text == nil {
		text = resources.MustDefault()
	}
	o := &Overlay{
		session: opts.Session,
		screens: opts.Screens,
		forms:   opts.Forms,
		logger:  logger,
		dirty:   true,
	}
	o.ctx = &tabs.Context{
		Text:       text,
		Layout:     opts.Layout.Normalize(),
		Search:     &o.search,
		Tracked:    opts.Tracked,
		Actions:    o,
		SpritesDir: opts.SpritesDir,
	}
	o.nav = navigator.New(o)
	o.reg = tabs.NewRegistry(o.ctx)
	o.header = headerbar.New(o.nav, o)
	o.header.Build(text, o.ctx.Layout.Width)
	return o
}

// Navigator returns the overlay navigator.
func (o *Overlay) Navigator() *navigator.Navigator {
	return o.nav
}

// Search returns the active Pokémon search.
func (o *Overlay) Search() *tabs.Search {
	return &o.search
}

// Log returns the loaded log, or nil.
func (o *Overlay) Log() *rlog.Log {
	return o.ctx.Log
}

// Text returns the current string table.
func (o *Overlay) Text() *resources.Table {
	return o.ctx.Text
}

// Displayed returns true while the overlay is shown.
func (o *Overlay) Displayed() bool {
	return o.nav.Displayed()
}

// TakeDirty reports whether the overlay changed since the last call.
func (o *Overlay) TakeDirty() bool {
	d := o.dirty
	o.dirty = false
	return d
}

// --- Navigator hooks ---

// Refresh implements navigator.Hooks.
func (o *Overlay) Refresh() {
	o.reg.Sync(o.nav.State())
	o.header.UpdateSelf()
	o.dirty = true
}

// Redraw implements navigator.Hooks.
func (o *Overlay) Redraw() {
	o.dirty = true
}

// SearchActive implements navigator.Hooks.
func (o *Overlay) SearchActive() bool {
	return o.search.Active()
}

// Realign implements navigator.Hooks.
func (o *Overlay) Realign(tab navigator.TabID, filter string) int {
	return o.reg.Realign(tab, filter)
}

// --- Opening and closing ---

// Open shows the overlay. The first opening shows the Pokémon list; later
// ones return to the last position.
func (o *Overlay) Open() {
	if o.nav.Displayed() {
		return
	}
	st := o.nav.State()
	if st.Tab == navigator.TabNone {
		o.ShowList(navigator.DefaultTab, tabs.FilterAll)
		return
	}
	o.nav.ChangeTab(st.Tab)
}

// Close hides the overlay and forgets the back history.
func (o *Overlay) Close() {
	o.nav.Close()
	o.dirty = true
}

// CloseOverlay implements headerbar.Actions: the overlay closes, drops the
// search and hands over to the application screen.
func (o *Overlay) CloseOverlay() {
	if o.search.Active() {
		o.search.Clear()
		o.reg.Realign(navigator.TabPokemon, o.filterOf(navigator.TabPokemon))
	}
	o.Close()
	screen := session.Fallback(o.session)
	o.logger.Debug("overlay closed", zap.Stringer("screen", screen))
	if o.screens != nil {
		o.screens.ChangeScreen(screen)
	}
}

func (o *Overlay) filterOf(id navigator.TabID) string {
	if t, ok := o.reg.Tab(id); ok {
		return t.Filter()
	}
	return tabs.FilterAll
}

// --- External events ---

// LoadLog shows log. A log with a new identity resets the navigation and
// the search. It returns false when log is already shown.
func (o *Overlay) LoadLog(log *rlog.Log) bool {
	if log != nil && o.ctx.Log != nil && log.Identity() == o.ctx.Log.Identity() {
		return false
	}
	o.logger.Info("log loaded", zap.String("identity", log.Identity()))
	wasOpen := o.nav.Displayed()
	o.ctx.Log = log
	o.search.Clear()
	o.nav.Reset()
	o.reg.Rebuild()
	if wasOpen {
		o.Open()
	}
	o.dirty = true
	return true
}

// SetLanguage switches the string table and rebuilds every tab. The
// navigation state is kept.
func (o *Overlay) SetLanguage(text *resources.Table) {
	if text == nil {
		return
	}
	o.ctx.Text = text
	o.rebuild()
}

// SetTracked replaces the tracked data shown next to the log.
func (o *Overlay) SetTracked(t tabs.Tracked) {
	o.ctx.Tracked = t
	o.rebuild()
}

// Resize lays the overlay out for a new canvas size.
func (o *Overlay) Resize(width, height int) {
	l := tabs.Layout{Width: width, Height: height}.Normalize()
	if l == o.ctx.Layout {
		return
	}
	o.ctx.Layout = l
	o.rebuild()
}

// rebuild recreates every button and recounts the pages of the current tab.
func (o *Overlay) rebuild() {
	o.header.Build(o.ctx.Text, o.ctx.Layout.Width)
	o.reg.Rebuild()
	o.dirty = true
	if !o.nav.Displayed() {
		return
	}
	st := o.nav.State()
	total := st.TotalPages
	if t, ok := o.reg.Tab(st.Tab); ok {
		switch caps := t.Caps(); {
		case caps.Has(tabs.CanRealign):
			total = o.reg.Realign(st.Tab, st.FilterGrid)
		case caps.Has(tabs.CanLoad):
			total = o.reg.Load(st.Tab, st.InfoID)
		}
	}
	if total != st.TotalPages {
		o.nav.ChangeTab(st.Tab, navigator.WithTotalPages(total))
	}
}

// SetSearch filters the Pokémon list by term and shows it.
func (o *Overlay) SetSearch(term string, field tabs.SearchField) {
	o.search.Set(term, field)
	o.logger.Debug("search", zap.String("term", o.search.Term()), zap.Bool("active", o.search.Active()))
	o.ShowList(navigator.TabPokemon, tabs.FilterAll)
}

// ClearSearch drops the search. The Pokémon list is realigned when shown.
func (o *Overlay) ClearSearch() {
	if !o.search.Active() {
		return
	}
	o.search.Clear()
	st := o.nav.State()
	if o.nav.Displayed() && st.Tab == navigator.TabPokemon {
		o.ShowList(navigator.TabPokemon, st.FilterGrid)
		return
	}
	o.reg.Realign(navigator.TabPokemon, o.filterOf(navigator.TabPokemon))
	o.dirty = true
}

// --- Tab actions ---

// ShowList implements tabs.Actions.
func (o *Overlay) ShowList(tab navigator.TabID, filter string) {
	total := o.reg.Realign(tab, filter)
	o.nav.ChangeTab(tab,
		navigator.WithPage(navigator.DefaultPage),
		navigator.WithTotalPages(total),
		navigator.WithFilterGrid(o.filterOf(tab)),
	)
}

func (o *Overlay) showDetail(tab navigator.TabID, id int) {
	total := o.reg.Load(tab, id)
	o.nav.ChangeTab(tab,
		navigator.WithPage(navigator.DefaultPage),
		navigator.WithTotalPages(total),
		navigator.WithInfoID(id),
	)
}

// ShowPokemon implements tabs.Actions.
func (o *Overlay) ShowPokemon(id int) { o.showDetail(navigator.TabPokemonZoom, id) }

// ShowTrainer implements tabs.Actions.
func (o *Overlay) ShowTrainer(id int) { o.showDetail(navigator.TabTrainerZoom, id) }

// ShowRoute implements tabs.Actions.
func (o *Overlay) ShowRoute(id int) { o.showDetail(navigator.TabRouteZoom, id) }

// TurnPage implements tabs.Actions.
func (o *Overlay) TurnPage(delta int) {
	for ; delta > 0; delta-- {
		o.nav.NextPage()
	}
	for ; delta < 0; delta++ {
		o.nav.PrevPage()
	}
}

// SearchMove implements tabs.Actions.
func (o *Overlay) SearchMove(move string) {
	o.SetSearch(move, tabs.SearchMove)
}

// OpenLog implements tabs.Actions.
func (o *Overlay) OpenLog() {
	if o.forms != nil {
		o.forms.OpenLog()
	}
}

// OpenSearch implements tabs.Actions.
func (o *Overlay) OpenSearch() {
	if o.forms != nil {
		o.forms.OpenSearch()
	}
}

// LoadData implements tabs.Actions.
func (o *Overlay) LoadData() {
	if o.forms != nil {
		o.forms.LoadData()
	}
}

// SaveData implements tabs.Actions.
func (o *Overlay) SaveData() {
	if o.forms != nil {
		o.forms.SaveData()
	}
}

// OpenSettings implements tabs.Actions.
func (o *Overlay) OpenSettings() {
	if o.forms != nil {
		o.forms.OpenSettings()
	}
}

// --- Per frame ---

// buttons returns the header buttons followed by the current tab's.
func (o *Overlay) buttons(st navigator.State) []*button.Button {
	header := o.header.Buttons()
	tab := o.reg.Buttons(st.Tab)
	all := make([]*button.Button, 0, len(header)+len(tab))
	all = append(all, header...)
	return append(all, tab...)
}

// CheckInput dispatches a click at x, y. The last registered visible
// button under the point takes it; otherwise the current tab may.
func (o *Overlay) CheckInput(x, y int) bool {
	if !o.nav.Displayed() {
		return false
	}
	st := o.nav.State()
	if hit := button.HitTest(o.buttons(st), st, x, y); hit != nil {
		o.logger.Debug("click", zap.String("button", hit.ID))
		hit.OnClick()
		o.dirty = true
		return true
	}
	if o.reg.CheckInput(st, x, y) {
		o.dirty = true
		return true
	}
	return false
}

// UpdateSelf runs the per-frame updates of the visible buttons.
func (o *Overlay) UpdateSelf() {
	if !o.nav.Displayed() {
		return
	}
	st := o.nav.State()
	for _, b := range o.buttons(st) {
		if b.UpdateSelf != nil && b.IsVisible(st) {
			b.UpdateSelf(b)
		}
	}
}

// Draw paints the overlay.
func (o *Overlay) Draw(r canvas.Renderer) {
	if !o.nav.Displayed() {
		return
	}
	th := styles.T()
	st := o.nav.State()
	w, h := r.Size()

	r.FillRect(0, 0, w, h, canvas.Color(th.BgBase))
	r.Line(0, headerbar.Height-1, w-1, headerbar.Height-1, canvas.Color(th.Border))

	if st.Tab == navigator.TabPokemon && o.search.Active() {
		label := icons.FormatSearch(o.search.Term())
		r.Text(w-tabs.Margin-render.Width(label), tabs.FilterRow, label, canvas.Color(th.Warning), "")
	}

	o.reg.Draw(r, st)
	for _, b := range button.Visible(o.buttons(st), st) {
		o.drawButton(r, b)
	}
}

func (o *Overlay) drawButton(r canvas.Renderer, b *button.Button) {
	th := styles.T()
	box := b.Box
	fg := canvas.Color(th.FgBase)
	if b.Color != "" {
		fg = canvas.Color(b.Color)
	}

	if b.Image != "" {
		if err := r.Image(b.Image, box.X, box.Y, box.W, box.H); err != nil {
			o.logger.Debug("image", zap.String("path", b.Image), zap.Error(err))
		}
	}

	switch b.Kind {
	case button.KindCell:
		bg := th.BgCell
		if b.Selected {
			bg = th.BgCursor
			fg = canvas.Color(th.Success)
		}
		r.FillRect(box.X, box.Y, box.W, box.H, canvas.Color(bg))
		r.Text(box.X+1, box.Y, b.Label, fg, "")
	case button.KindText:
		fg = canvas.Color(th.FgMuted)
		if b.Selected {
			fg = canvas.Color(th.Primary)
		}
		r.Text(box.X+1, box.Y, b.Label, fg, "")
	case button.KindIcon:
		r.Text(box.X+1, box.Y, b.Label, fg, "")
	default:
		if b.Selected {
			fg = canvas.Color(th.Primary)
		}
		r.Text(box.X, box.Y, b.Label, fg, canvas.Color(th.Shadow))
	}
}
