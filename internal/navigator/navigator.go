package navigator

// Default field values applied when neither a new nor a current value exists.
const (
	DefaultPage       = 1
	DefaultTotalPages = 1
	NoInfo            = -1
	DefaultFilter     = "#"
)

// State is the navigation state of the overlay.
type State struct {
	Tab        TabID
	Page       int
	TotalPages int
	InfoID     int
	FilterGrid string
}

// Hooks connects the navigator to the rest of the overlay.
type Hooks interface {
	// Refresh rebuilds visible buttons after a tab change.
	Refresh()
	// Redraw requests a repaint without rebuilding buttons.
	Redraw()
	// SearchActive reports whether a search view filters the grid.
	SearchActive() bool
	// Realign recomputes the grid of a list tab for the filter and
	// returns its page count.
	Realign(tab TabID, filter string) int
}

// Option supplies a field for ChangeTab.
type Option func(*request)

type request struct {
	page       *int
	totalPages *int
	infoID     *int
	filterGrid *string
}

// WithPage sets the page shown after the change.
func WithPage(page int) Option {
	return func(r *request) { r.page = &page }
}

// WithTotalPages sets the page count of the new tab.
func WithTotalPages(total int) Option {
	return func(r *request) { r.totalPages = &total }
}

// WithInfoID sets the record shown by a detail tab.
func WithInfoID(id int) Option {
	return func(r *request) { r.infoID = &id }
}

// WithFilterGrid sets the named filter of a list tab.
func WithFilterGrid(filter string) Option {
	return func(r *request) { r.filterGrid = &filter }
}

// Navigator tracks the current tab and page and a history of list
// positions to return to from detail tabs.
type Navigator struct {
	state     State
	history   []State
	displayed bool
	hooks     Hooks
}

// New creates a closed navigator. hooks may be nil.
func New(hooks Hooks) *Navigator {
	return &Navigator{
		state:   State{InfoID: NoInfo},
		history: make([]State, 0, 8),
		hooks:   hooks,
	}
}

// --- Accessors ---

// State returns a copy of the current state.
func (n *Navigator) State() State {
	return n.state
}

// CurrentTab returns the current tab.
func (n *Navigator) CurrentTab() TabID {
	return n.state.Tab
}

// Displayed returns true if the overlay is shown.
func (n *Navigator) Displayed() bool {
	return n.displayed
}

// HistoryDepth returns the number of saved positions.
func (n *Navigator) HistoryDepth() int {
	return len(n.history)
}

// CanGoBack returns true if a saved position exists.
func (n *Navigator) CanGoBack() bool {
	return len(n.history) > 0
}

// --- Transitions ---

// ChangeTab switches to tab. Fields not supplied keep their current
// value, or their default when unset.
func (n *Navigator) ChangeTab(tab TabID, opts ...Option) {
	if tab == TabNone {
		return
	}

	var req request
	for _, opt := range opts {
		opt(&req)
	}

	prev := n.state
	if tab.PushesHistory() && !prev.Tab.IsDetail() && prev.Tab != TabNone {
		n.history = append(n.history, prev)
	}

	n.state.Tab = tab
	n.apply(req)
	n.displayed = true

	if n.hooks == nil {
		return
	}
	n.hooks.Refresh()

	// A search view re-filters the grid during refresh; the requested
	// position is applied again on top of it.
	if n.hooks.SearchActive() {
		n.apply(req)
	}
}

func (n *Navigator) apply(req request) {
	n.state.Page = pick(req.page, n.state.Page, DefaultPage)
	n.state.TotalPages = pick(req.totalPages, n.state.TotalPages, DefaultTotalPages)
	if req.infoID != nil {
		n.state.InfoID = *req.infoID
	}
	switch {
	case req.filterGrid != nil:
		n.state.FilterGrid = *req.filterGrid
	case n.state.FilterGrid == "":
		n.state.FilterGrid = DefaultFilter
	}
	if n.state.TotalPages < 1 {
		n.state.TotalPages = DefaultTotalPages
	}
	if n.state.Page < 1 || n.state.Page > n.state.TotalPages {
		n.state.Page = DefaultPage
	}
}

func pick(supplied *int, current, fallback int) int {
	if supplied != nil {
		return *supplied
	}
	if current > 0 {
		return current
	}
	return fallback
}

// NextPage moves to the next page, wrapping to the first.
func (n *Navigator) NextPage() {
	if n.state.TotalPages <= 1 {
		return
	}
	n.state.Page = (n.state.Page % n.state.TotalPages) + 1
	n.redraw()
}

// PrevPage moves to the previous page, wrapping to the last.
func (n *Navigator) PrevPage() {
	if n.state.TotalPages <= 1 {
		return
	}
	total := n.state.TotalPages
	n.state.Page = ((n.state.Page-2+total)%total + 1)
	n.redraw()
}

// GoBack restores the most recent saved position. Without history the
// default tab is shown from its first page.
func (n *Navigator) GoBack() {
	if len(n.history) == 0 {
		total := DefaultTotalPages
		if n.hooks != nil {
			total = n.hooks.Realign(DefaultTab, DefaultFilter)
		}
		n.ChangeTab(DefaultTab,
			WithPage(DefaultPage),
			WithTotalPages(total),
			WithInfoID(NoInfo),
			WithFilterGrid(DefaultFilter),
		)
		return
	}

	prev := n.history[len(n.history)-1]
	n.history = n.history[:len(n.history)-1]
	n.ChangeTab(prev.Tab,
		WithPage(prev.Page),
		WithTotalPages(prev.TotalPages),
		WithInfoID(prev.InfoID),
		WithFilterGrid(prev.FilterGrid),
	)
}

// ClearHistory drops every saved position.
func (n *Navigator) ClearHistory() {
	n.history = n.history[:0]
}

// Close hides the overlay and forgets saved positions.
func (n *Navigator) Close() {
	n.ClearHistory()
	n.displayed = false
}

// Reset returns the navigator to its initial closed state.
func (n *Navigator) Reset() {
	n.Close()
	n.state = State{InfoID: NoInfo}
}

func (n *Navigator) redraw() {
	if n.hooks != nil {
		n.hooks.Redraw()
	}
}
