package formbridge

import (
	"go.uber.org/zap"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithSuspenders sets the input sources disabled during file dialogs.
func WithSuspenders(s ...Suspender) Option {
	return func(b *Bridge) { b.suspenders = append(b.suspenders, s...) }
}

// WithLogger sets the bridge logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// Bridge owns the active popup and the controls created on it.
type Bridge struct {
	host       Host
	suspenders []Suspender
	logger     *zap.Logger

	active *Popup
	types  map[ControlID]ControlType
}

// New creates a bridge over host. host may be nil.
func New(host Host, opts ...Option) *Bridge {
	b := &Bridge{
		host:   host,
		logger: zap.NewNop(),
		types:  make(map[ControlID]ControlType),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) available() bool {
	return b.host != nil && b.host.Available()
}

func (b *Bridge) valid(id ControlID) bool {
	if id <= 0 || !b.available() {
		return false
	}
	_, ok := b.types[id]
	return ok
}

// PopupOption configures CreatePopup.
type PopupOption func(*Window)

// WithPosition places the popup at x, y instead of centering it.
func WithPosition(x, y int) PopupOption {
	return func(w *Window) {
		w.X, w.Y = x, y
		w.HasPosition = true
	}
}

// WithOnClose runs fn when the user closes the popup.
func WithOnClose(fn func()) PopupOption {
	return func(w *Window) { w.OnClose = fn }
}

// WithBlockInput sets whether the popup stops overlay input. Popups block
// input by default.
func WithBlockInput(block bool) PopupOption {
	return func(w *Window) { w.BlockInput = block }
}

// CreatePopup destroys the active popup and opens a new one. It returns
// nil when the host is unavailable.
func (b *Bridge) CreatePopup(title string, width, height int, opts ...PopupOption) *Popup {
	if !b.available() {
		return nil
	}
	b.DestroyPopup(nil)

	w := Window{Title: title, Width: width, Height: height, BlockInput: true}
	for _, opt := range opts {
		opt(&w)
	}
	p := &Popup{bridge: b, title: title}
	onClose := w.OnClose
	w.OnClose = func() {
		b.forget(p)
		if onClose != nil {
			onClose()
		}
	}

	p.id = b.host.CreateWindow(w)
	if p.id <= 0 {
		b.logger.Warn("create popup failed", zap.String("title", title))
		return nil
	}
	b.active = p
	b.logger.Debug("popup created", zap.String("title", title), zap.Int("window", int(p.id)))
	return p
}

// DestroyPopup closes p, or the active popup when p is nil.
func (b *Bridge) DestroyPopup(p *Popup) {
	if p == nil {
		p = b.active
	}
	if p == nil || p.closed {
		return
	}
	if b.available() {
		b.host.DestroyWindow(p.id)
	}
	b.forget(p)
}

// forget drops a popup closed by either side.
func (b *Bridge) forget(p *Popup) {
	p.closed = true
	for _, c := range p.controls {
		delete(b.types, c.ID)
	}
	p.controls = nil
	if b.active == p {
		b.active = nil
	}
}

// Active returns the open popup, or nil.
func (b *Bridge) Active() *Popup {
	return b.active
}

// ControlType returns the recorded type of a control.
func (b *Bridge) ControlType(id ControlID) (ControlType, bool) {
	t, ok := b.types[id]
	return t, ok
}

// GetText returns the text of a control, or "" for an invalid control.
func (b *Bridge) GetText(id ControlID) string {
	if !b.valid(id) {
		return ""
	}
	return b.host.Text(id)
}

// SetText sets the text of a control.
func (b *Bridge) SetText(id ControlID, text string) {
	if !b.valid(id) {
		return
	}
	b.host.SetText(id, text)
}

// GetProperty returns a named property of a control, or "".
func (b *Bridge) GetProperty(id ControlID, name string) string {
	if !b.valid(id) || name == "" {
		return ""
	}
	return b.host.Property(id, name)
}

// SetProperty sets a named property of a control.
func (b *Bridge) SetProperty(id ControlID, name, value string) {
	if !b.valid(id) || name == "" {
		return
	}
	b.host.SetProperty(id, name, value)
}

// IsChecked returns the state of a checkbox, false for anything else.
func (b *Bridge) IsChecked(id ControlID) bool {
	if !b.valid(id) || b.types[id] != ControlCheckbox {
		return false
	}
	return b.host.Checked(id)
}

// OpenFileDialog shows a file dialog filtered by filterSpec, a
// "Description (*.ext)|*.ext;*.ext2" list. Suspended input sources are
// restored before it returns. ok is false when no file was chosen.
//
// It touches no popup state and may run off the host's event goroutine.
func (b *Bridge) OpenFileDialog(suggestedName, dir, filterSpec string) (path string, ok bool) {
	if !b.available() {
		return "", false
	}
	for _, s := range b.suspenders {
		restore := s.Suspend()
		if restore != nil {
			defer restore()
		}
	}
	path = b.host.OpenFile(suggestedName, dir, ParseFilter(filterSpec))
	if path == "" {
		b.logger.Debug("file dialog cancelled")
		return "", false
	}
	return path, true
}

// Control is a control created on a popup.
type Control struct {
	ID   ControlID
	Type ControlType
}

// Valid reports whether the control was created.
func (c Control) Valid() bool {
	return c.ID > 0
}

// Popup is a window opened through a Bridge.
type Popup struct {
	bridge   *Bridge
	id       WindowID
	title    string
	closed   bool
	controls []Control
}

// ID returns the host window id.
func (p *Popup) ID() WindowID { return p.id }

// Title returns the popup title.
func (p *Popup) Title() string { return p.title }

// Closed reports whether the popup was destroyed or closed by the user.
func (p *Popup) Closed() bool { return p.closed }

// Controls returns the controls created on the popup.
func (p *Popup) Controls() []Control { return p.controls }

func (p *Popup) add(spec ControlSpec) Control {
	if p == nil || p.closed || !p.bridge.available() {
		return Control{}
	}
	id := p.bridge.host.AddControl(p.id, spec)
	if id <= 0 {
		return Control{}
	}
	c := Control{ID: id, Type: spec.Type}
	p.bridge.types[id] = spec.Type
	p.controls = append(p.controls, c)
	return c
}

// AddButton adds a push button running onClick.
func (p *Popup) AddButton(text string, x, y, width int, onClick func()) Control {
	return p.add(ControlSpec{Type: ControlButton, Text: text, X: x, Y: y, Width: width, Height: 1, OnClick: onClick})
}

// AddCheckbox adds a checkbox.
func (p *Popup) AddCheckbox(text string, x, y int, checked bool) Control {
	return p.add(ControlSpec{Type: ControlCheckbox, Text: text, X: x, Y: y, Height: 1, Checked: checked})
}

// AddDropdown adds a dropdown showing selected among items.
func (p *Popup) AddDropdown(items []string, selected string, x, y, width int) Control {
	return p.add(ControlSpec{Type: ControlDropdown, Text: selected, Items: items, X: x, Y: y, Width: width, Height: 1})
}

// AddLabel adds static text.
func (p *Popup) AddLabel(text string, x, y int) Control {
	return p.add(ControlSpec{Type: ControlLabel, Text: text, X: x, Y: y, Height: 1})
}

// AddTextBox adds a single line text input.
func (p *Popup) AddTextBox(text string, x, y, width int) Control {
	return p.add(ControlSpec{Type: ControlTextBox, Text: text, X: x, Y: y, Width: width, Height: 1})
}
