// Package tuihost implements the overlay widget API in the terminal: popup
// windows drawn over the overlay and a native file dialog.
package tuihost

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/ui/popup"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// Control properties understood by Property and SetProperty.
const (
	PropChecked       = "Checked"
	PropSelectedIndex = "SelectedIndex"
	PropItems         = "Items"
	PropEnabled       = "Enabled"
)

// DialogFunc shows a file dialog and returns the chosen path, or "".
type DialogFunc func(suggestedName, dir string, filters []formbridge.FileFilter) string

type control struct {
	id       formbridge.ControlID
	spec     formbridge.ControlSpec
	input    textinput.Model
	checked  bool
	selected int
	props    map[string]string
}

func (c *control) width() int {
	if c.spec.Width > 0 {
		return c.spec.Width
	}
	w := render.Width(c.spec.Text)
	switch c.spec.Type {
	case formbridge.ControlButton, formbridge.ControlCheckbox:
		return w + 4
	default:
		return w
	}
}

func (c *control) contains(x, y int) bool {
	return y == c.spec.Y && x >= c.spec.X && x < c.spec.X+c.width()
}

func (c *control) enabled() bool {
	return c.props[PropEnabled] != "false"
}

type window struct {
	id       formbridge.WindowID
	spec     formbridge.Window
	controls []*control
	focus    int
}

func (w *window) textBoxes() []*control {
	var out []*control
	for _, c := range w.controls {
		if c.spec.Type == formbridge.ControlTextBox {
			out = append(out, c)
		}
	}
	return out
}

func (w *window) focused() *control {
	boxes := w.textBoxes()
	if len(boxes) == 0 {
		return nil
	}
	return boxes[w.focus%len(boxes)]
}

func (w *window) setFocus(i int) {
	boxes := w.textBoxes()
	if len(boxes) == 0 {
		return
	}
	w.focus = (i + len(boxes)) % len(boxes)
	for j, c := range boxes {
		if j == w.focus {
			c.input.Focus()
		} else {
			c.input.Blur()
		}
	}
}

// Host keeps the popup windows of the terminal.
type Host struct {
	windows  []*window
	controls map[formbridge.ControlID]*control
	nextWin  formbridge.WindowID
	nextCtl  formbridge.ControlID
	dialog   DialogFunc
	logger   *zap.Logger

	width, height int
}

var (
	_ formbridge.Host = (*Host)(nil)
	_ popup.Popup     = (*Host)(nil)
)

// Option configures a Host.
type Option func(*Host)

// WithDialog replaces the native file dialog.
func WithDialog(fn DialogFunc) Option {
	return func(h *Host) { h.dialog = fn }
}

// WithLogger sets the host logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// New creates a host without windows.
func New(opts ...Option) *Host {
	h := &Host{
		controls: make(map[formbridge.ControlID]*control),
		logger:   zap.NewNop(),
	}
	h.dialog = h.nativeOpenFile
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Available implements formbridge.Host.
func (h *Host) Available() bool { return true }

// CreateWindow implements formbridge.Host.
func (h *Host) CreateWindow(spec formbridge.Window) formbridge.WindowID {
	h.nextWin++
	h.windows = append(h.windows, &window{id: h.nextWin, spec: spec})
	return h.nextWin
}

func (h *Host) window(id formbridge.WindowID) (*window, int) {
	for i, w := range h.windows {
		if w.id == id {
			return w, i
		}
	}
	return nil, -1
}

// DestroyWindow implements formbridge.Host.
func (h *Host) DestroyWindow(id formbridge.WindowID) {
	w, i := h.window(id)
	if w == nil {
		return
	}
	for _, c := range w.controls {
		delete(h.controls, c.id)
	}
	h.windows = slices.Delete(h.windows, i, i+1)
}

// closeTop closes the top window as if the user dismissed it.
func (h *Host) closeTop() {
	w := h.top()
	if w == nil {
		return
	}
	h.DestroyWindow(w.id)
	if w.spec.OnClose != nil {
		w.spec.OnClose()
	}
}

// AddControl implements formbridge.Host.
func (h *Host) AddControl(win formbridge.WindowID, spec formbridge.ControlSpec) formbridge.ControlID {
	w, _ := h.window(win)
	if w == nil {
		return 0
	}
	h.nextCtl++
	c := &control{id: h.nextCtl, spec: spec, checked: spec.Checked, props: make(map[string]string)}
	switch spec.Type {
	case formbridge.ControlTextBox:
		c.input = textinput.New()
		c.input.Prompt = ""
		c.input.CharLimit = 256
		c.input.Width = max(1, spec.Width-1)
		c.input.SetValue(spec.Text)
	case formbridge.ControlDropdown:
		c.selected = max(0, slices.Index(spec.Items, spec.Text))
	}
	w.controls = append(w.controls, c)
	h.controls[c.id] = c
	if spec.Type == formbridge.ControlTextBox && len(w.textBoxes()) == 1 {
		w.setFocus(0)
	}
	return c.id
}

// Text implements formbridge.Host.
func (h *Host) Text(id formbridge.ControlID) string {
	c, ok := h.controls[id]
	if !ok {
		return ""
	}
	switch c.spec.Type {
	case formbridge.ControlTextBox:
		return c.input.Value()
	case formbridge.ControlDropdown:
		if c.selected < len(c.spec.Items) {
			return c.spec.Items[c.selected]
		}
		return ""
	default:
		return c.spec.Text
	}
}

// SetText implements formbridge.Host.
func (h *Host) SetText(id formbridge.ControlID, text string) {
	c, ok := h.controls[id]
	if !ok {
		return
	}
	switch c.spec.Type {
	case formbridge.ControlTextBox:
		c.input.SetValue(text)
	case formbridge.ControlDropdown:
		if i := slices.Index(c.spec.Items, text); i >= 0 {
			c.selected = i
		}
	default:
		c.spec.Text = text
	}
}

// Property implements formbridge.Host.
func (h *Host) Property(id formbridge.ControlID, name string) string {
	c, ok := h.controls[id]
	if !ok {
		return ""
	}
	switch name {
	case PropChecked:
		return strconv.FormatBool(c.checked)
	case PropSelectedIndex:
		return strconv.Itoa(c.selected)
	case PropItems:
		return strings.Join(c.spec.Items, ",")
	default:
		return c.props[name]
	}
}

// SetProperty implements formbridge.Host.
func (h *Host) SetProperty(id formbridge.ControlID, name, value string) {
	c, ok := h.controls[id]
	if !ok {
		return
	}
	switch name {
	case PropChecked:
		c.checked = value == "true"
	case PropSelectedIndex:
		if i, err := strconv.Atoi(value); err == nil && i >= 0 && i < len(c.spec.Items) {
			c.selected = i
		}
	case PropItems:
		c.spec.Items = strings.Split(value, ",")
		c.selected = min(c.selected, max(0, len(c.spec.Items)-1))
	default:
		c.props[name] = value
	}
}

// Checked implements formbridge.Host.
func (h *Host) Checked(id formbridge.ControlID) bool {
	c, ok := h.controls[id]
	return ok && c.checked
}

// OpenFile implements formbridge.Host. It blocks until the dialog closes.
func (h *Host) OpenFile(suggestedName, dir string, filters []formbridge.FileFilter) string {
	return h.dialog(suggestedName, dir, filters)
}

// --- Input ---

func (h *Host) top() *window {
	if len(h.windows) == 0 {
		return nil
	}
	return h.windows[len(h.windows)-1]
}

// HasWindow reports whether a popup is open.
func (h *Host) HasWindow() bool {
	return len(h.windows) > 0
}

// BlocksInput reports whether an open popup stops overlay input.
func (h *Host) BlocksInput() bool {
	for _, w := range h.windows {
		if w.spec.BlockInput {
			return true
		}
	}
	return false
}

// HandleClick dispatches a click at screen cell x, y. It returns true when
// the click landed on a popup.
func (h *Host) HandleClick(x, y int) bool {
	w := h.top()
	if w == nil {
		return false
	}
	g := h.geometry(w)
	if !g.contains(x, y) {
		return false
	}
	cx, cy := x-g.contentX, y-g.contentY
	for i := len(w.controls) - 1; i >= 0; i-- {
		c := w.controls[i]
		if !c.contains(cx, cy) || !c.enabled() {
			continue
		}
		h.activate(w, c)
		break
	}
	return true
}

func (h *Host) activate(w *window, c *control) {
	switch c.spec.Type {
	case formbridge.ControlButton:
		if c.spec.OnClick != nil {
			c.spec.OnClick()
		}
	case formbridge.ControlCheckbox:
		c.checked = !c.checked
	case formbridge.ControlDropdown:
		if len(c.spec.Items) > 0 {
			c.selected = (c.selected + 1) % len(c.spec.Items)
		}
	case formbridge.ControlTextBox:
		w.setFocus(slices.Index(w.textBoxes(), c))
	}
}

func (h *Host) defaultButton(w *window) *control {
	for _, c := range w.controls {
		if c.spec.Type == formbridge.ControlButton && c.enabled() {
			return c
		}
	}
	return nil
}

func (h *Host) handleKey(msg tea.KeyMsg) tea.Cmd {
	w := h.top()
	if w == nil {
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		h.closeTop()
		return nil
	case tea.KeyTab:
		w.setFocus(w.focus + 1)
		return nil
	case tea.KeyShiftTab:
		w.setFocus(w.focus - 1)
		return nil
	case tea.KeyEnter:
		if b := h.defaultButton(w); b != nil {
			h.activate(w, b)
		}
		return nil
	}
	c := w.focused()
	if c == nil {
		return nil
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// --- popup.Popup ---

// Init implements popup.Popup.
func (h *Host) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup. Keys go to the top window, left clicks
// to its controls.
func (h *Host) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h, h.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			h.HandleClick(msg.X, msg.Y)
		}
	}
	return h, nil
}

// SetSize implements popup.Popup.
func (h *Host) SetSize(width, height int) {
	h.width, h.height = width, height
}
