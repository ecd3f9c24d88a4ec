// Package formbridge manages the popup windows the overlay opens through
// the host widget API. At most one popup is open at a time.
package formbridge

// WindowID identifies a host window. Zero is never a valid window.
type WindowID int

// ControlID identifies a host control. Zero is never a valid control.
type ControlID int

// ControlType is the kind of a control.
type ControlType int

const (
	ControlButton ControlType = iota + 1
	ControlCheckbox
	ControlDropdown
	ControlLabel
	ControlTextBox
)

func (t ControlType) String() string {
	switch t {
	case ControlButton:
		return "button"
	case ControlCheckbox:
		return "checkbox"
	case ControlDropdown:
		return "dropdown"
	case ControlLabel:
		return "label"
	case ControlTextBox:
		return "textbox"
	default:
		return "unknown"
	}
}

// Window describes a window to create.
type Window struct {
	Title         string
	Width, Height int
	// X and Y are used when HasPosition is set; otherwise the host centers
	// the window.
	X, Y        int
	HasPosition bool
	BlockInput  bool
	// OnClose runs when the user closes the window.
	OnClose func()
}

// ControlSpec describes a control to add to a window. Positions are
// relative to the window content.
type ControlSpec struct {
	Type          ControlType
	Text          string
	X, Y          int
	Width, Height int
	// Items are the dropdown choices.
	Items []string
	// Checked is the initial checkbox state.
	Checked bool
	// OnClick runs when a button is pressed.
	OnClick func()
}

// FileFilter restricts a file dialog to extensions, given without dot.
type FileFilter struct {
	Description string
	Extensions  []string
}

// Host is the widget API popups are built on.
type Host interface {
	// Available reports whether the host can show windows.
	Available() bool

	CreateWindow(w Window) WindowID
	DestroyWindow(id WindowID)
	AddControl(window WindowID, spec ControlSpec) ControlID

	Text(id ControlID) string
	SetText(id ControlID, text string)
	Property(id ControlID, name string) string
	SetProperty(id ControlID, name, value string)
	Checked(id ControlID) bool

	// OpenFile shows a native file dialog. It blocks and returns an empty
	// path on cancel.
	OpenFile(suggestedName, dir string, filters []FileFilter) string
}

// Suspender disables an input source. The returned function restores it.
type Suspender interface {
	Suspend() (restore func())
}

// SuspendFunc adapts a function to Suspender.
type SuspendFunc func() (restore func())

// Suspend implements Suspender.
func (f SuspendFunc) Suspend() func() {
	return f()
}
