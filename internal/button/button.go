// Package button provides the clickable regions of the overlay.
package button

import "github.com/llehouerou/dexlog/internal/navigator"

// Box is a rectangle in canvas cells.
type Box struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Kind selects how a button is drawn.
type Kind int

const (
	// KindText is a label with a click handler.
	KindText Kind = iota
	// KindCell is a grid entry with a frame.
	KindCell
	// KindIcon is a single glyph.
	KindIcon
	// KindLabel is drawn but never clicked.
	KindLabel
)

// Button is a clickable region of the overlay.
type Button struct {
	ID    string
	Tab   navigator.TabID
	Box   Box
	Label string
	Kind  Kind
	// Selected draws the button highlighted.
	Selected bool
	// Color overrides the label colour when set.
	Color string
	// Image is drawn inside the box when set.
	Image string
	// PageVisible is the page of a grid button, zero for buttons on every page.
	PageVisible int
	// RecordID identifies the record behind a grid button.
	RecordID int

	// Visible overrides the default visibility when set.
	Visible func(navigator.State) bool
	// InGrid tells whether a grid button passes the filter.
	InGrid func(filter string) bool
	// OnClick runs when the button is clicked.
	OnClick func()
	// UpdateSelf runs once per frame before drawing.
	UpdateSelf func(*Button)
}

// IsVisible reports whether the button is shown for the state.
// Grid buttons are shown on their tab and page only.
func (b *Button) IsVisible(st navigator.State) bool {
	if b.Visible != nil {
		return b.Visible(st)
	}
	if b.Tab != st.Tab {
		return false
	}
	return b.PageVisible == 0 || b.PageVisible == st.Page
}

// Clickable reports whether the button reacts to clicks.
func (b *Button) Clickable() bool {
	return b.Kind != KindLabel && b.OnClick != nil
}

// HitTest returns the button under the point, or nil. Buttons are checked
// in order and the last visible match wins.
func HitTest(buttons []*Button, st navigator.State, x, y int) *Button {
	for i := len(buttons) - 1; i >= 0; i-- {
		b := buttons[i]
		if !b.Clickable() || !b.IsVisible(st) {
			continue
		}
		if b.Box.Contains(x, y) {
			return b
		}
	}
	return nil
}

// Visible returns the buttons shown for the state, in order.
func Visible(buttons []*Button, st navigator.State) []*Button {
	out := make([]*Button, 0, len(buttons))
	for _, b := range buttons {
		if b.IsVisible(st) {
			out = append(out, b)
		}
	}
	return out
}
