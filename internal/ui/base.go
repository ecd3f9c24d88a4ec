// Package ui holds what the terminal components of dexlog share.
package ui

// Area is the terminal region a component draws into. Embed it to get
// SetSize and the accessors.
type Area struct {
	width, height int
}

// SetSize sets the region, in cells.
func (a *Area) SetSize(width, height int) {
	a.width = max(width, 0)
	a.height = max(height, 0)
}

func (a Area) Width() int  { return a.width }
func (a Area) Height() int { return a.height }

// Empty reports whether nothing can be drawn.
func (a Area) Empty() bool {
	return a.width == 0 || a.height == 0
}
