// Package canvas provides the drawing surface of the overlay.
package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color is a lipgloss color: an ANSI 256 index or a hex string.
// The empty color leaves the terminal default.
type Color string

// Renderer is the drawing API the overlay renders through.
type Renderer interface {
	FillRect(x, y, w, h int, bg Color)
	Line(x1, y1, x2, y2 int, fg Color)
	Image(path string, x, y, w, h int) error
	// Text draws s at x, y. A non-empty shadow paints behind the glyphs.
	Text(x, y int, s string, fg, shadow Color)
	Size() (width, height int)
}

type cell struct {
	r    rune
	fg   Color
	bg   Color
	cont bool // right half of a wide rune
}

// Grid is a Renderer backed by terminal cells.
type Grid struct {
	width  int
	height int
	cells  []cell
	images *imageCache
}

var _ Renderer = (*Grid)(nil)

// New creates a blank grid.
func New(width, height int) *Grid {
	g := &Grid{images: newImageCache()}
	g.Resize(width, height)
	return g
}

// Resize discards the content and sets new dimensions.
func (g *Grid) Resize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.cells = make([]cell, g.width*g.height)
	g.Clear()
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cell{r: ' '}
	}
}

// Size implements Renderer.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

func (g *Grid) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// FillRect implements Renderer.
func (g *Grid) FillRect(x, y, w, h int, bg Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			if c := g.at(col, row); c != nil {
				*c = cell{r: ' ', bg: bg}
			}
		}
	}
}

// Line implements Renderer. Only horizontal and vertical lines are drawn.
func (g *Grid) Line(x1, y1, x2, y2 int, fg Color) {
	switch {
	case y1 == y2:
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			g.setRune(x, y1, '─', fg)
		}
	case x1 == x2:
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			g.setRune(x1, y, '│', fg)
		}
	}
}

func (g *Grid) setRune(x, y int, r rune, fg Color) {
	c := g.at(x, y)
	if c == nil {
		return
	}
	c.r, c.fg, c.cont = r, fg, false
}

// Text implements Renderer. Text is clipped to the grid.
func (g *Grid) Text(x, y int, s string, fg, shadow Color) {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c := g.at(col, y); c != nil {
			c.r, c.fg, c.cont = r, fg, false
			if shadow != "" {
				c.bg = shadow
			}
		}
		if w == 2 {
			if c := g.at(col+1, y); c != nil {
				c.cont = true
				if shadow != "" {
					c.bg = shadow
				}
			}
		}
		col += w
	}
}

// Rune returns the rune at x, y, or zero outside the grid.
func (g *Grid) Rune(x, y int) rune {
	if c := g.at(x, y); c != nil {
		return c.r
	}
	return 0
}

// PlainLine returns row y as plain text.
func (g *Grid) PlainLine(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var sb strings.Builder
	for x := range g.width {
		c := g.cells[y*g.width+x]
		if !c.cont {
			sb.WriteRune(c.r)
		}
	}
	return sb.String()
}

// Render returns the grid as styled lines joined by newlines.
func (g *Grid) Render() string {
	lines := make([]string, g.height)
	for y := range g.height {
		lines[y] = g.renderLine(y)
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) renderLine(y int) string {
	var (
		out strings.Builder
		run strings.Builder
		fg  Color
		bg  Color
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle()
		if fg != "" {
			style = style.Foreground(lipgloss.Color(fg))
		}
		if bg != "" {
			style = style.Background(lipgloss.Color(bg))
		}
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for x := range g.width {
		c := g.cells[y*g.width+x]
		if c.cont {
			continue
		}
		if c.fg != fg || c.bg != bg {
			flush()
			fg, bg = c.fg, c.bg
		}
		run.WriteRune(c.r)
	}
	flush()
	return out.String()
}
