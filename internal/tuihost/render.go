package tuihost

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/ui/overlay"
	"github.com/llehouerou/dexlog/internal/ui/render"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Window frame sizes around the content area.
const (
	frameBorder = 1
	framePadX   = 1
	titleRows   = 2
)

type geometry struct {
	x, y, w, h         int
	contentX, contentY int
}

func (g geometry) contains(x, y int) bool {
	return x >= g.x && x < g.x+g.w && y >= g.y && y < g.y+g.h
}

func (h *Host) geometry(w *window) geometry {
	g := geometry{
		w: w.spec.Width + 2*frameBorder + 2*framePadX,
		h: w.spec.Height + 2*frameBorder + titleRows,
	}
	if w.spec.HasPosition {
		g.x, g.y = w.spec.X, w.spec.Y
	} else {
		g.x = max(0, (h.width-g.w)/2)
		g.y = max(0, (h.height-g.h)/2)
	}
	g.contentX = g.x + frameBorder + framePadX
	g.contentY = g.y + frameBorder + titleRows
	return g
}

// View implements popup.Popup: the top window with its frame.
func (h *Host) View() string {
	w := h.top()
	if w == nil {
		return ""
	}
	th := styles.T()

	grid := canvas.New(w.spec.Width, w.spec.Height)
	for _, c := range w.controls {
		drawControl(grid, c, c == w.focused())
	}

	title := th.S().Title.Render(render.Truncate(w.spec.Title, w.spec.Width))
	pad := max(0, (w.spec.Width-lipgloss.Width(title))/2)
	content := strings.Repeat(" ", pad) + title + "\n\n" + grid.Render()

	border := th.Border
	if w.spec.BlockInput {
		border = th.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, framePadX).
		Width(w.spec.Width + 2*framePadX).
		Render(content)
}

// Compose draws the top window over base.
func (h *Host) Compose(base string) string {
	w := h.top()
	if w == nil {
		return base
	}
	g := h.geometry(w)
	return overlay.Place(base, h.View(), g.x, g.y, h.width)
}

func drawControl(grid *canvas.Grid, c *control, focused bool) {
	th := styles.T()
	fg := canvas.Color(th.FgBase)
	if !c.enabled() {
		fg = canvas.Color(th.FgSubtle)
	}
	x, y, w := c.spec.X, c.spec.Y, c.width()

	switch c.spec.Type {
	case formbridge.ControlButton:
		grid.FillRect(x, y, w, 1, canvas.Color(th.BgCursor))
		label := render.Truncate(c.spec.Text, max(0, w-2))
		grid.Text(x+(w-runewidth.StringWidth(label))/2, y, label, canvas.Color(th.Primary), "")
	case formbridge.ControlCheckbox:
		box := "[ ] "
		if c.checked {
			box = "[x] "
		}
		grid.Text(x, y, box+c.spec.Text, fg, "")
	case formbridge.ControlDropdown:
		grid.FillRect(x, y, w, 1, canvas.Color(th.BgCell))
		item := ""
		if c.selected < len(c.spec.Items) {
			item = c.spec.Items[c.selected]
		}
		grid.Text(x, y, "‹"+render.Truncate(item, max(0, w-2))+"›", fg, "")
	case formbridge.ControlTextBox:
		grid.FillRect(x, y, w, 1, canvas.Color(th.BgCell))
		value := c.input.Value()
		if focused {
			value += "█"
		}
		grid.Text(x, y, tail(value, w), fg, "")
	default:
		grid.Text(x, y, c.spec.Text, fg, "")
	}
}

// tail returns the rightmost part of s fitting in width cells.
func tail(s string, width int) string {
	for s != "" && runewidth.StringWidth(s) > width {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
	}
	return s
}
