// Package overlay draws rendered boxes over a rendered base view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws box over base with its top-left corner at column x, row y.
// Every cell covered by the box replaces the base, spaces included.
// ANSI styling on both sides is kept.
func Place(base, box string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}
		baseLines[row] = splice(baseLines[row], line, x, x+w, width)
	}
	return strings.Join(baseLines, "\n")
}

// Compose overlays content on top of a base view.
// Leading and trailing spaces of each overlay line are transparent; the
// visible span in between replaces the base at the same position.
func Compose(base, overlay string, width, _ int) string {
	baseLines := strings.Split(base, "\n")

	for i, overlayLine := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		startCol := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		endCol := startCol + ansi.StringWidth(trimmed[startCol:])

		content := ansi.Cut(overlayLine, startCol, endCol)
		baseLines[i] = splice(baseLines[i], content, startCol, endCol, width)
	}

	return strings.Join(baseLines, "\n")
}

// splice replaces columns [from, to) of line with content, padding the
// line to width first.
func splice(line, content string, from, to, width int) string {
	if from < 0 {
		content = ansi.Cut(content, -from, to-from)
		from = 0
	}
	if to > width {
		content = ansi.Truncate(content, width-from, "")
		to = width
	}
	if from >= to {
		return line
	}
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	result := ansi.Cut(line, 0, from) + content
	if to < width {
		result += ansi.Cut(line, to, width)
	}
	return result
}
