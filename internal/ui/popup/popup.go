// Package popup renders centered dialogs over the main view.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dexlog/internal/ui/render"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Popup defines the contract for modal popup components.
type Popup interface {
	// Init returns any initial command (e.g., focus text input).
	Init() tea.Cmd

	// Update handles messages and returns updated popup + command.
	Update(msg tea.Msg) (Popup, tea.Cmd)

	// View renders the popup content.
	View() string

	// SetSize sets the available dimensions for the popup content.
	SetSize(width, height int)
}

// Dialog is a centered box with a title, content lines and a footer.
type Dialog struct {
	Title   string
	Content string
	Footer  string
	Width   int // 0 = auto-fit content
}

// Render returns the dialog centered in a termWidth x termHeight area,
// ready to be composed over the base view.
func (d *Dialog) Render(termWidth, termHeight int) string {
	th := styles.T()

	inner := d.Width
	if inner == 0 {
		inner = max(maxLineWidth(d.Content), render.Width(d.Title), render.Width(d.Footer))
	}
	inner = max(1, min(inner, termWidth-4))

	lines := make([]string, 0, strings.Count(d.Content, "\n")+4)
	if d.Title != "" {
		lines = append(lines, center(th.S().Title.Render(render.Truncate(d.Title, inner)), inner), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		lines = append(lines, render.Truncate(line, inner))
	}
	if d.Footer != "" {
		lines = append(lines, "", center(th.S().Subtle.Render(render.Truncate(d.Footer, inner)), inner))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Width(inner + 2).
		Render(strings.Join(lines, "\n"))

	return Center(box, termWidth, termHeight)
}

func maxLineWidth(s string) int {
	maxW := 0
	for line := range strings.SplitSeq(s, "\n") {
		maxW = max(maxW, lipgloss.Width(line))
	}
	return maxW
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// Center pads pre-rendered content so it sits in the middle of the area.
func Center(content string, termWidth, termHeight int) string {
	lines := strings.Split(content, "\n")
	boxWidth := maxLineWidth(content)

	padTop := max(0, (termHeight-len(lines))/2)
	padLeft := max(0, (termWidth-boxWidth)/2)

	var sb strings.Builder
	for range padTop {
		sb.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat(" ", padLeft))
		sb.WriteString(line)
	}
	return sb.String()
}
