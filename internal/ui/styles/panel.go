package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered style of a popup form, using the active
// theme's border colors.
func PanelStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
