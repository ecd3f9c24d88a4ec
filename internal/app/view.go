package app

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dexlog/internal/keymap"
	"github.com/llehouerou/dexlog/internal/session"
	"github.com/llehouerou/dexlog/internal/ui/overlay"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// frame caches the last rendered overlay.
type frame struct {
	out   string
	valid bool
}

func (f *frame) invalidate() {
	f.valid = false
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	var base string
	if m.Overlay.Displayed() {
		base = m.overlayView()
	} else {
		base = m.screenView()
	}
	base = m.Host.Compose(base)
	if m.Help != nil {
		base = overlay.Compose(base, m.Help.View(), m.Width, m.Height)
	}
	return base
}

// overlayView renders the log overlay, redrawing only when it changed.
func (m Model) overlayView() string {
	if m.Overlay.TakeDirty() || !m.frame.valid {
		m.Canvas.Clear()
		m.Overlay.Draw(m.Canvas)
		m.frame.out = m.Canvas.Render()
		m.frame.valid = true
	}
	return m.frame.out
}

// screenView renders the application screen shown under a closed overlay.
func (m Model) screenView() string {
	m.frame.invalidate()
	th := styles.T()
	text := m.Overlay.Text()

	var title string
	switch m.Session.Screen() {
	case session.ScreenGameOver:
		title = text.Screens.GameOver
	case session.ScreenStartup:
		title = text.Screens.Startup
	default:
		title = fmt.Sprintf(text.Screens.Tracker, m.Session.GameName())
	}

	lines := []string{styles.Banner(title), ""}
	if log := m.Overlay.Log(); log != nil {
		lines = append(lines, th.S().Subtle.Render(filepath.Base(log.Path)))
	} else {
		lines = append(lines, th.S().Subtle.Render(text.Misc.NoLog))
	}
	lines = append(lines, "", th.S().Subtle.Render(fmt.Sprintf(text.Screens.Hint,
		m.firstKey(keymap.ActionToggleOverlay),
		m.firstKey(keymap.ActionHelp),
		m.firstKey(keymap.ActionQuit),
	)))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) firstKey(action keymap.Action) string {
	if keys := m.Keys.KeysFor(action); len(keys) > 0 {
		return keys[0]
	}
	return "?"
}
