package styles

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color `yaml:"primary"`   // Purple - selected tabs, active states
	Secondary lipgloss.Color `yaml:"secondary"` // Gold/orange - back icon, highlights

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color `yaml:"fg_base"`   // Primary text (bright)
	FgMuted  lipgloss.Color `yaml:"fg_muted"`  // Secondary text (dimmed)
	FgSubtle lipgloss.Color `yaml:"fg_subtle"` // Tertiary text (very dim)

	// Backgrounds
	BgBase   lipgloss.Color `yaml:"bg_base"`   // Overlay background
	BgCell   lipgloss.Color `yaml:"bg_cell"`   // Grid cell background
	BgCursor lipgloss.Color `yaml:"bg_cursor"` // Selected cell background
	Shadow   lipgloss.Color `yaml:"shadow"`    // Text shadow plate

	// Borders
	Border      lipgloss.Color `yaml:"border"`       // Unfocused panel borders
	BorderFocus lipgloss.Color `yaml:"border_focus"` // Focused panel borders

	// Status colors
	Success lipgloss.Color `yaml:"success"` // Green - defeated trainers
	Error   lipgloss.Color `yaml:"error"`   // Red - errors, close icon
	Warning lipgloss.Color `yaml:"warning"` // Yellow/orange - warnings

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style // Default text
	Muted   lipgloss.Style // Dimmed text
	Subtle  lipgloss.Style // Very dim text
	Title   lipgloss.Style // Bold, bright
	Active  lipgloss.Style // Selected entry
	Cursor  lipgloss.Style // Cursor background highlight
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	// Bright purple accent
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	// Text hierarchy (grayscale)
	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	// Backgrounds
	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCell:   lipgloss.Color("#242424"),
	BgCursor: lipgloss.Color("#303030"),
	Shadow:   lipgloss.Color("#101010"),

	// Borders
	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	// Status
	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

var current = defaultTheme

// T returns the active theme.
func T() *Theme {
	return &current
}

// Default returns a copy of the built-in theme.
func Default() Theme {
	return defaultTheme
}

// Use makes th the active theme.
func Use(th Theme) {
	th.styles = nil
	current = th
}

// Load reads a YAML theme file. Colors missing from the file keep their
// default value.
func Load(path string) (Theme, error) {
	th := defaultTheme
	data, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read theme: %w", err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return defaultTheme, fmt.Errorf("parse theme %s: %w", path, err)
	}
	th.styles = nil
	return th, nil
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Active: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
