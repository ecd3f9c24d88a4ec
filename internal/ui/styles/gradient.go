package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackGray stands in for colors that are not #rrggbb.
var fallbackGray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Banner renders a bold title whose color runs from the theme's primary
// to its secondary color, one grapheme at a time.
func Banner(text string) string {
	th := T()
	parts := graphemes(text)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Render(text)
	}
	var b strings.Builder
	for i, g := range parts {
		c := Blend(th.Primary, th.Secondary, float64(i)/float64(len(parts)-1))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(g))
	}
	return b.String()
}

// Blend returns the color at position t, from 0 to 1, between from and to.
// Colors are mixed in HCL space.
func Blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	t = min(max(t, 0), 1)
	return lipgloss.Color(toColorful(from).BlendHcl(toColorful(to), t).Clamped().Hex())
}

func graphemes(text string) []string {
	var out []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	hex := string(c)
	if len(hex) != 7 || hex[0] != '#' {
		return fallbackGray
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return fallbackGray
	}
	return col
}
