package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func dots(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlace(t *testing.T) {
	box := "+--+\n|  |\n+--+"
	got := Place(dots(10, 5), box, 3, 1, 10)

	assert.Equal(t, strings.Join([]string{
		"..........",
		"...+--+...",
		"...|  |...",
		"...+--+...",
		"..........",
	}, "\n"), got)
}

func TestPlace_Clipped(t *testing.T) {
	got := Place(dots(6, 2), "abcd\nefgh\nijkl", 4, 1, 6)
	assert.Equal(t, "......\n....ab", got)

	got = Place(dots(6, 1), "abcd", -2, 0, 6)
	assert.Equal(t, "cd....", got)
}

func TestPlace_KeepsStyles(t *testing.T) {
	base := "\x1b[31m" + strings.Repeat("r", 8) + "\x1b[0m"
	got := Place(base, "\x1b[32mGG\x1b[0m", 2, 0, 8)

	assert.Equal(t, "rrGGrrrr", ansi.Strip(got))
	assert.Contains(t, got, "\x1b[32m")
}

func TestPlace_ShortBaseLinePadded(t *testing.T) {
	got := Place("ab", "X", 4, 0, 6)
	assert.Equal(t, "ab  X ", got)
}

func TestCompose_TransparentEdges(t *testing.T) {
	over := "\n   hi   \n"
	got := Compose(dots(8, 3), over, 8, 3)

	assert.Equal(t, "........\n...hi...\n........", got)
}

func TestCompose_InnerSpacesOpaque(t *testing.T) {
	got := Compose(dots(8, 1), " a  b", 8, 1)
	assert.Equal(t, ".a  b...", got)
}
