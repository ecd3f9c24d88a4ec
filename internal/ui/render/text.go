// Package render holds the text helpers used to fit log strings into grid
// cells and popups.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ellipsis     = "..."
	ellipsisRune = "…"
)

var titler = cases.Title(language.English)

// Sanitize drops invalid UTF-8 and control characters other than tab, and
// turns non-breaking spaces into spaces. Logs written by old randomizer
// builds carry both.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\u00a0':
			b.WriteByte(' ')
		case r == '\t' || !unicode.IsControl(r):
			b.WriteString(s[:size])
		}
		s = s[size:]
	}
	return b.String()
}

func clean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if r == '\u00a0' || (r != '\t' && unicode.IsControl(r)) {
			return false
		}
	}
	return true
}

// Truncate sanitizes s and cuts it to maxWidth cells, ending with "..."
// when it was cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, ellipsis)
}

// TruncateEllipsis cuts s, which may hold ANSI styling, to maxWidth cells
// ending with "…".
func TruncateEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, ellipsisRune)
}

// Width returns the display width of s in cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// TitleCase turns an upper-case log name like "MR. MIME" into "Mr. Mime".
func TitleCase(s string) string {
	return titler.String(strings.ToLower(Sanitize(s)))
}
