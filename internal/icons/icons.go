package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Pokemon  string
	Trainers string
	Routes   string
	TMs      string
	Misc     string
	Close    string
	Back     string
	Prev     string
	Next     string
	Defeated string
	Search   string
}

var (
	nerdIcons = Icons{
		Pokemon:  "󰐝 ", // nf-md-pokeball
		Trainers: " ", // nf-fa-user
		Routes:   " ", // nf-fa-map
		TMs:      " ", // nf-fa-hdd_o
		Misc:     " ", // nf-fa-cog
		Close:    "",  // nf-fa-close
		Back:     "",  // nf-fa-arrow_left
		Prev:     "",  // nf-fa-chevron_left
		Next:     "",  // nf-fa-chevron_right
		Defeated: "",  // nf-fa-check
		Search:   " ", // nf-fa-search
	}

	unicodeIcons = Icons{
		Pokemon:  "◓ ",
		Trainers: "☺ ",
		Routes:   "⌂ ",
		TMs:      "◈ ",
		Misc:     "≡ ",
		Close:    "✕",
		Back:     "←",
		Prev:     "◀",
		Next:     "▶",
		Defeated: "✓",
		Search:   "⌕ ",
	}

	noneIcons = Icons{
		Close:    "x",
		Back:     "<",
		Prev:     "<",
		Next:     ">",
		Defeated: "*",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Close returns the close icon of the header bar.
func Close() string {
	return current.Close
}

// Back returns the back icon of the header bar.
func Back() string {
	return current.Back
}

// Prev returns the previous page arrow.
func Prev() string {
	return current.Prev
}

// Next returns the next page arrow.
func Next() string {
	return current.Next
}

// Defeated returns the marker shown next to beaten trainers.
func Defeated() string {
	return current.Defeated
}

// FormatSearch formats a search label with the appropriate icon.
func FormatSearch(label string) string {
	return current.Search + label
}
