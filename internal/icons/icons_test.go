//nolint:goconst // test cases intentionally repeat strings for readability
package icons

import "testing"

func TestInit(t *testing.T) {
	tests := []struct {
		name          string
		style         string
		expectedStyle Style
	}{
		{"nerd style", "nerd", StyleNerd},
		{"unicode style", "unicode", StyleUnicode},
		{"none style", "none", StyleNone},
		{"empty string defaults to none", "", StyleNone},
		{"unknown style defaults to none", "invalid", StyleNone},
		{"case sensitive - NERD defaults to none", "NERD", StyleNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)

			switch tt.expectedStyle {
			case StyleNerd:
				if current != nerdIcons {
					t.Error("expected nerd icons to be active")
				}
			case StyleUnicode:
				if current != unicodeIcons {
					t.Error("expected unicode icons to be active")
				}
			case StyleNone:
				if current != noneIcons {
					t.Error("expected none icons to be active")
				}
			}
		})
	}

	// Reset to default
	Init("none")
}

func TestHeaderIcons(t *testing.T) {
	tests := []struct {
		style     string
		wantClose string
		wantBack  string
	}{
		{"none", "x", "<"},
		{"unicode", "✕", "←"},
		{"nerd", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			defer Init("none")

			if got := Close(); got != tt.wantClose {
				t.Errorf("Close() = %q, want %q", got, tt.wantClose)
			}
			if got := Back(); got != tt.wantBack {
				t.Errorf("Back() = %q, want %q", got, tt.wantBack)
			}
			if Prev() == "" || Next() == "" {
				t.Error("pager arrows must never be empty")
			}
		})
	}
}

func TestFormatSearch(t *testing.T) {
	Init("none")
	if got := FormatSearch("Search"); got != "Search" {
		t.Errorf("FormatSearch() = %q, want %q", got, "Search")
	}

	Init("unicode")
	defer Init("none")
	if got := FormatSearch("Search"); got != "⌕ Search" {
		t.Errorf("FormatSearch() = %q, want %q", got, "⌕ Search")
	}
}

func TestCurrent_TabIcons(t *testing.T) {
	Init("unicode")
	defer Init("none")

	ic := Current()
	for name, icon := range map[string]string{
		"pokemon":  ic.Pokemon,
		"trainers": ic.Trainers,
		"routes":   ic.Routes,
		"tms":      ic.TMs,
		"misc":     ic.Misc,
	} {
		if icon == "" {
			t.Errorf("unicode %s icon is empty", name)
		}
	}
}
