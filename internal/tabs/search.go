package tabs

import (
	"strings"

	"github.com/llehouerou/dexlog/internal/rlog"
)

// SearchField is the Pokémon attribute a search matches against.
type SearchField int

const (
	SearchName SearchField = iota
	SearchAbility
	SearchMove
)

// SearchFields lists the fields in display order.
var SearchFields = []SearchField{SearchName, SearchAbility, SearchMove}

// Search filters the Pokémon grid while active.
type Search struct {
	active bool
	term   string
	field  SearchField
}

// Set activates the search. An empty term clears it.
func (s *Search) Set(term string, field SearchField) {
	term = strings.TrimSpace(term)
	if term == "" {
		s.Clear()
		return
	}
	s.active = true
	s.term = term
	s.field = field
}

// Clear deactivates the search.
func (s *Search) Clear() {
	*s = Search{}
}

// Active returns true while a search filters the grid.
func (s *Search) Active() bool {
	return s != nil && s.active
}

// Term returns the search term.
func (s *Search) Term() string {
	return s.term
}

// Field returns the searched attribute.
func (s *Search) Field() SearchField {
	return s.field
}

// Matches tells whether p passes the search. Everything passes an
// inactive search.
func (s *Search) Matches(p *rlog.Pokemon) bool {
	if !s.Active() {
		return true
	}
	match := func(v string) bool { return MatchText(s.term, v) }
	switch s.field {
	case SearchAbility:
		return p.HasAbility(match)
	case SearchMove:
		return p.HasMove(match)
	default:
		return match(p.Name)
	}
}

// MatchText reports whether term matches value, ignoring case: either
// value starts with term once spaces and dashes are dropped from both,
// or term appears anywhere in value.
func MatchText(term, value string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	value = strings.ToLower(value)
	if strings.HasPrefix(compact(value), compact(term)) {
		return true
	}
	return strings.Contains(value, term)
}

func compact(s string) string {
	return strings.NewReplacer(" ", "", "-", "", ".", "").Replace(s)
}
