// Package navigator provides the tab/page state machine of the log overlay.
package navigator

// TabID identifies an overlay tab.
type TabID int

const (
	// TabNone is the tab before the overlay is first displayed.
	TabNone TabID = iota
	TabPokemon
	TabPokemonZoom
	TabTrainers
	TabTrainerZoom
	TabRoutes
	TabRouteZoom
	TabTMs
	TabMisc
)

// DefaultTab is shown when no history remains.
const DefaultTab = TabPokemon

// IsDetail returns true for tabs showing a single record.
func (t TabID) IsDetail() bool {
	switch t {
	case TabPokemonZoom, TabTrainerZoom, TabRouteZoom:
		return true
	default:
		return false
	}
}

// PushesHistory returns true if entering this tab records where the user came from.
func (t TabID) PushesHistory() bool {
	return t.IsDetail()
}

// ListTab returns the list tab a detail tab belongs to.
// List tabs return themselves.
func (t TabID) ListTab() TabID {
	switch t {
	case TabPokemonZoom:
		return TabPokemon
	case TabTrainerZoom:
		return TabTrainers
	case TabRouteZoom:
		return TabRoutes
	default:
		return t
	}
}

func (t TabID) String() string {
	switch t {
	case TabNone:
		return "none"
	case TabPokemon:
		return "pokemon"
	case TabPokemonZoom:
		return "pokemon-zoom"
	case TabTrainers:
		return "trainers"
	case TabTrainerZoom:
		return "trainer-zoom"
	case TabRoutes:
		return "routes"
	case TabRouteZoom:
		return "route-zoom"
	case TabTMs:
		return "tms"
	case TabMisc:
		return "misc"
	default:
		return "unknown"
	}
}

// ListTabs are the tabs reachable from the header bar, in display order.
var ListTabs = []TabID{TabPokemon, TabTrainers, TabRoutes, TabTMs, TabMisc}
