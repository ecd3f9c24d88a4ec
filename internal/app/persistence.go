package app

import (
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/tabs"
)

// persistNavigation saves the overlay position when it changed.
func (m *Model) persistNavigation() {
	st := m.Overlay.Navigator().State()
	if st.Tab == navigator.TabNone {
		return
	}
	cur := state.NavigationState{Tab: st.Tab, Page: st.Page, InfoID: st.InfoID}
	if cur == m.lastNav {
		return
	}
	m.lastNav = cur
	m.StateMgr.SaveNavigation(cur)
}

// saveSession records the open files and the language.
func (m Model) saveSession() {
	err := m.StateMgr.SaveSession(state.Session{
		LogPath:  m.files.LogPath,
		DataPath: m.files.DataPath,
		Language: m.files.Language,
	})
	if err != nil {
		m.logger.Warn("save session", zap.Error(err))
	}
}

// restoreNavigation moves the closed overlay to a saved position so the
// next Open shows it.
func (m *Model) restoreNavigation(nav *state.NavigationState) {
	if nav == nil || nav.Tab == navigator.TabNone {
		return
	}
	switch nav.Tab {
	case navigator.TabPokemonZoom:
		m.Overlay.ShowPokemon(nav.InfoID)
	case navigator.TabTrainerZoom:
		m.Overlay.ShowTrainer(nav.InfoID)
	case navigator.TabRouteZoom:
		m.Overlay.ShowRoute(nav.InfoID)
	default:
		m.Overlay.ShowList(nav.Tab, tabs.FilterAll)
	}
	m.Overlay.TurnPage(nav.Page - navigator.DefaultPage)
	m.Overlay.Close()
	m.lastNav = *nav
}
