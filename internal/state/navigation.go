package state

import (
	"database/sql"
	"errors"

	"github.com/llehouerou/dexlog/internal/navigator"
)

// NavigationState is where the overlay was when it was last used.
type NavigationState struct {
	Tab    navigator.TabID
	Page   int
	InfoID int
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`SELECT tab, page, info_id FROM navigation_state WHERE id = 1`)

	var state NavigationState
	err := row.Scan(&state.Tab, &state.Page, &state.InfoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, tab, page, info_id)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tab = excluded.tab,
			page = excluded.page,
			info_id = excluded.info_id
	`, state.Tab, max(state.Page, 1), state.InfoID)

	return err
}
