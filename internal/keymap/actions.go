// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionToggleOverlay Action = "toggle_overlay"
	ActionHelp          Action = "help"

	// Overlay navigation
	ActionBack     Action = "back"
	ActionNextPage Action = "next_page"
	ActionPrevPage Action = "prev_page"

	// Tab switching
	ActionViewPokemon  Action = "view_pokemon"
	ActionViewTrainers Action = "view_trainers"
	ActionViewRoutes   Action = "view_routes"
	ActionViewTMs      Action = "view_tms"
	ActionViewMisc     Action = "view_misc"

	// Search
	ActionSearch      Action = "search"
	ActionClearSearch Action = "clear_search"

	// Files and settings
	ActionOpenLog  Action = "open_log"
	ActionLoadData Action = "load_data"
	ActionSaveData Action = "save_data"
	ActionSettings Action = "settings"
)
