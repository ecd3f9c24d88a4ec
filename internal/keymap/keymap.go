package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "overlay", "files"
}

// Bindings contains all key bindings, used for dispatch and help.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionToggleOverlay, []string{"tab", "l"}, "Show/hide log", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Overlay
	{ActionBack, []string{"backspace", "esc"}, "Back / close", "overlay"},
	{ActionNextPage, []string{"right", "pgdown", "]"}, "Next page", "overlay"},
	{ActionPrevPage, []string{"left", "pgup", "["}, "Previous page", "overlay"},
	{ActionViewPokemon, []string{"1"}, "Pokemon", "overlay"},
	{ActionViewTrainers, []string{"2"}, "Trainers", "overlay"},
	{ActionViewRoutes, []string{"3"}, "Routes", "overlay"},
	{ActionViewTMs, []string{"4"}, "TMs", "overlay"},
	{ActionViewMisc, []string{"5"}, "Misc", "overlay"},
	{ActionSearch, []string{"/"}, "Search", "overlay"},
	{ActionClearSearch, []string{"ctrl+u"}, "Clear search", "overlay"},

	// Files
	{ActionOpenLog, []string{"o", "ctrl+o"}, "Open log", "files"},
	{ActionLoadData, []string{"ctrl+l"}, "Load tracked data", "files"},
	{ActionSaveData, []string{"ctrl+s"}, "Save tracked data", "files"},
	{ActionSettings, []string{","}, "Settings", "files"},
}

// AppContexts lists the binding contexts in lookup order.
var AppContexts = []string{"overlay", "global", "files"}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
