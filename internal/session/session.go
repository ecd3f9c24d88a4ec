// Package session tracks the game being played and the application screen
// shown when the overlay is closed.
package session

// Screen is a screen of the surrounding application.
type Screen int

const (
	// ScreenTracker is the normal tracking screen.
	ScreenTracker Screen = iota
	// ScreenStartup is shown when no game session is active.
	ScreenStartup
	// ScreenGameOver is shown once the run has ended.
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenStartup:
		return "startup"
	case ScreenGameOver:
		return "game-over"
	default:
		return "tracker"
	}
}

// Session describes the current game.
type Session interface {
	Active() bool
	GameOver() bool
	GameName() string
}

// Screens switches the application screen.
type Screens interface {
	ChangeScreen(Screen)
}

// Fallback returns the screen to show when the overlay closes.
func Fallback(s Session) Screen {
	switch {
	case s == nil || !s.Active():
		return ScreenStartup
	case s.GameOver():
		return ScreenGameOver
	default:
		return ScreenTracker
	}
}

// Tracker is the in-process session and screen state.
type Tracker struct {
	game     string
	gameOver bool
	screen   Screen
	onChange func(Screen)
}

// New creates a tracker for game. An empty name means no active session.
func New(game string) *Tracker {
	t := &Tracker{game: game}
	t.screen = Fallback(t)
	return t
}

// OnChange registers a callback run after every screen change.
func (t *Tracker) OnChange(fn func(Screen)) {
	t.onChange = fn
}

// Active implements Session.
func (t *Tracker) Active() bool { return t.game != "" }

// GameOver implements Session.
func (t *Tracker) GameOver() bool { return t.gameOver }

// GameName implements Session.
func (t *Tracker) GameName() string { return t.game }

// SetGame starts a session for game, or ends it when game is empty.
func (t *Tracker) SetGame(game string) {
	t.game = game
	t.gameOver = false
}

// SetGameOver marks the run as ended.
func (t *Tracker) SetGameOver(over bool) {
	t.gameOver = over
}

// Screen returns the current application screen.
func (t *Tracker) Screen() Screen { return t.screen }

// ChangeScreen implements Screens.
func (t *Tracker) ChangeScreen(s Screen) {
	t.screen = s
	if t.onChange != nil {
		t.onChange(s)
	}
}

var (
	_ Session = (*Tracker)(nil)
	_ Screens = (*Tracker)(nil)
)
