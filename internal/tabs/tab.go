// Package tabs builds the paged button grids of the overlay tabs.
package tabs

import (
	"time"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// Capability flags the optional operations a tab supports.
type Capability uint8

const (
	// CanCheckInput tabs handle clicks no button took.
	CanCheckInput Capability = 1 << iota
	// CanDraw tabs paint more than their buttons.
	CanDraw
	// CanRebuild tabs rebuild their buttons when the log or language changes.
	CanRebuild
	// CanRealign tabs lay out a filtered grid.
	CanRealign
	// CanLoad tabs show a single record.
	CanLoad
)

// Has reports whether every flag of c2 is set.
func (c Capability) Has(c2 Capability) bool {
	return c&c2 == c2
}

// Tab is one overlay tab. Operations outside Caps are no-ops.
type Tab interface {
	ID() navigator.TabID
	Caps() Capability
	Buttons() []*button.Button

	// Build creates the buttons from the context.
	Build(ctx *Context)
	// Rebuild recreates the buttons keeping the current filter or record.
	Rebuild(ctx *Context)
	// Realign assigns grid pages for filter and returns the page count.
	Realign(filter string) int
	// Filter returns the filter of the last realign.
	Filter() string
	// Load builds the buttons for a record and returns the page count.
	Load(id int) int
	// InfoID returns the loaded record, or navigator.NoInfo.
	InfoID() int
	// CheckInput handles a click no button took.
	CheckInput(x, y int, st navigator.State) bool
	// Draw paints decorations under the buttons.
	Draw(r canvas.Renderer, st navigator.State)
}

// Actions are the navigation and form requests buttons make.
type Actions interface {
	ShowList(tab navigator.TabID, filter string)
	ShowPokemon(id int)
	ShowTrainer(id int)
	ShowRoute(id int)
	TurnPage(delta int)
	SearchMove(move string)
	OpenLog()
	OpenSearch()
	LoadData()
	SaveData()
	OpenSettings()
}

// Tracked is the player's tracked data shown next to the log.
type Tracked interface {
	Note(pokemonID int) string
	Encounters(pokemonID int) int
	Defeated(trainerID int) bool
	ToggleDefeated(trainerID int)
	// Summary describes the loaded tracked data, ok is false without data.
	Summary() (game string, savedAt time.Time, ok bool)
}

// NopTracked is used when no tracked data exists.
type NopTracked struct{}

func (NopTracked) Note(int) string    { return "" }
func (NopTracked) Encounters(int) int { return 0 }
func (NopTracked) Defeated(int) bool  { return false }
func (NopTracked) ToggleDefeated(int) {}
func (NopTracked) Summary() (string, time.Time, bool) {
	return "", time.Time{}, false
}

// Context is everything a tab builds from.
type Context struct {
	Log        *rlog.Log
	Text       *resources.Table
	Layout     Layout
	Search     *Search
	Tracked    Tracked
	Actions    Actions
	SpritesDir string
}

func (c *Context) tracked() Tracked {
	if c.Tracked == nil {
		return NopTracked{}
	}
	return c.Tracked
}

// base provides the no-op operations of a tab.
type base struct {
	id      navigator.TabID
	buttons []*button.Button
}

func (b *base) ID() navigator.TabID                       { return b.id }
func (b *base) Buttons() []*button.Button                 { return b.buttons }
func (b *base) Realign(string) int                        { return 1 }
func (b *base) Filter() string                            { return navigator.DefaultFilter }
func (b *base) Load(int) int                              { return 1 }
func (b *base) InfoID() int                               { return navigator.NoInfo }
func (b *base) CheckInput(int, int, navigator.State) bool { return false }
func (b *base) Draw(canvas.Renderer, navigator.State)     {}

func (b *base) add(btn *button.Button) *button.Button {
	btn.Tab = b.id
	b.buttons = append(b.buttons, btn)
	return btn
}

func (b *base) reset() {
	b.buttons = nil
}

func (b *base) addLabel(id string, x, y int, text string) *button.Button {
	return b.add(&button.Button{
		ID:    id,
		Box:   button.Box{X: x, Y: y, W: render.Width(text), H: 1},
		Label: text,
		Kind:  button.KindLabel,
	})
}
