package logoverlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/icons"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/session"
	"github.com/llehouerou/dexlog/internal/tabs"
)

type recordingForms struct {
	opened []string
}

func (f *recordingForms) OpenLog()      { f.opened = append(f.opened, "log") }
func (f *recordingForms) OpenSearch()   { f.opened = append(f.opened, "search") }
func (f *recordingForms) LoadData()     { f.opened = append(f.opened, "load") }
func (f *recordingForms) SaveData()     { f.opened = append(f.opened, "save") }
func (f *recordingForms) OpenSettings() { f.opened = append(f.opened, "settings") }

func sampleLog(seed string) *rlog.Log {
	log := rlog.New("/logs/emerald.log")
	log.Seed = seed
	for i := 1; i <= 120; i++ {
		log.AddPokemon(&rlog.Pokemon{ID: i, Name: "MON" + string(rune('A'+i%26)) + string(rune('A'+i/26))})
	}
	log.AddPokemon(&rlog.Pokemon{ID: 200, Name: "PIKACHU", Moves: []rlog.LevelMove{{Level: 1, Move: "THUNDERSHOCK"}}})
	log.Pokemon[7].Evolutions = []int{8}
	log.Trainers[1] = &rlog.Trainer{ID: 1, Class: "LEADER", Name: "ROXANNE", Group: rlog.GroupGym, GymNumber: 1,
		Party: []rlog.PartyMember{{PokemonID: 7, Name: log.Pokemon[7].Name, Level: 12}}}
	return log
}

func newOverlay(t *testing.T) (*Overlay, *session.Tracker, *recordingForms) {
	t.Helper()
	icons.Init(string(icons.StyleUnicode))
	tracker := session.New("EMERALD")
	forms := &recordingForms{}
	o := New(Options{
		Text:    resources.MustDefault(),
		Layout:  tabs.Layout{Width: 80, Height: 24},
		Session: tracker,
		Screens: tracker,
		Forms:   forms,
	})
	o.LoadLog(sampleLog("1"))
	return o, tracker, forms
}

func findButton(t *testing.T, buttons []*button.Button, id string) *button.Button {
	t.Helper()
	for _, b := range buttons {
		if b.ID == id {
			return b
		}
	}
	require.Failf(t, "button not found", "id %s", id)
	return nil
}

func click(t *testing.T, o *Overlay, b *button.Button) {
	t.Helper()
	o.UpdateSelf()
	require.True(t, o.CheckInput(b.Box.X, b.Box.Y), "click on %s", b.ID)
}

func TestOverlay_EndToEnd(t *testing.T) {
	o, _, _ := newOverlay(t)
	nav := o.Navigator()

	assert.False(t, o.Displayed())

	o.Open()
	assert.True(t, o.Displayed())
	assert.Equal(t, navigator.TabPokemon, nav.CurrentTab())
	assert.Zero(t, nav.HistoryDepth())
	listState := nav.State()

	o.ShowPokemon(7)
	assert.Equal(t, navigator.TabPokemonZoom, nav.CurrentTab())
	assert.Equal(t, 7, nav.State().InfoID)
	assert.Equal(t, 1, nav.HistoryDepth())

	o.header.Icon().OnClick()
	assert.Equal(t, listState, nav.State())
	assert.Zero(t, nav.HistoryDepth())
}

func TestOverlay_ListPaging(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	st := o.Navigator().State()
	require.Greater(t, st.TotalPages, 1)

	next := findButton(t, o.header.Buttons(), "header/next")
	click(t, o, next)
	assert.Equal(t, 2, o.Navigator().State().Page)

	// A cell of page 2 is clickable, page 1 cells are hidden.
	var onPage2 *button.Button
	for _, b := range o.reg.Buttons(navigator.TabPokemon) {
		if b.Kind == button.KindCell && b.PageVisible == 2 {
			onPage2 = b
			break
		}
	}
	require.NotNil(t, onPage2)
	click(t, o, onPage2)
	assert.Equal(t, navigator.TabPokemonZoom, o.Navigator().CurrentTab())
	assert.Equal(t, onPage2.RecordID, o.Navigator().State().InfoID)

	o.Navigator().GoBack()
	assert.Equal(t, 2, o.Navigator().State().Page)
}

func TestOverlay_DetailToDetailKeepsOneEntry(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	o.ShowTrainer(1)

	member := findButton(t, o.reg.Buttons(navigator.TabTrainerZoom), "zoom/member/0")
	click(t, o, member)
	assert.Equal(t, navigator.TabPokemonZoom, o.Navigator().CurrentTab())

	evo := findButton(t, o.reg.Buttons(navigator.TabPokemonZoom), "zoom/evo/8")
	click(t, o, evo)
	assert.Equal(t, 8, o.Navigator().State().InfoID)
	assert.Equal(t, 1, o.Navigator().HistoryDepth())

	o.Navigator().GoBack()
	assert.Equal(t, navigator.TabPokemon, o.Navigator().CurrentTab())
}

func TestOverlay_CloseIconChangesScreen(t *testing.T) {
	tests := []struct {
		name     string
		game     string
		gameOver bool
		want     session.Screen
	}{
		{"tracker", "EMERALD", false, session.ScreenTracker},
		{"game over", "EMERALD", true, session.ScreenGameOver},
		{"no session", "", false, session.ScreenStartup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, tracker, _ := newOverlay(t)
			tracker.SetGame(tt.game)
			tracker.SetGameOver(tt.gameOver)
			tracker.ChangeScreen(session.ScreenStartup)
			o.Open()
			o.SetSearch("mon", tabs.SearchName)

			click(t, o, o.header.Icon())

			assert.False(t, o.Displayed())
			assert.False(t, o.Search().Active())
			assert.Zero(t, o.Navigator().HistoryDepth())
			assert.Equal(t, tt.want, tracker.Screen())
		})
	}
}

func TestOverlay_ClicksIgnoredWhileClosed(t *testing.T) {
	o, _, _ := newOverlay(t)
	assert.False(t, o.CheckInput(2, 0))
}

func TestOverlay_LastRegisteredWins(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	var got []string
	o.reg.Register(&stubTab{buttons: []*button.Button{
		{ID: "a", Tab: navigator.TabMisc, Box: button.Box{X: 5, Y: 10, W: 10, H: 1}, OnClick: func() { got = append(got, "a") }},
		{ID: "b", Tab: navigator.TabMisc, Box: button.Box{X: 8, Y: 10, W: 10, H: 1}, OnClick: func() { got = append(got, "b") }},
	}})
	o.ShowList(navigator.TabMisc, tabs.FilterAll)

	assert.True(t, o.CheckInput(9, 10))
	assert.True(t, o.CheckInput(6, 10))
	assert.Equal(t, []string{"b", "a"}, got)
}

type stubTab struct {
	buttons []*button.Button
}

func (s *stubTab) ID() navigator.TabID                       { return navigator.TabMisc }
func (s *stubTab) Caps() tabs.Capability                     { return 0 }
func (s *stubTab) Buttons() []*button.Button                 { return s.buttons }
func (s *stubTab) Build(*tabs.Context)                       {}
func (s *stubTab) Rebuild(*tabs.Context)                     {}
func (s *stubTab) Realign(string) int                        { return 1 }
func (s *stubTab) Filter() string                            { return tabs.FilterAll }
func (s *stubTab) Load(int) int                              { return 1 }
func (s *stubTab) InfoID() int                               { return navigator.NoInfo }
func (s *stubTab) CheckInput(int, int, navigator.State) bool { return false }
func (s *stubTab) Draw(canvas.Renderer, navigator.State)     {}

func TestOverlay_SearchResync(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	o.ShowList(navigator.TabTrainers, tabs.FilterGym)

	o.SearchMove("THUNDERSHOCK")

	st := o.Navigator().State()
	assert.Equal(t, navigator.TabPokemon, st.Tab)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 1, st.TotalPages)
	assert.Equal(t, 1, o.reg.PageOf(navigator.TabPokemon, 200))
	assert.Zero(t, o.reg.PageOf(navigator.TabPokemon, 1))

	o.ClearSearch()
	assert.Greater(t, o.Navigator().State().TotalPages, 1)
	assert.Equal(t, 1, o.reg.PageOf(navigator.TabPokemon, 1))
}

func TestOverlay_LoadLogIdentity(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	o.ShowPokemon(7)

	assert.False(t, o.LoadLog(sampleLog("1")), "same identity")
	assert.Equal(t, navigator.TabPokemonZoom, o.Navigator().CurrentTab())

	assert.True(t, o.LoadLog(sampleLog("2")))
	assert.Equal(t, navigator.TabPokemon, o.Navigator().CurrentTab())
	assert.Zero(t, o.Navigator().HistoryDepth())
	assert.True(t, o.Displayed())
}

func TestOverlay_SetLanguageKeepsPosition(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	o.ShowList(navigator.TabTrainers, tabs.FilterGym)
	o.ShowTrainer(1)
	before := o.Navigator().State()

	es, err := resources.Load("spanish")
	require.NoError(t, err)
	o.SetLanguage(es)

	assert.Equal(t, before, o.Navigator().State())
	assert.Equal(t, 1, o.Navigator().HistoryDepth())
	tab, _ := o.reg.Tab(navigator.TabTrainers)
	assert.Equal(t, tabs.FilterGym, tab.Filter())
}

func TestOverlay_ResizeRecountsPages(t *testing.T) {
	o, _, _ := newOverlay(t)
	o.Open()
	small := o.Navigator().State().TotalPages

	o.Resize(200, 60)

	assert.Less(t, o.Navigator().State().TotalPages, small)
}

func TestOverlay_MiscActionsOpenForms(t *testing.T) {
	o, _, forms := newOverlay(t)
	o.Open()
	o.ShowList(navigator.TabMisc, tabs.FilterAll)

	for _, id := range []string{"misc/action/open", "misc/action/save"} {
		click(t, o, findButton(t, o.reg.Buttons(navigator.TabMisc), id))
	}
	assert.Equal(t, []string{"log", "save"}, forms.opened)
}

func TestOverlay_Draw(t *testing.T) {
	o, _, _ := newOverlay(t)
	grid := canvas.New(80, 24)

	o.Draw(grid)
	assert.Empty(t, strings.TrimSpace(grid.PlainLine(0)), "closed overlay draws nothing")

	o.Open()
	o.UpdateSelf()
	o.Draw(grid)
	assert.Contains(t, grid.PlainLine(0), "Pokemon")
	assert.Contains(t, grid.PlainLine(0), "Page 1/")
	assert.Contains(t, grid.PlainLine(1), "─")
	assert.True(t, o.TakeDirty())
	assert.False(t, o.TakeDirty())
}
