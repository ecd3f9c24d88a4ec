package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/llehouerou/dexlog/internal/config"
	"github.com/llehouerou/dexlog/internal/errmsg"
	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/notify"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/session"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/trackerdata"
	"github.com/llehouerou/dexlog/internal/tuihost"
	"github.com/llehouerou/dexlog/internal/ui/testutil"
)

const testLog = `Randomizer Version: 4.6.1
Random Seed: 42

--Pokemon Base Stats & Types--
NUM|NAME      |TYPE          |  HP| ATK| DEF|SATK|SDEF| SPD|ABILITY1   |ABILITY2    |ITEM
  1|BULBASAUR |GRASS/POISON  |  45|  49|  49|  65|  65|  45|OVERGROW   |CHLOROPHYLL |
  7|SQUIRTLE  |WATER         |  44|  48|  65|  50|  64|  43|TORRENT    |RAIN DISH   |
 25|PIKACHU   |ELECTRIC      |  35|  55|  30|  50|  40|  90|STATIC     |STATIC      |
`

func writeLog(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(testLog), 0o600))
	return path
}

type testModel struct {
	Model
	t       *testing.T
	mgr     *state.Mock
	dialogs []string
	chosen  string
	bell    *bytes.Buffer

	// duringDialog runs while the file dialog is open.
	duringDialog func()
}

func newTestModel(t *testing.T, cfg *config.Config, mgr *state.Mock) *testModel {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	if mgr == nil {
		mgr = state.NewMock()
	}
	tm := &testModel{t: t, mgr: mgr}
	dialog := func(_, dir string, _ []formbridge.FileFilter) string {
		tm.dialogs = append(tm.dialogs, dir)
		if tm.duringDialog != nil {
			tm.duringDialog()
		}
		return tm.chosen
	}
	tm.Model = New(cfg, mgr, zaptest.NewLogger(t), tuihost.WithDialog(dialog))
	tm.bell = &bytes.Buffer{}
	tm.SetBellOutput(tm.bell)
	t.Cleanup(tm.cancel)
	tm.send(tea.WindowSizeMsg{Width: 100, Height: 30})
	return tm
}

// send runs msg through Update and every command it returns, except the
// frame ticks.
func (tm *testModel) send(msg tea.Msg) {
	tm.t.Helper()
	next, cmd := tm.Update(msg)
	tm.Model = next.(Model)
	for _, m := range collect(cmd) {
		tm.send(m)
	}
}

func (tm *testModel) key(k string) {
	tm.t.Helper()
	switch k {
	case "tab":
		tm.send(tea.KeyMsg{Type: tea.KeyTab})
	case "esc":
		tm.send(tea.KeyMsg{Type: tea.KeyEsc})
	case "enter":
		tm.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "ctrl+s":
		tm.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	case "ctrl+l":
		tm.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	case "ctrl+u":
		tm.send(tea.KeyMsg{Type: tea.KeyCtrlU})
	default:
		tm.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

// init runs the startup loading synchronously.
func (tm *testModel) init() InitResult {
	tm.t.Helper()
	res, ok := LoadCmd(tm.ctx, tm.initReq)().(InitResult)
	require.True(tm.t, ok)
	tm.send(res)
	return res
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, TickMsg, WatchStartedMsg:
		return nil
	case tea.QuitMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func TestNew_StartupScreen(t *testing.T) {
	tm := newTestModel(t, nil, nil)

	assert.Equal(t, session.ScreenStartup, tm.Session.Screen())
	assert.False(t, tm.Overlay.Displayed())
	view := testutil.StripANSI(tm.View())
	assert.Contains(t, view, "No active session")
	assert.Contains(t, view, "No log loaded")
}

func TestInit_RestoresSession(t *testing.T) {
	dir := t.TempDir()
	logPath := writeLog(t, dir, "emerald.log")
	dataPath, err := trackerdata.Save(t.Context(), filepath.Join(dir, "run"), trackerdata.New("Emerald"))
	require.NoError(t, err)

	mgr := state.NewMock()
	require.NoError(t, mgr.SaveSession(state.Session{LogPath: logPath, DataPath: dataPath, Language: "spanish"}))
	mgr.SaveNavigation(state.NavigationState{Tab: navigator.TabPokemonZoom, Page: 1, InfoID: 7})

	tm := newTestModel(t, &config.Config{GameName: "Emerald", Language: "english"}, mgr)
	res := tm.init()

	require.NoError(t, res.Err)
	require.NotNil(t, tm.Overlay.Log())
	assert.Equal(t, "42", tm.Overlay.Log().Seed)
	assert.Equal(t, "spanish", tm.Overlay.Text().Language)
	assert.Equal(t, dataPath, tm.files.DataPath)
	assert.False(t, tm.Overlay.Displayed(), "restored closed")

	tm.key("tab")
	st := tm.Overlay.Navigator().State()
	assert.True(t, tm.Overlay.Displayed())
	assert.Equal(t, navigator.TabPokemonZoom, st.Tab)
	assert.Equal(t, 7, st.InfoID)
}

func TestInit_AutoDetect(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "emerald 2.log")
	want := writeLog(t, dir, "fire_red_3.log")

	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Fire Red 3.gba"}, nil)
	require.True(t, tm.initReq.AutoDetect)

	res := tm.init()
	require.NoError(t, res.Err)
	assert.Equal(t, want, res.LogPath)

	sess, err := tm.mgr.GetSession()
	require.NoError(t, err)
	assert.Equal(t, want, sess.LogPath)
}

func TestInit_ErrorShowsPopup(t *testing.T) {
	mgr := state.NewMock()
	require.NoError(t, mgr.SaveSession(state.Session{LogPath: filepath.Join(t.TempDir(), "gone.log")}))

	tm := newTestModel(t, nil, mgr)
	res := tm.init()

	require.Error(t, res.Err)
	assert.Equal(t, errmsg.OpLogParse, res.ErrOp)
	require.NotNil(t, tm.Bridge.Active())
	assert.Equal(t, "Error", tm.Bridge.Active().Title())
	assert.Contains(t, testutil.StripANSI(tm.View()), "file not found")

	tm.key("enter")
	assert.Nil(t, tm.Bridge.Active())
}

func TestKeys_Navigation(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{GameName: "Emerald"}, nil)
	tm.send(LogLoadedMsg{Path: writeLog(t, dir, "emerald.log"), Log: mustParse(t, dir)})

	tm.key("tab")
	require.True(t, tm.Overlay.Displayed())
	assert.Equal(t, navigator.TabPokemon, tm.Overlay.Navigator().State().Tab)

	tm.key("2")
	assert.Equal(t, navigator.TabTrainers, tm.Overlay.Navigator().State().Tab)

	nav, err := tm.mgr.GetNavigation()
	require.NoError(t, err)
	require.NotNil(t, nav)
	assert.Equal(t, navigator.TabTrainers, nav.Tab)

	tm.key("esc")
	assert.False(t, tm.Overlay.Displayed())
	assert.Equal(t, session.ScreenTracker, tm.Session.Screen())
}

func mustParse(t *testing.T, dir string) *rlog.Log {
	t.Helper()
	res, ok := ParseLogCmd(filepath.Join(dir, "emerald.log"), false)().(LogLoadedMsg)
	require.True(t, ok)
	require.NoError(t, res.Err)
	return res.Log
}

func TestKeys_Quit(t *testing.T) {
	tm := newTestModel(t, nil, nil)
	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.NotNil(t, cmd)
	assert.True(t, tm.mgr.IsClosed())
	assert.Error(t, tm.ctx.Err(), "watchers stopped")
}

func TestKeys_Help(t *testing.T) {
	tm := newTestModel(t, nil, nil)

	tm.key("?")
	require.NotNil(t, tm.Help)
	assert.Contains(t, testutil.StripANSI(tm.View()), "Log Viewer")

	tm.key("1")
	require.NotNil(t, tm.Help, "keys go to the help popup")
	assert.False(t, tm.Overlay.Displayed())

	tm.key("esc")
	assert.Nil(t, tm.Help)
}

func TestForms_Search(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, nil, nil)
	tm.send(LogLoadedMsg{Path: writeLog(t, dir, "emerald.log"), Log: mustParse(t, dir)})

	tm.key("/")
	require.NotNil(t, tm.Bridge.Active())
	assert.Equal(t, "Search Pokemon", tm.Bridge.Active().Title())

	for _, r := range "pika" {
		tm.key(string(r))
	}
	tm.key("enter")

	assert.Nil(t, tm.Bridge.Active())
	assert.True(t, tm.Overlay.Displayed())
	assert.True(t, tm.Overlay.SearchActive())
	assert.Equal(t, "pika", tm.Overlay.Search().Term())

	tm.key("ctrl+u")
	assert.False(t, tm.Overlay.SearchActive())
}

func TestForms_OpenLog(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir}, nil)
	tm.chosen = writeLog(t, dir, "crystal.log")

	tm.key("o")

	assert.Equal(t, []string{dir}, tm.dialogs)
	require.NotNil(t, tm.Overlay.Log())
	assert.True(t, tm.Overlay.Displayed())
	assert.True(t, tm.Gate.PointerEnabled(), "pointer restored after the dialog")

	sess, err := tm.mgr.GetSession()
	require.NoError(t, err)
	assert.Equal(t, tm.chosen, sess.LogPath)
}

func TestForms_OpenLogCancelled(t *testing.T) {
	tm := newTestModel(t, nil, nil)
	tm.key("o")

	assert.Len(t, tm.dialogs, 1)
	assert.Nil(t, tm.Overlay.Log())
	assert.Nil(t, tm.Bridge.Active())
}

func TestForms_SaveAndLoadData(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{GameName: "Emerald", DataDir: dir}, nil)
	tm.files.Tracked.SetNote(7, "starter")

	tm.key("ctrl+s")
	require.NotNil(t, tm.Bridge.Active())
	assert.Equal(t, "Save tracked data", tm.Bridge.Active().Title())
	tm.key("enter")

	want := filepath.Join(dir, "Emerald.tdat")
	assert.Equal(t, want, tm.files.DataPath)
	sess, err := tm.mgr.GetSession()
	require.NoError(t, err)
	assert.Equal(t, want, sess.DataPath)

	tm.chosen = want
	tm.files.Tracked = trackerdata.New("")
	tm.key("ctrl+l")
	assert.Equal(t, "starter", tm.files.Tracked.Note(7))
	assert.Equal(t, "Emerald", tm.files.Tracked.Game())
}

func TestForms_SaveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "Emerald.tdat")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0o600))
	tm := newTestModel(t, &config.Config{GameName: "Emerald", DataDir: dir}, nil)

	tm.key("ctrl+s")
	tm.key("enter")

	require.NotNil(t, tm.Bridge.Active())
	assert.Equal(t, "Error", tm.Bridge.Active().Title())
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestSettings_Apply(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Emerald"}, nil)

	tm.send(SettingsAppliedMsg{Language: "french", AutoDetect: false})

	assert.Equal(t, "french", tm.Overlay.Text().Language)
	assert.False(t, tm.autoDetectActive())
	assert.Nil(t, tm.watch)
	sess, err := tm.mgr.GetSession()
	require.NoError(t, err)
	assert.Equal(t, "french", sess.Language)
}

func TestLogWritten_MatchesGame(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Fire Red 3.gba"}, nil)

	tm.send(LogWrittenMsg{Path: writeLog(t, dir, "emerald.log")})
	assert.Nil(t, tm.Overlay.Log())

	path := writeLog(t, dir, "Fire Red 4AutoRandomized.gba.log")
	tm.send(LogWrittenMsg{Path: path})
	require.NotNil(t, tm.Overlay.Log())
	assert.Equal(t, path, tm.Overlay.Log().Path)
	assert.False(t, tm.Overlay.Displayed(), "a detected log does not open the overlay")
}

type fakeNotifier struct {
	sent []notify.Notification
}

func (f *fakeNotifier) Notify(n notify.Notification) (uint32, error) {
	f.sent = append(f.sent, n)
	return uint32(len(f.sent)), nil
}

func (f *fakeNotifier) Close(uint32) error { return nil }

func TestLogWritten_Notifies(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Emerald.gba", Notify: true}, nil)
	n := &fakeNotifier{}
	tm.Notifier = n

	tm.send(LogWrittenMsg{Path: writeLog(t, dir, "Emerald.gba.log")})
	tm.send(LogWrittenMsg{Path: writeLog(t, dir, "Emerald 2.gba.log")})

	require.Len(t, n.sent, 2)
	assert.Contains(t, n.sent[0].Body, "Emerald.gba.log")
	assert.Equal(t, uint32(0), n.sent[0].ReplacesID)
	assert.Equal(t, uint32(1), n.sent[1].ReplacesID, "a later log replaces the earlier notice")
}

func TestLogChosen_DoesNotNotify(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{Notify: true}, nil)
	n := &fakeNotifier{}
	tm.Notifier = n

	tm.send(FileChosenMsg{Kind: FileLog, Path: writeLog(t, dir, "emerald.log")})

	require.NotNil(t, tm.Overlay.Log())
	assert.Empty(t, n.sent)
}

func TestMouse_IgnoredWhileDialogOpen(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, nil, nil)
	tm.send(LogLoadedMsg{Path: writeLog(t, dir, "emerald.log"), Log: mustParse(t, dir), Show: true})
	before := tm.Overlay.Navigator().State()

	restore := tm.Gate.Pointer().Suspend()
	for x := range 100 {
		tm.send(tea.MouseMsg{X: x, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}
	restore()

	assert.Equal(t, before, tm.Overlay.Navigator().State())
	assert.True(t, tm.Overlay.Displayed())
}

func TestBell_RingsOnErrorAndDetectedLog(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Emerald.gba"}, nil)

	tm.send(LogLoadedMsg{Path: "missing.log", Err: errors.New("file not found")})
	assert.Equal(t, "\a", tm.bell.String())

	tm.key("enter")
	tm.send(LogWrittenMsg{Path: writeLog(t, dir, "Emerald.gba.log")})
	assert.Equal(t, "\a\a", tm.bell.String())
}

func TestBell_SilentWhileDialogOpen(t *testing.T) {
	dir := t.TempDir()
	tm := newTestModel(t, &config.Config{LogDir: dir, GameName: "Emerald.gba"}, nil)
	detected := writeLog(t, dir, "Emerald.gba.log")
	tm.duringDialog = func() {
		assert.False(t, tm.Gate.AudioEnabled())
		tm.send(LogWrittenMsg{Path: detected})
	}

	tm.key("o")

	require.NotNil(t, tm.Overlay.Log(), "the detected log still loads")
	assert.Equal(t, detected, tm.Overlay.Log().Path)
	assert.Empty(t, tm.bell.String())
	assert.True(t, tm.Gate.AudioEnabled(), "audio restored after the dialog")

	tm.send(LogWrittenMsg{Path: writeLog(t, dir, "Emerald 2.gba.log")})
	assert.Equal(t, "\a", tm.bell.String())
}
