package app

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/errmsg"
	"github.com/llehouerou/dexlog/internal/keymap"
	"github.com/llehouerou/dexlog/internal/logfinder"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/notify"
	"github.com/llehouerou/dexlog/internal/tabs"
	"github.com/llehouerou/dexlog/internal/ui/action"
	"github.com/llehouerou/dexlog/internal/ui/helpbindings"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.persistNavigation()
	return m, tea.Batch(cmd, m.forms.take())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadingMessage:
		return m.handleLoadingMsg(msg)
	case FileMessage:
		return m.handleFileMsg(msg)
	case TickMsg:
		m.Overlay.UpdateSelf()
		return m, TickCmd()
	case SettingsAppliedMsg:
		return m.handleSettings(msg)
	case LanguageLoadedMsg:
		if msg.Err != nil {
			m.forms.ShowError(errmsg.OpLanguageLoad, msg.Err)
			return m, nil
		}
		m.Overlay.SetLanguage(msg.Text)
		m.files.Language = msg.Text.Language
		m.saveSession()
		return m, nil
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Canvas.Resize(msg.Width, msg.Height)
		m.Overlay.Resize(msg.Width, msg.Height)
		m.Host.SetSize(msg.Width, msg.Height)
		m.forms.width = msg.Width
		if m.Help != nil {
			m.Help.SetSize(msg.Width, msg.Height)
		}
		m.frame.invalidate()
		return m, nil
	case action.Msg:
		if _, ok := msg.Action.(helpbindings.Close); ok {
			m.Help = nil
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleMouse routes left clicks to the top popup, then to the overlay.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.Gate.PointerEnabled() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.Host.HandleClick(msg.X, msg.Y) || m.Host.BlocksInput() {
		return m, nil
	}
	m.Overlay.CheckInput(msg.X, msg.Y)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}
	if m.Host.HasWindow() {
		_, cmd := m.Host.Update(msg)
		return m, cmd
	}
	if m.Help != nil {
		_, cmd := m.Help.Update(msg)
		return m, cmd
	}

	action := m.Keys.Resolve(key, keymap.AppContexts...)
	switch action {
	case keymap.ActionQuit:
		m.shutdown()
		return m, tea.Quit
	case keymap.ActionToggleOverlay:
		if m.Overlay.Displayed() {
			m.Overlay.CloseOverlay()
		} else {
			m.Overlay.Open()
		}
	case keymap.ActionHelp:
		help := helpbindings.New()
		help.SetSize(m.Width, m.Height)
		m.Help = &help
	case keymap.ActionSearch:
		m.forms.OpenSearch()
	case keymap.ActionClearSearch:
		m.Overlay.ClearSearch()
	case keymap.ActionOpenLog:
		m.forms.OpenLog()
	case keymap.ActionLoadData:
		m.forms.LoadData()
	case keymap.ActionSaveData:
		m.forms.SaveData()
	case keymap.ActionSettings:
		m.forms.OpenSettings()
	default:
		if m.Overlay.Displayed() {
			m.handleOverlayAction(action)
		}
	}
	return m, nil
}

// tabActions maps the tab switching actions to their list tab.
var tabActions = map[keymap.Action]navigator.TabID{
	keymap.ActionViewPokemon:  navigator.TabPokemon,
	keymap.ActionViewTrainers: navigator.TabTrainers,
	keymap.ActionViewRoutes:   navigator.TabRoutes,
	keymap.ActionViewTMs:      navigator.TabTMs,
	keymap.ActionViewMisc:     navigator.TabMisc,
}

func (m Model) handleOverlayAction(action keymap.Action) {
	nav := m.Overlay.Navigator()
	switch action {
	case keymap.ActionBack:
		if nav.CanGoBack() {
			nav.GoBack()
		} else {
			m.Overlay.CloseOverlay()
		}
	case keymap.ActionNextPage:
		m.Overlay.TurnPage(1)
	case keymap.ActionPrevPage:
		m.Overlay.TurnPage(-1)
	default:
		if tab, ok := tabActions[action]; ok {
			m.Overlay.ShowList(tab, tabs.FilterAll)
		}
	}
}

// handleLoadingMsg routes loading-related messages.
func (m Model) handleLoadingMsg(msg LoadingMessage) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case InitResult:
		return m.handleInitResult(msg)
	case WatchStartedMsg:
		if msg.Err != nil {
			msg.Cancel()
			m.forms.ShowError(errmsg.OpLogWatch, msg.Err)
			return m, nil
		}
		m.stopWatch()
		m.watch = &watcher{paths: msg.Paths, cancel: msg.Cancel}
		return m, WaitLogCmd(msg.Paths)
	}
	return m, nil
}

// handleInitResult applies the startup loading result.
func (m Model) handleInitResult(msg InitResult) (Model, tea.Cmd) {
	if msg.Theme != nil {
		styles.Use(*msg.Theme)
	}
	if msg.Text != nil {
		m.Overlay.SetLanguage(msg.Text)
		m.files.Language = msg.Text.Language
	}
	if msg.Tracked != nil {
		m.setTracked(msg.Tracked, msg.DataPath)
	}
	if msg.Log != nil {
		m.Overlay.LoadLog(msg.Log)
		m.files.LogPath = msg.LogPath
		m.restoreNavigation(msg.Nav)
	}
	if msg.Err != nil {
		m.forms.ShowError(msg.ErrOp, msg.Err)
	}
	m.frame.invalidate()
	m.saveSession()

	if !m.autoDetectActive() {
		return m, nil
	}
	return m, m.startWatch()
}

// handleFileMsg routes the results of file dialogs and file operations.
func (m Model) handleFileMsg(msg FileMessage) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FileChosenMsg:
		if msg.Kind == FileData {
			return m, LoadDataCmd(m.ctx, msg.Path)
		}
		return m, ParseLogCmd(msg.Path, true)

	case LogLoadedMsg:
		if msg.Err != nil {
			m.forms.ShowError(errmsg.OpLogParse, msg.Err)
			return m, nil
		}
		m.files.LogPath = msg.Path
		m.Overlay.LoadLog(msg.Log)
		m.saveSession()
		if msg.Show {
			m.Overlay.Open()
			break
		}
		m.forms.ring()
		if m.cfg.Notify {
			return m, NotifyCmd(m.Notifier, notify.LogNotice(msg.Log, m.Session.GameName(), m.noticeID))
		}

	case NoticeSentMsg:
		if msg.Err != nil {
			m.logger.Warn("send notification", zap.Error(msg.Err))
			return m, nil
		}
		m.noticeID = msg.ID

	case LogWrittenMsg:
		cmd := m.waitNextLog()
		if !m.matchesGame(msg.Path) {
			return m, cmd
		}
		m.logger.Info("log written", zap.String("path", msg.Path))
		return m, tea.Batch(cmd, ParseLogCmd(msg.Path, false))

	case DataLoadedMsg:
		if msg.Err != nil {
			m.forms.ShowError(errmsg.OpDataLoad, msg.Err)
			return m, nil
		}
		m.setTracked(msg.Data, msg.Path)
		m.saveSession()

	case DataSavedMsg:
		if msg.Err != nil {
			m.forms.ShowError(errmsg.OpDataSave, msg.Err)
			return m, nil
		}
		m.files.DataPath = msg.Path
		m.Overlay.SetTracked(m.files.Tracked)
		m.logger.Info("tracked data saved", zap.String("path", msg.Path))
		m.saveSession()
	}
	return m, nil
}

// watcher is a running watch of the log folder.
type watcher struct {
	paths  <-chan string
	cancel context.CancelFunc
}

func (m Model) startWatch() tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	return WatchCmd(ctx, cancel, m.cfg.LogDir, m.logger.Named("watch"))
}

func (m *Model) stopWatch() {
	if m.watch != nil {
		m.watch.cancel()
		m.watch = nil
	}
}

// waitNextLog keeps listening to the log watcher.
func (m Model) waitNextLog() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return WaitLogCmd(m.watch.paths)
}

// matchesGame reports whether a log written to the watched folder belongs
// to the game being played.
func (m Model) matchesGame(path string) bool {
	if !m.autoDetectActive() {
		return false
	}
	return logfinder.Normalize(filepath.Base(path)).Prefix == logfinder.Normalize(m.cfg.GameName).Prefix
}

// handleSettings applies the settings popup.
func (m Model) handleSettings(msg SettingsAppliedMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	m.files.AutoDetect = msg.AutoDetect
	switch {
	case !m.autoDetectActive():
		m.stopWatch()
	case m.watch == nil:
		cmds = append(cmds, m.startWatch())
	}
	if msg.Language != "" && msg.Language != m.files.Language {
		cmds = append(cmds, LoadLanguageCmd(msg.Language))
	}
	m.saveSession()
	return m, tea.Batch(cmds...)
}
