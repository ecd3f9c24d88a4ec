package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/errmsg"
	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/logoverlay"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/tabs"
	"github.com/llehouerou/dexlog/internal/trackerdata"
	"github.com/llehouerou/dexlog/internal/tuihost"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// files is the session state shared by the model and its forms.
type files struct {
	LogPath    string
	DataPath   string
	Language   string
	AutoDetect bool
	Tracked    *trackerdata.Data
}

// forms implements logoverlay.Forms on top of the form bridge. Popup
// callbacks run inside Update; work they start is queued as commands.
type forms struct {
	bridge  *formbridge.Bridge
	overlay *logoverlay.Overlay
	files   *files
	ctx     context.Context
	logDir  string
	dataDir string
	logger  *zap.Logger
	gate    *tuihost.Gate
	bellOut io.Writer

	width   int
	pending []tea.Cmd
}

var _ logoverlay.Forms = (*forms)(nil)

// ring sounds the terminal bell unless a file dialog holds the audio gate.
func (f *forms) ring() {
	if f.bellOut != nil {
		f.gate.Bell(f.bellOut)
	}
}

func (f *forms) queue(cmd tea.Cmd) {
	if cmd != nil {
		f.pending = append(f.pending, cmd)
	}
}

// take returns the queued commands and empties the queue.
func (f *forms) take() tea.Cmd {
	if len(f.pending) == 0 {
		return nil
	}
	cmds := f.pending
	f.pending = nil
	return tea.Batch(cmds...)
}

func (f *forms) text() *resources.Table {
	return f.overlay.Text()
}

func (f *forms) close(p *formbridge.Popup) func() {
	return func() { f.bridge.DestroyPopup(p) }
}

// OpenLog implements logoverlay.Forms.
func (f *forms) OpenLog() {
	dir := f.logDir
	if f.files.LogPath != "" {
		dir = filepath.Dir(f.files.LogPath)
	}
	f.queue(OpenFileCmd(f.bridge, FileLog, dir, logFilter))
}

// LoadData implements logoverlay.Forms.
func (f *forms) LoadData() {
	dir := f.dataDir
	if f.files.DataPath != "" {
		dir = filepath.Dir(f.files.DataPath)
	}
	f.queue(OpenFileCmd(f.bridge, FileData, dir, dataFilter))
}

// OpenSearch implements logoverlay.Forms.
func (f *forms) OpenSearch() {
	t := f.text().Search
	p := f.bridge.CreatePopup(t.Title, 40, 5)
	if p == nil {
		return
	}
	search := f.overlay.Search()
	fields := []string{t.Name, t.Ability, t.Move}

	p.AddLabel(t.Term, 0, 0)
	term := p.AddTextBox(search.Term(), 12, 0, 26)
	p.AddLabel(t.Field, 0, 2)
	field := p.AddDropdown(fields, fields[search.Field()], 12, 2, 14)
	p.AddButton(t.Apply, 0, 4, 10, func() {
		i := max(0, slices.Index(fields, f.bridge.GetText(field.ID)))
		text := f.bridge.GetText(term.ID)
		f.bridge.DestroyPopup(p)
		f.overlay.SetSearch(text, tabs.SearchFields[i])
	})
	p.AddButton(t.Clear, 12, 4, 10, func() {
		f.bridge.DestroyPopup(p)
		f.overlay.ClearSearch()
	})
	p.AddButton(t.Close, 24, 4, 10, f.close(p))
}

// SaveData implements logoverlay.Forms.
func (f *forms) SaveData() {
	t := f.text().Forms
	p := f.bridge.CreatePopup(t.SaveTitle, 40, 5)
	if p == nil {
		return
	}
	p.AddLabel(t.FileName, 0, 0)
	name := p.AddTextBox(f.suggestedDataName(), 12, 0, 26)
	overwrite := p.AddCheckbox(t.Overwrite, 0, 2, f.files.DataPath != "")
	p.AddButton(t.Save, 0, 4, 10, func() {
		path := f.dataPath(f.bridge.GetText(name.ID))
		replace := f.bridge.IsChecked(overwrite.ID)
		f.bridge.DestroyPopup(p)
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err == nil && !replace {
			f.ShowError(errmsg.OpDataSave, fmt.Errorf("%s: %w", filepath.Base(path), fs.ErrExist))
			return
		}
		f.queue(SaveDataCmd(f.ctx, path, f.files.Tracked))
	})
	p.AddButton(t.Cancel, 12, 4, 10, f.close(p))
}

func (f *forms) suggestedDataName() string {
	if f.files.DataPath != "" {
		return filepath.Base(f.files.DataPath)
	}
	if game := f.files.Tracked.Game(); game != "" {
		return trackerdata.WithExt(strings.ReplaceAll(game, " ", "_"))
	}
	return trackerdata.WithExt("tracker")
}

// dataPath resolves a file name typed in the save popup.
func (f *forms) dataPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = trackerdata.WithExt(name)
	if filepath.IsAbs(name) {
		return name
	}
	dir := f.dataDir
	if f.files.DataPath != "" {
		dir = filepath.Dir(f.files.DataPath)
	}
	return filepath.Join(dir, name)
}

// OpenSettings implements logoverlay.Forms.
func (f *forms) OpenSettings() {
	t := f.text().Forms
	p := f.bridge.CreatePopup(t.SettingsTitle, 40, 5)
	if p == nil {
		return
	}
	langs := resources.Languages()
	current := f.files.Language
	if !slices.Contains(langs, current) {
		current = resources.DefaultLanguage
	}

	p.AddLabel(t.Language, 0, 0)
	lang := p.AddDropdown(langs, current, 14, 0, 14)
	auto := p.AddCheckbox(t.AutoDetect, 0, 2, f.files.AutoDetect)
	p.AddButton(t.Apply, 0, 4, 10, func() {
		msg := SettingsAppliedMsg{
			Language:   f.bridge.GetText(lang.ID),
			AutoDetect: f.bridge.IsChecked(auto.ID),
		}
		f.bridge.DestroyPopup(p)
		f.queue(func() tea.Msg { return msg })
	})
	p.AddButton(t.Cancel, 12, 4, 10, f.close(p))
}

// ShowError replaces the active popup with an error message.
func (f *forms) ShowError(op errmsg.Op, err error) {
	f.logger.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))
	f.ring()
	msg := errmsg.Format(op, err)
	t := f.text().Forms

	width := render.Width(msg) + 2
	if f.width > 0 {
		width = min(width, f.width-4)
	}
	width = max(width, 20)
	p := f.bridge.CreatePopup(t.ErrorTitle, width, 3)
	if p == nil {
		return
	}
	p.AddLabel(render.TruncateEllipsis(msg, width), 0, 0)
	p.AddButton(t.OK, 0, 2, 6, f.close(p))
}
