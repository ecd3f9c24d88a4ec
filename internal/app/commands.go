package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/dexlog/internal/errmsg"
	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/logfinder"
	"github.com/llehouerou/dexlog/internal/notify"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/trackerdata"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

const frameInterval = 100 * time.Millisecond

// File dialog filters.
const (
	logFilter  = "Randomizer log (*.log)|*.log"
	dataFilter = "Tracked data (*.tdat)|*.tdat"
)

// TickCmd returns a command that sends TickMsg after one frame.
func TickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// opError tags a load failure with the operation that failed.
type opError struct {
	op  errmsg.Op
	err error
}

func (e *opError) Error() string { return string(e.op) + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

// loadRequest describes what LoadCmd reads at startup.
type loadRequest struct {
	Language   string
	ThemeFile  string
	LogDir     string
	GameName   string
	AutoDetect bool
	Session    *state.Session
	Nav        *state.NavigationState
}

// LoadCmd loads the string table, the theme, the log and the tracked data
// concurrently.
func LoadCmd(ctx context.Context, req loadRequest) tea.Cmd {
	return func() tea.Msg {
		res := InitResult{Nav: req.Nav}
		sess := req.Session
		if sess == nil {
			sess = &state.Session{}
		}

		var g errgroup.Group
		g.Go(func() error {
			text, err := resources.Load(req.Language)
			if err != nil {
				res.Text = resources.MustDefault()
				return &opError{errmsg.OpLanguageLoad, err}
			}
			res.Text = text
			return nil
		})
		g.Go(func() error {
			if req.ThemeFile == "" {
				return nil
			}
			th, err := styles.Load(req.ThemeFile)
			if err != nil {
				return &opError{errmsg.OpThemeLoad, err}
			}
			res.Theme = &th
			return nil
		})
		g.Go(func() error {
			path, err := resolveLogPath(req, sess.LogPath)
			if err != nil {
				return &opError{errmsg.OpLogDetect, err}
			}
			if path == "" {
				return nil
			}
			log, err := rlog.ParseFile(path)
			if err != nil {
				return &opError{errmsg.OpLogParse, err}
			}
			res.Log, res.LogPath = log, path
			return nil
		})
		g.Go(func() error {
			if sess.DataPath == "" {
				return nil
			}
			d, err := trackerdata.Load(ctx, sess.DataPath)
			if err != nil {
				return &opError{errmsg.OpDataLoad, err}
			}
			res.Tracked, res.DataPath = d, sess.DataPath
			return nil
		})

		if err := g.Wait(); err != nil {
			res.Err, res.ErrOp = err, errmsg.OpInitialize
			var oe *opError
			if errors.As(err, &oe) {
				res.Err, res.ErrOp = oe.err, oe.op
			}
		}
		return res
	}
}

// resolveLogPath returns the log matching the game when auto-detection is
// on, or the last opened log.
func resolveLogPath(req loadRequest, last string) (string, error) {
	if !req.AutoDetect {
		return last, nil
	}
	path, err := logfinder.Find(req.LogDir, req.GameName)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, logfinder.ErrNotFound):
		return last, nil
	default:
		return "", err
	}
}

// ParseLogCmd parses the log at path. show opens the overlay once loaded.
func ParseLogCmd(path string, show bool) tea.Cmd {
	return func() tea.Msg {
		log, err := rlog.ParseFile(path)
		return LogLoadedMsg{Path: path, Log: log, Show: show, Err: err}
	}
}

// LoadDataCmd reads the tracked data file at path.
func LoadDataCmd(ctx context.Context, path string) tea.Cmd {
	return func() tea.Msg {
		d, err := trackerdata.Load(ctx, path)
		return DataLoadedMsg{Path: path, Data: d, Err: err}
	}
}

// SaveDataCmd writes d to path.
func SaveDataCmd(ctx context.Context, path string, d *trackerdata.Data) tea.Cmd {
	return func() tea.Msg {
		saved, err := trackerdata.Save(ctx, path, d)
		return DataSavedMsg{Path: saved, Err: err}
	}
}

// LoadLanguageCmd loads the string table of lang.
func LoadLanguageCmd(lang string) tea.Cmd {
	return func() tea.Msg {
		text, err := resources.Load(lang)
		return LanguageLoadedMsg{Text: text, Err: err}
	}
}

// OpenFileCmd shows the file dialog off the event loop. A cancelled
// dialog sends nothing.
func OpenFileCmd(bridge *formbridge.Bridge, kind FileKind, dir, filter string) tea.Cmd {
	return func() tea.Msg {
		path, ok := bridge.OpenFileDialog("", dir, filter)
		if !ok {
			return nil
		}
		return FileChosenMsg{Kind: kind, Path: path}
	}
}

// WatchCmd starts watching the log folder until cancel is called.
func WatchCmd(ctx context.Context, cancel context.CancelFunc, dir string, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		paths, err := logfinder.Watch(ctx, dir, logger)
		return WatchStartedMsg{Paths: paths, Cancel: cancel, Err: err}
	}
}

// WaitLogCmd waits for the next log written to the watched folder.
func WaitLogCmd(paths <-chan string) tea.Cmd {
	if paths == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-paths
		if !ok {
			return nil
		}
		return LogWrittenMsg{Path: path}
	}
}

// NotifyCmd sends a desktop notification off the event loop.
func NotifyCmd(n notify.Notifier, notice notify.Notification) tea.Cmd {
	return func() tea.Msg {
		id, err := n.Notify(notice)
		return NoticeSentMsg{ID: id, Err: err}
	}
}
