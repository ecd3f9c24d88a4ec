package app

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/config"
	"github.com/llehouerou/dexlog/internal/formbridge"
	"github.com/llehouerou/dexlog/internal/icons"
	"github.com/llehouerou/dexlog/internal/keymap"
	"github.com/llehouerou/dexlog/internal/logoverlay"
	"github.com/llehouerou/dexlog/internal/notify"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/session"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/trackerdata"
	"github.com/llehouerou/dexlog/internal/tuihost"
	"github.com/llehouerou/dexlog/internal/ui/helpbindings"
)

// Model is the root bubbletea model: the tracker screen, the log overlay
// drawn over it and the popups opened through the form bridge.
type Model struct {
	Overlay  *logoverlay.Overlay
	Host     *tuihost.Host
	Bridge   *formbridge.Bridge
	Gate     *tuihost.Gate
	Canvas   *canvas.Grid
	Session  *session.Tracker
	StateMgr state.Interface
	Keys     *keymap.Resolver
	Notifier notify.Notifier

	Help   *helpbindings.Model
	Width  int
	Height int

	cfg     *config.Config
	files   *files
	forms   *forms
	frame   *frame
	watch   *watcher
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	initReq loadRequest
	lastNav state.NavigationState

	noticeID uint32
}

// New creates the model. The log, the tracked data and the string table
// are loaded by Init.
func New(cfg *config.Config, stateMgr state.Interface, logger *zap.Logger, hostOpts ...tuihost.Option) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	icons.Init(cfg.Icons)

	gate := &tuihost.Gate{}
	host := tuihost.New(append([]tuihost.Option{tuihost.WithLogger(logger.Named("host"))}, hostOpts...)...)
	bridge := formbridge.New(host,
		formbridge.WithSuspenders(gate.Suspenders()...),
		formbridge.WithLogger(logger.Named("forms")),
	)

	tracker := session.New(cfg.GameName)
	tracker.SetGameOver(cfg.GameOver)
	tracker.ChangeScreen(session.Fallback(tracker))

	sess, err := stateMgr.GetSession()
	if err != nil {
		logger.Warn("load session", zap.Error(err))
	}
	nav, err := stateMgr.GetNavigation()
	if err != nil {
		logger.Warn("load navigation", zap.Error(err))
	}

	fs := &files{
		Language:   cfg.Language,
		AutoDetect: cfg.AutoDetect == nil || *cfg.AutoDetect,
		Tracked:    trackerdata.New(cfg.GameName),
	}
	if sess != nil && sess.Language != "" {
		fs.Language = sess.Language
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &forms{
		bridge:  bridge,
		files:   fs,
		ctx:     ctx,
		logDir:  cfg.LogDir,
		dataDir: cfg.DataDir,
		logger:  logger,
		gate:    gate,
		bellOut: os.Stdout,
	}
	f.overlay = logoverlay.New(logoverlay.Options{
		Text:       resources.MustDefault(),
		Session:    tracker,
		Screens:    tracker,
		Tracked:    fs.Tracked,
		Forms:      f,
		SpritesDir: cfg.SpritesDir,
		Logger:     logger.Named("overlay"),
	})

	m := Model{
		Overlay:  f.overlay,
		Host:     host,
		Bridge:   bridge,
		Gate:     gate,
		Canvas:   canvas.New(0, 0),
		Session:  tracker,
		StateMgr: stateMgr,
		Keys:     keymap.NewResolver(keymap.Bindings),
		Notifier: notify.Nop(),
		cfg:      cfg,
		files:    fs,
		forms:    f,
		frame:    &frame{},
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	m.initReq = loadRequest{
		Language:   fs.Language,
		ThemeFile:  cfg.ThemeFile,
		LogDir:     cfg.LogDir,
		GameName:   cfg.GameName,
		AutoDetect: m.autoDetectActive(),
		Session:    sess,
		Nav:        nav,
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCmd(m.ctx, m.initReq),
		TickCmd(),
	)
}

// SetBellOutput sets where the terminal bell is written; nil silences it.
func (m Model) SetBellOutput(w io.Writer) {
	m.forms.bellOut = w
}

// autoDetectActive reports whether logs are found from the game name.
func (m Model) autoDetectActive() bool {
	return m.files.AutoDetect && m.cfg.LogDir != "" && m.cfg.GameName != ""
}

// setTracked shows d as the tracked data loaded from path.
func (m Model) setTracked(d *trackerdata.Data, path string) {
	if game := m.Session.GameName(); game != "" && d.Game() == "" {
		d.SetGame(game)
	}
	m.files.Tracked = d
	m.files.DataPath = path
	m.Overlay.SetTracked(d)
}

// shutdown stops the log watcher and flushes the saved state.
func (m Model) shutdown() {
	m.cancel()
	m.saveSession()
	if err := m.StateMgr.Close(); err != nil {
		m.logger.Warn("close state", zap.Error(err))
	}
}
