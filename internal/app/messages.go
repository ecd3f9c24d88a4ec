// Package app contains the root bubbletea model of dexlog.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/dexlog/internal/errmsg"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/state"
	"github.com/llehouerou/dexlog/internal/trackerdata"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Message category interfaces for type-based routing in Update().

// LoadingMessage is implemented by messages related to startup loading.
type LoadingMessage interface {
	tea.Msg
	loadingMessage()
}

// FileMessage is implemented by messages carrying a log or data file.
type FileMessage interface {
	tea.Msg
	fileMessage()
}

// TickMsg is sent once per frame to run the overlay button updates.
type TickMsg time.Time

// InitResult carries everything loaded at startup. Err is the first
// failure; the other fields hold whatever did load.
type InitResult struct {
	Text     *resources.Table
	Theme    *styles.Theme
	Log      *rlog.Log
	LogPath  string
	Tracked  *trackerdata.Data
	DataPath string
	Nav      *state.NavigationState
	Err      error
	ErrOp    errmsg.Op
}

func (InitResult) loadingMessage() {}

// WatchStartedMsg is sent once the log folder is being watched.
type WatchStartedMsg struct {
	Paths  <-chan string
	Cancel context.CancelFunc
	Err    error
}

func (WatchStartedMsg) loadingMessage() {}

// FileKind tells what a chosen file is opened as.
type FileKind int

const (
	FileLog FileKind = iota
	FileData
)

// FileChosenMsg is sent when the file dialog returns a path.
type FileChosenMsg struct {
	Kind FileKind
	Path string
}

func (FileChosenMsg) fileMessage() {}

// LogLoadedMsg is sent when a log file has been parsed.
type LogLoadedMsg struct {
	Path string
	Log  *rlog.Log
	Show bool
	Err  error
}

func (LogLoadedMsg) fileMessage() {}

// LogWrittenMsg is sent when the randomizer writes a log to the watched
// folder.
type LogWrittenMsg struct {
	Path string
}

func (LogWrittenMsg) fileMessage() {}

// DataLoadedMsg is sent when a tracked data file has been read.
type DataLoadedMsg struct {
	Path string
	Data *trackerdata.Data
	Err  error
}

func (DataLoadedMsg) fileMessage() {}

// DataSavedMsg is sent when the tracked data has been written.
type DataSavedMsg struct {
	Path string
	Err  error
}

func (DataSavedMsg) fileMessage() {}

// SettingsAppliedMsg is sent when the settings popup is applied.
type SettingsAppliedMsg struct {
	Language   string
	AutoDetect bool
}

// LanguageLoadedMsg carries the string table of a newly chosen language.
type LanguageLoadedMsg struct {
	Text *resources.Table
	Err  error
}

// NoticeSentMsg reports the desktop notification sent for a detected log.
type NoticeSentMsg struct {
	ID  uint32
	Err error
}

func (NoticeSentMsg) fileMessage() {}
