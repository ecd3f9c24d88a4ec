// Package state persists what dexlog remembers between runs: the last
// opened log and tracked data, the language and the overlay position.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	dbutil "github.com/llehouerou/dexlog/internal/db"
)

const (
	appName      = "dexlog"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	logger    *zap.Logger
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavigationState
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger reports failed background saves to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Open opens the state database under the xdg data directory.
func Open(opts ...Option) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(dbPath, opts...)
}

// OpenPath opens the state database at path.
func OpenPath(path string, opts ...Option) (*Manager, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state schema: %w", err)
	}
	m := &Manager{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		m.flush(*pending)
	}
	return m.db.Close()
}

func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation stores the overlay position after a short quiet period,
// so paging through a list writes once.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			m.flush(*pending)
		}
	})
}

func (m *Manager) flush(nav NavigationState) {
	if err := saveNavigation(m.db, nav); err != nil {
		m.logger.Warn("save navigation", zap.Error(err))
	}
}

func (m *Manager) GetSession() (*Session, error) {
	return getSession(m.db)
}

func (m *Manager) SaveSession(s Session) error {
	return saveSession(m.db, s)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
