package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	dbutil "github.com/llehouerou/dexlog/internal/db"
	"github.com/llehouerou/dexlog/internal/navigator"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbutil.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

// TestGetNavigation_Empty tests getting navigation from empty database.
func TestGetNavigation_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	nav, err := getNavigation(db)
	if err != nil {
		t.Fatalf("getNavigation failed: %v", err)
	}
	if nav != nil {
		t.Errorf("expected nil navigation on empty db, got %+v", nav)
	}
}

func TestSaveAndGetNavigation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name  string
		state NavigationState
		want  NavigationState
	}{
		{"list", NavigationState{Tab: navigator.TabTrainers, Page: 3}, NavigationState{Tab: navigator.TabTrainers, Page: 3}},
		{"detail", NavigationState{Tab: navigator.TabPokemonZoom, Page: 2, InfoID: 25}, NavigationState{Tab: navigator.TabPokemonZoom, Page: 2, InfoID: 25}},
		{"page clamped", NavigationState{Tab: navigator.TabMisc}, NavigationState{Tab: navigator.TabMisc, Page: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := saveNavigation(db, tt.state); err != nil {
				t.Fatalf("saveNavigation failed: %v", err)
			}
			got, err := getNavigation(db)
			if err != nil {
				t.Fatalf("getNavigation failed: %v", err)
			}
			if got == nil || *got != tt.want {
				t.Errorf("getNavigation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSession(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil session on empty db, got %+v", s)
	}

	at := time.Unix(1760000000, 0)
	want := Session{LogPath: "/logs/fire_red_12.log", DataPath: "/saves/run.tdat", Language: "french", UpdatedAt: at}
	if err := saveSession(db, want); err != nil {
		t.Fatalf("saveSession failed: %v", err)
	}
	want.Language = "spanish"
	if err := saveSession(db, want); err != nil {
		t.Fatalf("saveSession (update) failed: %v", err)
	}

	got, err := getSession(db)
	if err != nil {
		t.Fatalf("getSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected session")
	}
	if got.LogPath != want.LogPath || got.DataPath != want.DataPath || got.Language != "spanish" {
		t.Errorf("getSession() = %+v, want %+v", got, want)
	}
	if !got.UpdatedAt.Equal(at) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, at)
	}
}

func TestSaveSession_DefaultsUpdatedAt(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveSession(db, Session{Language: "english"}); err != nil {
		t.Fatalf("saveSession failed: %v", err)
	}
	got, _ := getSession(db)
	if got == nil || time.Since(got.UpdatedAt) > time.Minute {
		t.Errorf("UpdatedAt not set: %+v", got)
	}
	if got.LogPath != "" {
		t.Errorf("LogPath = %q, want empty", got.LogPath)
	}
}

func TestManager_SaveNavigationDebounced(t *testing.T) {
	m, err := OpenPath(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}

	m.SaveNavigation(NavigationState{Tab: navigator.TabRoutes, Page: 1})
	m.SaveNavigation(NavigationState{Tab: navigator.TabRoutes, Page: 2})

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation failed: %v", err)
	}
	if nav != nil {
		t.Errorf("expected nothing written before the debounce, got %+v", nav)
	}

	// Close flushes the pending state.
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestManager_CloseFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	m.SaveNavigation(NavigationState{Tab: navigator.TabTMs, Page: 4})
	if err := m.SaveSession(Session{LogPath: "/logs/a.log"}); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation failed: %v", err)
	}
	if nav == nil || nav.Tab != navigator.TabTMs || nav.Page != 4 {
		t.Errorf("GetNavigation() = %+v, want TMs page 4", nav)
	}
	s, err := m.GetSession()
	if err != nil || s == nil || s.LogPath != "/logs/a.log" {
		t.Errorf("GetSession() = %+v, %v", s, err)
	}
}

func TestManager_DebounceWrites(t *testing.T) {
	m, err := OpenPath(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	defer m.Close()

	m.SaveNavigation(NavigationState{Tab: navigator.TabPokemon, Page: 7})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		nav, err := m.GetNavigation()
		if err != nil {
			t.Fatalf("GetNavigation failed: %v", err)
		}
		if nav != nil {
			if nav.Page != 7 {
				t.Errorf("Page = %d, want 7", nav.Page)
			}
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("debounced save never written")
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.SaveNavigation(NavigationState{Tab: navigator.TabMisc, Page: 1})
	if nav, _ := m.GetNavigation(); nav == nil || nav.Tab != navigator.TabMisc {
		t.Errorf("GetNavigation() = %+v", nav)
	}
	_ = m.SaveSession(Session{Language: "french"})
	if s, _ := m.GetSession(); s == nil || s.Language != "french" {
		t.Errorf("GetSession() = %+v", s)
	}
	_ = m.Close()
	if !m.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
}

func TestManager_LogsFailedSave(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m, err := OpenPath(filepath.Join(t.TempDir(), "state.db"), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	if err := m.db.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	m.flush(NavigationState{Tab: navigator.TabRoutes, Page: 2})

	if got := logs.FilterMessage("save navigation").Len(); got != 1 {
		t.Errorf("logged %d failed saves, want 1", got)
	}
}
