package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/dexlog/internal/db"
)

// Session is the last opened log, tracked data file and language.
type Session struct {
	LogPath   string
	DataPath  string
	Language  string
	UpdatedAt time.Time
}

func getSession(db *sql.DB) (*Session, error) {
	row := db.QueryRow(`SELECT log_path, data_path, language, updated_at FROM session_state WHERE id = 1`)

	var logPath, dataPath, language sql.NullString
	var updatedAt sql.NullInt64
	err := row.Scan(&logPath, &dataPath, &language, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	return &Session{
		LogPath:   dbutil.NullStringValue(logPath),
		DataPath:  dbutil.NullStringValue(dataPath),
		Language:  dbutil.NullStringValue(language),
		UpdatedAt: dbutil.UnixTime(updatedAt),
	}, nil
}

func saveSession(db *sql.DB, s Session) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO session_state (id, log_path, data_path, language, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			log_path = excluded.log_path,
			data_path = excluded.data_path,
			language = excluded.language,
			updated_at = excluded.updated_at
	`, s.LogPath, s.DataPath, s.Language, s.UpdatedAt.Unix())
	return err
}
