package trackerdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	dbutil "github.com/llehouerou/dexlog/internal/db"
)

// Ext is the extension of tracked data files.
const Ext = ".tdat"

const formatVersion = 1

// ErrFormat is returned for files that are not tracked data.
var ErrFormat = errors.New("not a tracked data file")

// WithExt appends Ext to path when it is missing.
func WithExt(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Ext) {
		return path
	}
	return path + Ext
}

const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		format_version INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		game_name TEXT NOT NULL,
		saved_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notes (
		pokemon_id INTEGER PRIMARY KEY,
		note TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS encounters (
		pokemon_id INTEGER PRIMARY KEY,
		count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS defeated_trainers (
		trainer_id INTEGER PRIMARY KEY
	);
`

// Save writes d to path, adding the extension when missing, and returns
// the path written.
func Save(ctx context.Context, path string, d *Data) (string, error) {
	path = WithExt(path)
	conn, err := dbutil.Open(path)
	if err != nil {
		return "", fmt.Errorf("save tracked data: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return "", fmt.Errorf("save tracked data: %w", err)
	}

	s := d.snapshot()
	savedAt := time.Now().Truncate(time.Second)
	err = dbutil.WithTx(ctx, conn, func(tx *sql.Tx) error {
		for _, table := range []string{"meta", "notes", "encounters", "defeated_trainers"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meta (id, format_version, session_id, game_name, saved_at)
			VALUES (1, ?, ?, ?, ?)
		`, formatVersion, s.sessionID.String(), s.game, savedAt.Unix()); err != nil {
			return err
		}
		for id, note := range s.notes {
			if _, err := tx.ExecContext(ctx, `INSERT INTO notes (pokemon_id, note) VALUES (?, ?)`, id, note); err != nil {
				return err
			}
		}
		for id, n := range s.encounters {
			if _, err := tx.ExecContext(ctx, `INSERT INTO encounters (pokemon_id, count) VALUES (?, ?)`, id, n); err != nil {
				return err
			}
		}
		for id := range s.defeated {
			if _, err := tx.ExecContext(ctx, `INSERT INTO defeated_trainers (trainer_id) VALUES (?)`, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save tracked data: %w", err)
	}
	d.markSaved(savedAt)
	return path, nil
}

// Load reads the tracked data file at path.
func Load(ctx context.Context, path string) (*Data, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("load tracked data: %w", err)
	}
	conn, err := dbutil.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load tracked data: %w", err)
	}
	defer conn.Close()

	var (
		version   int
		sessionID string
		d         = New("")
		savedAt   sql.NullInt64
	)
	err = conn.QueryRowContext(ctx, `
		SELECT format_version, session_id, game_name, saved_at FROM meta WHERE id = 1
	`).Scan(&version, &sessionID, &d.game, &savedAt)
	if err != nil {
		return nil, fmt.Errorf("load tracked data %s: %w", path, errors.Join(ErrFormat, err))
	}
	if version > formatVersion {
		return nil, fmt.Errorf("load tracked data %s: version %d: %w", path, version, ErrFormat)
	}
	if d.sessionID, err = uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("load tracked data %s: %w", path, errors.Join(ErrFormat, err))
	}
	d.savedAt = dbutil.UnixTime(savedAt)

	if err := scanPairs(ctx, conn, `SELECT pokemon_id, note FROM notes`, func(id int, note string) {
		d.notes[id] = note
	}); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	if err := scanPairs(ctx, conn, `SELECT pokemon_id, count FROM encounters`, func(id int, n int) {
		d.encounters[id] = n
	}); err != nil {
		return nil, fmt.Errorf("load encounters: %w", err)
	}
	if err := scanPairs(ctx, conn, `SELECT trainer_id, 1 FROM defeated_trainers`, func(id int, _ int) {
		d.defeated[id] = true
	}); err != nil {
		return nil, fmt.Errorf("load defeated trainers: %w", err)
	}
	return d, nil
}

func scanPairs[V any](ctx context.Context, conn *sql.DB, query string, fn func(int, V)) error {
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var v V
		if err := rows.Scan(&id, &v); err != nil {
			return err
		}
		fn(id, v)
	}
	return rows.Err()
}
