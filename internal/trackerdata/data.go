// Package trackerdata holds the player's tracked data for a run: notes,
// encounter counts and defeated trainers, saved as a .tdat sqlite file.
package trackerdata

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Data is the tracked data of one run. It is safe for concurrent use.
type Data struct {
	mu         sync.RWMutex
	sessionID  uuid.UUID
	game       string
	savedAt    time.Time
	notes      map[int]string
	encounters map[int]int
	defeated   map[int]bool
}

// New returns empty tracked data for game with a fresh session id.
func New(game string) *Data {
	return &Data{
		sessionID:  uuid.New(),
		game:       game,
		notes:      make(map[int]string),
		encounters: make(map[int]int),
		defeated:   make(map[int]bool),
	}
}

func (d *Data) SessionID() uuid.UUID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sessionID
}

func (d *Data) Game() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.game
}

func (d *Data) SetGame(game string) {
	d.mu.Lock()
	d.game = game
	d.mu.Unlock()
}

func (d *Data) Note(pokemonID int) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.notes[pokemonID]
}

// SetNote replaces the note of a pokemon; an empty note removes it.
func (d *Data) SetNote(pokemonID int, note string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if note == "" {
		delete(d.notes, pokemonID)
		return
	}
	d.notes[pokemonID] = note
}

func (d *Data) Encounters(pokemonID int) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.encounters[pokemonID]
}

// AddEncounter counts one more encounter and returns the new total.
func (d *Data) AddEncounter(pokemonID int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.encounters[pokemonID]++
	return d.encounters[pokemonID]
}

func (d *Data) Defeated(trainerID int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.defeated[trainerID]
}

func (d *Data) ToggleDefeated(trainerID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.defeated[trainerID] {
		delete(d.defeated, trainerID)
		return
	}
	d.defeated[trainerID] = true
}

// Summary reports the game and the last save time. ok is false until the
// data has been saved or loaded.
func (d *Data) Summary() (game string, savedAt time.Time, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.game, d.savedAt, !d.savedAt.IsZero()
}

type snapshot struct {
	sessionID  uuid.UUID
	game       string
	notes      map[int]string
	encounters map[int]int
	defeated   map[int]bool
}

func (d *Data) snapshot() snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot{
		sessionID:  d.sessionID,
		game:       d.game,
		notes:      maps.Clone(d.notes),
		encounters: maps.Clone(d.encounters),
		defeated:   maps.Clone(d.defeated),
	}
}

func (d *Data) markSaved(t time.Time) {
	d.mu.Lock()
	d.savedAt = t
	d.mu.Unlock()
}
