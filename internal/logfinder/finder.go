// Package logfinder locates the randomizer log of the game being played.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// LogExt is the extension of randomizer logs.
const LogExt = ".log"

// ErrNotFound is returned when no log matches the game.
var ErrNotFound = errors.New("no matching log")

// postfixes are appended to randomized rom and log names by the randomizer.
var postfixes = []string{"autorandomized", "_randomized", "randomized"}

// extensions are stripped from names before comparing.
var extensions = []string{".log", ".gba", ".gbc", ".gb", ".nds", ".zip"}

// Name is a normalized rom or log name: "Fire Red 12" is {"fire_red", "12"}.
type Name struct {
	Prefix string
	Number string
}

// Normalize strips the extension, randomizer postfixes and the trailing
// number from name, lower-cases it and turns spaces into underscores.
func Normalize(name string) Name {
	s := strings.ToLower(strings.TrimSpace(filepath.Base(name)))
	for stripped := true; stripped; {
		stripped = false
		for _, ext := range extensions {
			if strings.HasSuffix(s, ext) {
				s = strings.TrimSuffix(s, ext)
				stripped = true
			}
		}
	}
	for _, p := range postfixes {
		if strings.HasSuffix(s, p) {
			s = strings.TrimSuffix(s, p)
			break
		}
	}
	s = strings.TrimRight(s, " _-.")
	end := strings.TrimRightFunc(s, unicode.IsDigit)
	n := Name{Number: s[len(end):]}
	n.Prefix = strings.ReplaceAll(strings.TrimSpace(end), " ", "_")
	n.Prefix = strings.TrimRight(n.Prefix, "_-.")
	return n
}

type candidate struct {
	path    string
	name    Name
	modTime time.Time
}

// Find returns the log in dir matching gameName. A log with the same
// prefix and number wins; otherwise the newest log with the same prefix
// is used.
func Find(dir, gameName string) (string, error) {
	want := Normalize(gameName)
	if want.Prefix == "" {
		return "", fmt.Errorf("find log for %q: %w", gameName, ErrNotFound)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var best *candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), LogExt) {
			continue
		}
		c := candidate{path: filepath.Join(dir, e.Name()), name: Normalize(e.Name())}
		if c.name.Prefix != want.Prefix {
			continue
		}
		if c.name.Number == want.Number {
			return c.path, nil
		}
		if info, err := e.Info(); err == nil {
			c.modTime = info.ModTime()
		}
		if best == nil || c.modTime.After(best.modTime) {
			best = &c
		}
	}
	if best == nil {
		return "", fmt.Errorf("find log for %q in %s: %w", gameName, dir, ErrNotFound)
	}
	return best.path, nil
}
