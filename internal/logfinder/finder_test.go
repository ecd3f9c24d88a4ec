package logfinder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Name
	}{
		{"Fire Red 12.gba", Name{"fire_red", "12"}},
		{"FireRedAutoRandomized.gba", Name{"firered", ""}},
		{"fire_red12_randomized.gba.log", Name{"fire_red", "12"}},
		{"Emerald Randomized 3.log", Name{"emerald_randomized", "3"}},
		{"EmeraldRandomized.log", Name{"emerald", ""}},
		{"/roms/Crystal 7AutoRandomized.gbc", Name{"crystal", "7"}},
		{"Platinum.nds", Name{"platinum", ""}},
		{"Kaizo 12 AutoRandomized.gba.log", Name{"kaizo", "12"}},
		{"X 12 Randomized.log", Name{"x", "12"}},
		{"Ruby 4-randomized.gba", Name{"ruby", "4"}},
		{"", Name{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func writeLog(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("log"), 0o600); err != nil {
		t.Fatal(err)
	}
	mod := time.Now().Add(-age)
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	exact := writeLog(t, dir, "Fire Red 12AutoRandomized.gba.log", time.Hour)
	newest := writeLog(t, dir, "fire_red_3.log", time.Minute)
	writeLog(t, dir, "fire_red_2.log", 2*time.Hour)
	writeLog(t, dir, "emerald 12.log", 0)
	writeLog(t, dir, "fire red 12.txt", 0)

	tests := []struct {
		game string
		want string
	}{
		{"Fire Red 12.gba", exact},
		{"FIRE RED 12", exact},
		{"Fire Red 99.gba", newest},
		{"Fire Red.gba", newest},
	}
	for _, tt := range tests {
		t.Run(tt.game, func(t *testing.T) {
			got, err := Find(dir, tt.game)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Find() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFind_SeparatedPostfix(t *testing.T) {
	dir := t.TempDir()
	want := writeLog(t, dir, "Kaizo 12 AutoRandomized.gba.log", 0)
	writeLog(t, dir, "Kaizo 11 AutoRandomized.gba.log", time.Hour)

	got, err := Find(dir, "Kaizo 12")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %s, want %s", got, want)
	}
}

func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "emerald.log", 0)

	for _, game := range []string{"Ruby", ""} {
		if _, err := Find(dir, game); !errors.Is(err, ErrNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrNotFound", game, err)
		}
	}
	if _, err := Find(filepath.Join(dir, "missing"), "Ruby"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("missing dir error = %v", err)
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	paths, err := Watch(ctx, dir, nil)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "run.log")
	if err := os.WriteFile(want, []byte("Randomizer Version: 4"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-paths:
		if got != want {
			t.Errorf("Watch() sent %s, want %s", got, want)
		}
	case <-ctx.Done():
		t.Fatal("no log reported")
	}

	cancel()
	for range paths {
	}
}

func TestWatch_MissingDir(t *testing.T) {
	if _, err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("expected error")
	}
}
