// Test program to check how a randomizer log is found and parsed
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/dexlog/internal/logfinder"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/trackerdata"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <log file | log dir game name | data.tdat>", filepath.Base(os.Args[0]))
	}
	path := os.Args[1]

	if strings.EqualFold(filepath.Ext(path), trackerdata.Ext) {
		checkData(path)
		return
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		game := strings.Join(os.Args[2:], " ")
		name := logfinder.Normalize(game)
		log.Printf("Looking for %q (prefix %q, number %q) in %s", game, name.Prefix, name.Number, path)
		found, err := logfinder.Find(path, game)
		if err != nil {
			log.Fatalf("Failed to find log: %v", err)
		}
		log.Printf("Found %s", found)
		path = found
	}

	rl, err := rlog.ParseFile(path)
	if err != nil {
		log.Fatalf("Failed to parse log: %v", err)
	}
	log.Printf("Randomizer %s, seed %s", rl.Version, rl.Seed)
	log.Printf("  %d pokemon, %d trainers, %d routes, %d TMs",
		len(rl.Pokemon), len(rl.Trainers), len(rl.Routes), len(rl.TMs))

	for _, id := range rl.Starters {
		if p, ok := rl.Pokemon[id]; ok {
			log.Printf("  Starter: %s (%s)", p.Name, strings.Join(p.Types, "/"))
		}
	}
	for _, id := range rl.TrainerIDs() {
		t := rl.Trainers[id]
		if t.Group != rlog.GroupGym {
			continue
		}
		log.Printf("  Gym %d: %s %s, max level %d", t.GymNumber, t.Class, t.Name, t.MaxLevel())
	}
}

func checkData(path string) {
	d, err := trackerdata.Load(context.Background(), path)
	if err != nil {
		log.Fatalf("Failed to load tracked data: %v", err)
	}
	game, savedAt, _ := d.Summary()
	log.Printf("Session %s for %q, saved %s", d.SessionID(), game, savedAt.Format("2006-01-02 15:04"))
}
