// Package rlog holds the data of a parsed randomizer log.
package rlog

import (
	"slices"
	"strings"
)

// Log is the parsed content of one randomizer log file.
type Log struct {
	Path     string
	Version  string
	Seed     string
	Pokemon  map[int]*Pokemon
	Trainers map[int]*Trainer
	Routes   map[int]*Route
	TMs      map[int]*TM
	Starters []int

	byName map[string]int
}

// New returns an empty log for path.
func New(path string) *Log {
	return &Log{
		Path:     path,
		Pokemon:  make(map[int]*Pokemon),
		Trainers: make(map[int]*Trainer),
		Routes:   make(map[int]*Route),
		TMs:      make(map[int]*TM),
		byName:   make(map[string]int),
	}
}

// Identity distinguishes two logs. A new identity resets the overlay.
func (l *Log) Identity() string {
	if l == nil {
		return ""
	}
	return l.Path + "#" + l.Seed
}

// AddPokemon registers p and indexes it by name.
func (l *Log) AddPokemon(p *Pokemon) {
	l.Pokemon[p.ID] = p
	l.byName[NormalizeName(p.Name)] = p.ID
}

// PokemonByName returns the Pokémon with the given name, case-insensitive.
func (l *Log) PokemonByName(name string) (*Pokemon, bool) {
	id, ok := l.byName[NormalizeName(name)]
	if !ok {
		return nil, false
	}
	return l.Pokemon[id], true
}

// PokemonIDs returns all Pokémon ids in ascending order.
func (l *Log) PokemonIDs() []int {
	return sortedKeys(l.Pokemon)
}

// TrainerIDs returns all trainer ids in ascending order.
func (l *Log) TrainerIDs() []int {
	return sortedKeys(l.Trainers)
}

// RouteIDs returns all route ids in ascending order.
func (l *Log) RouteIDs() []int {
	return sortedKeys(l.Routes)
}

// TMNumbers returns all TM numbers in ascending order.
func (l *Log) TMNumbers() []int {
	return sortedKeys(l.TMs)
}

// RoutesWith returns the ids of routes where the Pokémon can be encountered.
func (l *Log) RoutesWith(pokemonID int) []int {
	var ids []int
	for _, id := range l.RouteIDs() {
		if l.Routes[id].Has(pokemonID) {
			ids = append(ids, id)
		}
	}
	return ids
}

// TrainersWith returns the ids of trainers using the Pokémon.
func (l *Log) TrainersWith(pokemonID int) []int {
	var ids []int
	for _, id := range l.TrainerIDs() {
		for _, m := range l.Trainers[id].Party {
			if m.PokemonID == pokemonID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// NormalizeName folds a name for lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BaseStats are a Pokémon's base stats.
type BaseStats struct {
	HP, Attack, Defense, SpAttack, SpDefense, Speed int
}

// Total returns the base stat total.
func (s BaseStats) Total() int {
	return s.HP + s.Attack + s.Defense + s.SpAttack + s.SpDefense + s.Speed
}

// LevelMove is a move learned by level-up.
type LevelMove struct {
	Level int
	Move  string
}

// Pokemon is a species entry of the log.
type Pokemon struct {
	ID         int
	Name       string
	Types      []string
	Stats      BaseStats
	Abilities  []string
	Item       string
	Evolutions []int
	Moves      []LevelMove
}

// HasAbility reports whether the Pokémon has an ability matching match.
func (p *Pokemon) HasAbility(match func(string) bool) bool {
	return slices.ContainsFunc(p.Abilities, match)
}

// HasMove reports whether the Pokémon learns a move matching match.
func (p *Pokemon) HasMove(match func(string) bool) bool {
	for _, m := range p.Moves {
		if match(m.Move) {
			return true
		}
	}
	return false
}

// TrainerGroup classifies trainers for filtering.
type TrainerGroup int

const (
	GroupOther TrainerGroup = iota
	GroupRival
	GroupGym
	GroupElite4
	GroupBoss
)

// PartyMember is one Pokémon of a trainer's team.
type PartyMember struct {
	PokemonID int
	Name      string
	Level     int
}

// Trainer is a trainer entry of the log.
type Trainer struct {
	ID        int
	Name      string
	Class     string
	Group     TrainerGroup
	GymNumber int
	Party     []PartyMember
}

// MaxLevel returns the highest level in the trainer's party.
func (t *Trainer) MaxLevel() int {
	maxLevel := 0
	for _, m := range t.Party {
		maxLevel = max(maxLevel, m.Level)
	}
	return maxLevel
}

// EncounterKind is the method used to find wild Pokémon.
type EncounterKind int

const (
	EncounterWalk EncounterKind = iota
	EncounterSurf
	EncounterFish
	EncounterRockSmash
)

// EncounterKinds lists the kinds in display order.
var EncounterKinds = []EncounterKind{EncounterWalk, EncounterSurf, EncounterFish, EncounterRockSmash}

func (k EncounterKind) String() string {
	switch k {
	case EncounterWalk:
		return "walk"
	case EncounterSurf:
		return "surf"
	case EncounterFish:
		return "fish"
	case EncounterRockSmash:
		return "rocksmash"
	default:
		return "unknown"
	}
}

// Encounter is a wild Pokémon slot.
type Encounter struct {
	PokemonID int
	Name      string
	MinLevel  int
	MaxLevel  int
}

// Route is an area with wild encounters.
type Route struct {
	ID         int
	Name       string
	Encounters map[EncounterKind][]Encounter
}

// Kinds returns the encounter kinds available on the route, in display order.
func (r *Route) Kinds() []EncounterKind {
	var kinds []EncounterKind
	for _, k := range EncounterKinds {
		if len(r.Encounters[k]) > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Has reports whether the Pokémon appears on the route.
func (r *Route) Has(pokemonID int) bool {
	for _, list := range r.Encounters {
		for _, e := range list {
			if e.PokemonID == pokemonID {
				return true
			}
		}
	}
	return false
}

// TM is a technical machine.
type TM struct {
	Number int
	Move   string
	// Gym is the gym number rewarding this TM, zero when none.
	Gym int
}
