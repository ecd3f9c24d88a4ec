package rlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Parser reads a randomizer log.
type Parser interface {
	Parse(r io.Reader, path string) (*Log, error)
}

// TextParser parses the plain-text log written by the randomizer.
type TextParser struct{}

var _ Parser = TextParser{}

// ParseFile parses the log at path.
func ParseFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	return TextParser{}.Parse(f, path)
}

// Section headers.
const (
	sectionStats      = "pokemon base stats & types"
	sectionEvolutions = "randomized evolutions"
	sectionMovesets   = "pokemon movesets"
	sectionTMs        = "tm moves"
	sectionTrainers   = "trainers pokemon"
	sectionWild       = "wild pokemon"
	sectionStarters   = "random starters"
)

var (
	sectionRe   = regexp.MustCompile(`^--(.+)--$`)
	movesetRe   = regexp.MustCompile(`^(\d+)\s+(.+?)(?:\s+->.*)?$`)
	levelMoveRe = regexp.MustCompile(`^Level\s+(\d+)\s*:\s*(.+)$`)
	tmRe        = regexp.MustCompile(`^TM(\d+)\s+(.+)$`)
	trainerRe   = regexp.MustCompile(`^#(\d+)\s+\((.+?)\)(?:@(\S+))?\s+-\s+(.*)$`)
	memberRe    = regexp.MustCompile(`^(.+?)\s+Lv(\d+)$`)
	wildSetRe   = regexp.MustCompile(`^Set\s+#\d+\s+-\s+(.+?)\s+(Grass/Cave|Surfing|Rock Smash|Fishing|Old Rod|Good Rod|Super Rod)(?:\s+\(rate=\d+\))?$`)
	wildSlotRe  = regexp.MustCompile(`^(.+?)\s+Lv(\d+)(?:-(\d+))?\b`)
	starterRe   = regexp.MustCompile(`^Set starter \d+ to (.+)$`)
)

// gymTMs maps TM numbers handed out by gym leaders to their gym.
var gymTMs = map[int]int{39: 1, 3: 2, 34: 3, 19: 4, 6: 5, 4: 6, 38: 7, 26: 8}

type parseState struct {
	log      *Log
	section  string
	moveset  *Pokemon
	wildKind EncounterKind
	route    *Route
	gyms     int
	evolves  [][2]string
	starters []string
}

// Parse implements Parser.
func (TextParser) Parse(r io.Reader, path string) (*Log, error) {
	st := &parseState{
		log: New(path),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := st.line(strings.TrimRight(sc.Text(), " \t\r")); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if len(st.log.Pokemon) == 0 {
		return nil, fmt.Errorf("%s: no pokemon found", path)
	}

	st.resolve()
	return st.log, nil
}

func (st *parseState) line(line string) error {
	if m := sectionRe.FindStringSubmatch(line); m != nil {
		st.section = strings.ToLower(strings.TrimSpace(m[1]))
		st.moveset = nil
		st.route = nil
		return nil
	}

	if st.section == "" {
		st.header(line)
		return nil
	}
	if line == "" {
		st.moveset = nil
		st.route = nil
		return nil
	}

	switch st.section {
	case sectionStats:
		return st.stats(line)
	case sectionEvolutions:
		st.evolution(line)
	case sectionMovesets:
		return st.movesetLine(line)
	case sectionTMs:
		return st.tm(line)
	case sectionTrainers:
		return st.trainer(line)
	case sectionWild:
		return st.wild(line)
	case sectionStarters:
		if m := starterRe.FindStringSubmatch(line); m != nil {
			st.starters = append(st.starters, strings.TrimSpace(m[1]))
		}
	}
	return nil
}

func (st *parseState) header(line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	switch strings.TrimSpace(key) {
	case "Randomizer Version":
		st.log.Version = strings.TrimSpace(value)
	case "Random Seed":
		st.log.Seed = strings.TrimSpace(value)
	}
}

func (st *parseState) stats(line string) error {
	cols := strings.Split(line, "|")
	if len(cols) < 9 || strings.TrimSpace(cols[0]) == "NUM" {
		return nil
	}
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	id, err := strconv.Atoi(cols[0])
	if err != nil {
		return fmt.Errorf("pokemon number %q: %w", cols[0], err)
	}
	nums := make([]int, 6)
	for i := range nums {
		nums[i], err = strconv.Atoi(cols[3+i])
		if err != nil {
			return fmt.Errorf("%s stat %q: %w", cols[1], cols[3+i], err)
		}
	}

	p := &Pokemon{
		ID:    id,
		Name:  cols[1],
		Types: strings.Split(cols[2], "/"),
		Stats: BaseStats{
			HP:        nums[0],
			Attack:    nums[1],
			Defense:   nums[2],
			SpAttack:  nums[3],
			SpDefense: nums[4],
			Speed:     nums[5],
		},
	}
	for _, a := range cols[9:min(len(cols), 11)] {
		if a != "" && a != "-------" && !containsFold(p.Abilities, a) {
			p.Abilities = append(p.Abilities, a)
		}
	}
	if len(cols) > 11 {
		p.Item = cols[11]
	}
	st.log.AddPokemon(p)
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// evolution lines look like "EEVEE -> VAPOREON, JOLTEON and FLAREON".
func (st *parseState) evolution(line string) {
	from, to, ok := strings.Cut(line, "->")
	if !ok {
		return
	}
	to = strings.ReplaceAll(to, " and ", ",")
	for name := range strings.SplitSeq(to, ",") {
		if name = strings.TrimSpace(name); name != "" {
			st.evolves = append(st.evolves, [2]string{strings.TrimSpace(from), name})
		}
	}
}

func (st *parseState) movesetLine(line string) error {
	if m := levelMoveRe.FindStringSubmatch(line); m != nil {
		if st.moveset == nil {
			return nil
		}
		level, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("move level %q: %w", m[1], err)
		}
		st.moveset.Moves = append(st.moveset.Moves, LevelMove{Level: level, Move: strings.TrimSpace(m[2])})
		return nil
	}
	if m := movesetRe.FindStringSubmatch(line); m != nil {
		id, _ := strconv.Atoi(m[1])
		st.moveset = st.log.Pokemon[id]
	}
	return nil
}

func (st *parseState) tm(line string) error {
	m := tmRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("tm number %q: %w", m[1], err)
	}
	st.log.TMs[n] = &TM{Number: n, Move: strings.TrimSpace(m[2]), Gym: gymTMs[n]}
	return nil
}

func (st *parseState) trainer(line string) error {
	m := trainerRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("trainer number %q: %w", m[1], err)
	}

	display, _, _ := strings.Cut(m[2], "=>")
	display = strings.TrimSpace(display)
	class, name := display, display
	if i := strings.LastIndex(display, " "); i > 0 {
		class, name = display[:i], display[i+1:]
	}

	t := &Trainer{ID: id, Name: name, Class: class}
	t.Group = classify(class, m[3])
	if t.Group == GroupGym {
		st.gyms++
		t.GymNumber = st.gyms
	}

	for member := range strings.SplitSeq(m[4], ",") {
		mm := memberRe.FindStringSubmatch(strings.TrimSpace(member))
		if mm == nil {
			continue
		}
		level, _ := strconv.Atoi(mm[2])
		t.Party = append(t.Party, PartyMember{Name: mm[1], Level: level})
	}
	st.log.Trainers[id] = t
	return nil
}

func classify(class, tag string) TrainerGroup {
	tag = strings.ToUpper(tag)
	class = strings.ToUpper(class)
	switch {
	case strings.Contains(tag, "RIVAL"), strings.Contains(class, "RIVAL"):
		return GroupRival
	case strings.HasPrefix(tag, "GYM"), strings.Contains(class, "LEADER"):
		return GroupGym
	case strings.HasPrefix(tag, "ELITE"), strings.Contains(tag, "CHAMPION"),
		strings.Contains(class, "ELITE FOUR"), strings.Contains(class, "CHAMPION"):
		return GroupElite4
	case strings.Contains(tag, "BOSS"), strings.Contains(class, "BOSS"):
		return GroupBoss
	default:
		return GroupOther
	}
}

func (st *parseState) wild(line string) error {
	if m := wildSetRe.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[1])
		st.route = st.routeNamed(name)
		st.wildKind = encounterKind(m[2])
		return nil
	}
	if st.route == nil {
		return nil
	}
	m := wildSlotRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	minLevel, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("encounter level %q: %w", m[2], err)
	}
	maxLevel := minLevel
	if m[3] != "" {
		maxLevel, _ = strconv.Atoi(m[3])
	}
	st.route.Encounters[st.wildKind] = append(st.route.Encounters[st.wildKind], Encounter{
		Name:     strings.TrimSpace(m[1]),
		MinLevel: minLevel,
		MaxLevel: maxLevel,
	})
	return nil
}

func (st *parseState) routeNamed(name string) *Route {
	for _, r := range st.log.Routes {
		if strings.EqualFold(r.Name, name) {
			return r
		}
	}
	r := &Route{
		ID:         len(st.log.Routes) + 1,
		Name:       name,
		Encounters: make(map[EncounterKind][]Encounter),
	}
	st.log.Routes[r.ID] = r
	return r
}

func encounterKind(s string) EncounterKind {
	switch s {
	case "Surfing":
		return EncounterSurf
	case "Fishing", "Old Rod", "Good Rod", "Super Rod":
		return EncounterFish
	case "Rock Smash":
		return EncounterRockSmash
	default:
		return EncounterWalk
	}
}

// resolve links names to Pokémon ids once every species is known.
func (st *parseState) resolve() {
	for _, name := range st.starters {
		if p, ok := st.log.PokemonByName(name); ok {
			st.log.Starters = append(st.log.Starters, p.ID)
		}
	}
	for _, ev := range st.evolves {
		from, ok1 := st.log.PokemonByName(ev[0])
		to, ok2 := st.log.PokemonByName(ev[1])
		if ok1 && ok2 {
			from.Evolutions = append(from.Evolutions, to.ID)
		}
	}
	for _, t := range st.log.Trainers {
		for i := range t.Party {
			if p, ok := st.log.PokemonByName(t.Party[i].Name); ok {
				t.Party[i].PokemonID = p.ID
			}
		}
	}
	for _, r := range st.log.Routes {
		for kind, list := range r.Encounters {
			for i := range list {
				if p, ok := st.log.PokemonByName(list[i].Name); ok {
					list[i].PokemonID = p.ID
				}
			}
			r.Encounters[kind] = list
		}
	}
}
