// Package resources provides the translated strings of the overlay.
package resources

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed lang/*.toml
var langFS embed.FS

// DefaultLanguage is used when no language is configured and fills
// strings missing from other languages.
const DefaultLanguage = "english"

// Table holds every user-facing string for one language.
type Table struct {
	Language string `toml:"-"`
	Name     string `toml:"name"`

	Tabs struct {
		Pokemon  string `toml:"pokemon"`
		Trainers string `toml:"trainers"`
		Routes   string `toml:"routes"`
		TMs      string `toml:"tms"`
		Misc     string `toml:"misc"`
	} `toml:"tabs"`

	Header struct {
		Page string `toml:"page"`
	} `toml:"header"`

	Filters struct {
		All       string `toml:"all"`
		Rival     string `toml:"rival"`
		Gym       string `toml:"gym"`
		Elite4    string `toml:"elite4"`
		Boss      string `toml:"boss"`
		Walk      string `toml:"walk"`
		Surf      string `toml:"surf"`
		Fish      string `toml:"fish"`
		RockSmash string `toml:"rock_smash"`
	} `toml:"filters"`

	Pokemon struct {
		Types        string   `toml:"types"`
		BST          string   `toml:"bst"`
		Abilities    string   `toml:"abilities"`
		Evolutions   string   `toml:"evolutions"`
		NoEvolutions string   `toml:"no_evolutions"`
		Moves        string   `toml:"moves"`
		Item         string   `toml:"item"`
		Note         string   `toml:"note"`
		Encounters   string   `toml:"encounters"`
		FoundOn      string   `toml:"found_on"`
		UsedBy       string   `toml:"used_by"`
		Stats        []string `toml:"stats"`
	} `toml:"pokemon"`

	Trainers struct {
		Level        string `toml:"level"`
		Gym          string `toml:"gym"`
		Party        string `toml:"party"`
		Defeated     string `toml:"defeated"`
		MarkDefeated string `toml:"mark_defeated"`
	} `toml:"trainers"`

	Routes struct {
		Levels string `toml:"levels"`
		None   string `toml:"none"`
	} `toml:"routes"`

	TMs struct {
		GymReward string `toml:"gym_reward"`
	} `toml:"tms"`

	Misc struct {
		Version  string `toml:"version"`
		Seed     string `toml:"seed"`
		Starters string `toml:"starters"`
		OpenLog  string `toml:"open_log"`
		Search   string `toml:"search"`
		LoadData string `toml:"load_data"`
		SaveData string `toml:"save_data"`
		Settings string `toml:"settings"`
		Saved    string `toml:"saved"`
		NoData   string `toml:"no_data"`
		NoLog    string `toml:"no_log"`
	} `toml:"misc"`

	Search struct {
		Title   string `toml:"title"`
		Term    string `toml:"term"`
		Field   string `toml:"field"`
		Name    string `toml:"name"`
		Ability string `toml:"ability"`
		Move    string `toml:"move"`
		Apply   string `toml:"apply"`
		Clear   string `toml:"clear"`
		Close   string `toml:"close"`
	} `toml:"search"`

	Forms struct {
		SaveTitle     string `toml:"save_title"`
		FileName      string `toml:"file_name"`
		Overwrite     string `toml:"overwrite"`
		Save          string `toml:"save"`
		Cancel        string `toml:"cancel"`
		SettingsTitle string `toml:"settings_title"`
		Language      string `toml:"language"`
		AutoDetect    string `toml:"auto_detect"`
		Apply         string `toml:"apply"`
		ErrorTitle    string `toml:"error_title"`
		OK            string `toml:"ok"`
	} `toml:"forms"`

	Screens struct {
		Tracker  string `toml:"tracker"`
		GameOver string `toml:"game_over"`
		Startup  string `toml:"startup"`
		Hint     string `toml:"hint"`
	} `toml:"screens"`
}

// Languages returns the available language keys, sorted.
func Languages() []string {
	entries, err := langFS.ReadDir("lang")
	if err != nil {
		return []string{DefaultLanguage}
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(langs)
	return langs
}

// Load returns the table for lang. Strings missing from lang fall back
// to the default language.
func Load(lang string) (*Table, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLanguage
	}
	if !slices.Contains(Languages(), lang) {
		return nil, fmt.Errorf("unknown language %q", lang)
	}

	var t Table
	if err := decode(DefaultLanguage, &t); err != nil {
		return nil, err
	}
	if lang != DefaultLanguage {
		base := t.Pokemon.Stats
		t.Pokemon.Stats = nil
		if err := decode(lang, &t); err != nil {
			return nil, err
		}
		if len(t.Pokemon.Stats) != len(base) {
			t.Pokemon.Stats = base
		}
	}
	t.Language = lang
	return &t, nil
}

// MustDefault returns the default table. It panics if the embedded
// default language is broken.
func MustDefault() *Table {
	t, err := Load(DefaultLanguage)
	if err != nil {
		panic(err)
	}
	return t
}

func decode(lang string, t *Table) error {
	data, err := langFS.ReadFile(path.Join("lang", lang+".toml"))
	if err != nil {
		return fmt.Errorf("read language %s: %w", lang, err)
	}
	if err := toml.Unmarshal(data, t); err != nil {
		return fmt.Errorf("parse language %s: %w", lang, err)
	}
	return nil
}

// StatLabel returns the short label of base stat i, in HP, Atk, Def,
// SpA, SpD, Spe order.
func (t *Table) StatLabel(i int) string {
	if i < 0 || i >= len(t.Pokemon.Stats) {
		return ""
	}
	return t.Pokemon.Stats[i]
}
