package tabs

import (
	"cmp"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/icons"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// Cell widths of the list grids.
const (
	pokemonCellWidth = 14
	trainerCellWidth = 28
	routeCellWidth   = 22
	tmCellWidth      = 22
)

// Filter keys.
const (
	FilterAll    = navigator.DefaultFilter
	FilterRival  = "Rival"
	FilterGym    = "Gym"
	FilterElite4 = "Elite4"
	FilterBoss   = "Boss"
	FilterWalk   = "Walk"
	FilterSurf   = "Surf"
	FilterFish   = "Fish"
)

// pokemonBuckets split the Pokémon grid by first letter.
var pokemonBuckets = []string{"ABC", "DEF", "GHI", "JKL", "MNO", "PQR", "STU", "VWXYZ"}

// initial returns the upper-cased first letter of name with any accent
// stripped, so "Élekid" files under E.
func initial(name string) (rune, bool) {
	name = norm.NFD.String(name)
	if name == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.ToUpper(r), true
}

func allLabel(ctx *Context) string { return ctx.Text.Filters.All }

func constLabel(s string) func(*Context) string {
	return func(*Context) string { return s }
}

// NewPokemonTab creates the Pokémon list.
func NewPokemonTab() Tab {
	t := newListTab(navigator.TabPokemon, pokemonCellWidth, nil)
	t.searchable = true

	byName := func(a, b int) int {
		return cmp.Compare(
			rlog.NormalizeName(t.ctx.Log.Pokemon[a].Name),
			rlog.NormalizeName(t.ctx.Log.Pokemon[b].Name),
		)
	}
	t.filters = append(t.filters, Filter{Key: FilterAll, Label: allLabel, Compare: byName})
	for _, bucket := range pokemonBuckets {
		t.filters = append(t.filters, Filter{
			Key:   bucket,
			Label: constLabel(bucket),
			Match: func(id int) bool {
				r, ok := initial(t.ctx.Log.Pokemon[id].Name)
				return ok && strings.ContainsRune(bucket, r)
			},
			Compare: byName,
		})
	}

	t.records = func(ctx *Context) []int { return ctx.Log.PokemonIDs() }
	t.cell = func(ctx *Context, id int) *button.Button {
		return &button.Button{
			ID:      fmt.Sprintf("pokemon/%d", id),
			Label:   render.Truncate(render.TitleCase(ctx.Log.Pokemon[id].Name), pokemonCellWidth),
			OnClick: func() { showPokemon(ctx, id) },
		}
	}
	return t
}

// NewTrainersTab creates the trainer list.
func NewTrainersTab() Tab {
	t := newListTab(navigator.TabTrainers, trainerCellWidth, nil)

	trainer := func(id int) *rlog.Trainer { return t.ctx.Log.Trainers[id] }
	byLevel := func(a, b int) int { return cmp.Compare(trainer(a).MaxLevel(), trainer(b).MaxLevel()) }
	byGym := func(a, b int) int { return cmp.Compare(trainer(a).GymNumber, trainer(b).GymNumber) }
	inGroup := func(g rlog.TrainerGroup) func(int) bool {
		return func(id int) bool { return trainer(id).Group == g }
	}

	t.filters = []Filter{
		{Key: FilterAll, Label: allLabel, Compare: byLevel},
		{Key: FilterRival, Label: func(c *Context) string { return c.Text.Filters.Rival }, Match: inGroup(rlog.GroupRival), Compare: byLevel},
		{Key: FilterGym, Label: func(c *Context) string { return c.Text.Filters.Gym }, Match: inGroup(rlog.GroupGym), Compare: byGym},
		{Key: FilterElite4, Label: func(c *Context) string { return c.Text.Filters.Elite4 }, Match: inGroup(rlog.GroupElite4), Compare: byLevel},
		{Key: FilterBoss, Label: func(c *Context) string { return c.Text.Filters.Boss }, Match: inGroup(rlog.GroupBoss), Compare: byLevel},
	}

	t.records = func(ctx *Context) []int { return ctx.Log.TrainerIDs() }
	t.cell = func(ctx *Context, id int) *button.Button {
		tr := ctx.Log.Trainers[id]
		level := fmt.Sprintf(" %s%d", ctx.Text.Trainers.Level, tr.MaxLevel())
		name := render.TitleCase(tr.Class + " " + tr.Name)
		label := render.Truncate(name, trainerCellWidth-render.Width(level)-2) + level
		return &button.Button{
			ID:      fmt.Sprintf("trainer/%d", id),
			Label:   label,
			OnClick: func() { showTrainer(ctx, id) },
			UpdateSelf: func(b *button.Button) {
				marker := "  "
				if ctx.tracked().Defeated(id) {
					marker = icons.Defeated() + " "
				}
				b.Label = marker + label
				b.Selected = ctx.tracked().Defeated(id)
			},
		}
	}
	return t
}

// NewRoutesTab creates the route list.
func NewRoutesTab() Tab {
	t := newListTab(navigator.TabRoutes, routeCellWidth, nil)

	hasKind := func(k rlog.EncounterKind) func(int) bool {
		return func(id int) bool { return len(t.ctx.Log.Routes[id].Encounters[k]) > 0 }
	}
	t.filters = []Filter{
		{Key: FilterAll, Label: allLabel},
		{Key: FilterWalk, Label: func(c *Context) string { return c.Text.Filters.Walk }, Match: hasKind(rlog.EncounterWalk)},
		{Key: FilterSurf, Label: func(c *Context) string { return c.Text.Filters.Surf }, Match: hasKind(rlog.EncounterSurf)},
		{Key: FilterFish, Label: func(c *Context) string { return c.Text.Filters.Fish }, Match: hasKind(rlog.EncounterFish)},
	}

	t.records = func(ctx *Context) []int { return ctx.Log.RouteIDs() }
	t.cell = func(ctx *Context, id int) *button.Button {
		return &button.Button{
			ID:      fmt.Sprintf("route/%d", id),
			Label:   render.Truncate(render.TitleCase(ctx.Log.Routes[id].Name), routeCellWidth),
			OnClick: func() { showRoute(ctx, id) },
		}
	}
	return t
}

// NewTMsTab creates the TM list. Clicking a TM searches Pokémon learning its move.
func NewTMsTab() Tab {
	t := newListTab(navigator.TabTMs, tmCellWidth, nil)

	byGym := func(a, b int) int { return cmp.Compare(t.ctx.Log.TMs[a].Gym, t.ctx.Log.TMs[b].Gym) }
	t.filters = []Filter{
		{Key: FilterAll, Label: allLabel},
		{
			Key:     FilterGym,
			Label:   func(c *Context) string { return c.Text.Filters.Gym },
			Match:   func(id int) bool { return t.ctx.Log.TMs[id].Gym > 0 },
			Compare: byGym,
		},
	}

	t.records = func(ctx *Context) []int { return ctx.Log.TMNumbers() }
	t.cell = func(ctx *Context, id int) *button.Button {
		tm := ctx.Log.TMs[id]
		return &button.Button{
			ID:    fmt.Sprintf("tm/%d", id),
			Label: render.Truncate(fmt.Sprintf("TM%02d %s", tm.Number, render.TitleCase(tm.Move)), tmCellWidth),
			OnClick: func() {
				if ctx.Actions != nil {
					ctx.Actions.SearchMove(tm.Move)
				}
			},
		}
	}
	return t
}

func showPokemon(ctx *Context, id int) {
	if ctx.Actions != nil {
		ctx.Actions.ShowPokemon(id)
	}
}

func showTrainer(ctx *Context, id int) {
	if ctx.Actions != nil {
		ctx.Actions.ShowTrainer(id)
	}
}

func showRoute(ctx *Context, id int) {
	if ctx.Actions != nil {
		ctx.Actions.ShowRoute(id)
	}
}
