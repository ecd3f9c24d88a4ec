package tabs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/canvas"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/rlog"
	"github.com/llehouerou/dexlog/internal/ui/render"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// detailTab shows one record. Load builds its buttons.
type detailTab struct {
	base
	ctx    *Context
	infoID int
}

func newDetailTab(id navigator.TabID) detailTab {
	return detailTab{base: base{id: id}, infoID: navigator.NoInfo}
}

func (t *detailTab) InfoID() int { return t.infoID }

func (t *detailTab) begin(id int) {
	t.reset()
	t.infoID = id
}

// link adds a clickable cell at x, y on page.
func (t *detailTab) link(id string, x, y, page int, label string, onClick func()) *button.Button {
	return t.add(&button.Button{
		ID:          id,
		Box:         button.Box{X: x, Y: y, W: render.Width(label) + 2, H: 1},
		Label:       label,
		Kind:        button.KindCell,
		PageVisible: page,
		OnClick:     onClick,
	})
}

func (t *detailTab) pageLabel(id string, x, y, page int, text string) *button.Button {
	b := t.addLabel(id, x, y, text)
	b.PageVisible = page
	return b
}

// --- Pokémon ---

// Pokémon detail pages.
const (
	pokemonPageSummary = 1
	pokemonPageWhere   = 2
	pokemonPageMoves   = 3
)

const (
	statBarX     = Margin + 9
	statBarWidth = 20
	statBarMax   = 255
	spriteWidth  = 16
	spriteHeight = 8
)

type pokemonZoom struct {
	detailTab
	stats rlog.BaseStats
}

// NewPokemonZoom creates the Pokémon detail tab.
func NewPokemonZoom() Tab {
	return &pokemonZoom{detailTab: newDetailTab(navigator.TabPokemonZoom)}
}

func (t *pokemonZoom) Caps() Capability { return CanLoad | CanRebuild | CanDraw }

func (t *pokemonZoom) Build(ctx *Context) {
	t.ctx = ctx
	t.reset()
}

func (t *pokemonZoom) Rebuild(ctx *Context) {
	t.ctx = ctx
	t.Load(t.infoID)
}

// Load implements Tab.
func (t *pokemonZoom) Load(id int) int {
	t.begin(id)
	ctx := t.ctx
	if ctx == nil || ctx.Log == nil {
		return 1
	}
	p, ok := ctx.Log.Pokemon[id]
	if !ok {
		return 1
	}
	txt := ctx.Text
	t.stats = p.Stats
	l := ctx.Layout.Normalize()
	right := l.Width / 2

	// Summary page.
	y := GridTop
	title := t.pageLabel("zoom/title", Margin, y, 0, fmt.Sprintf("#%03d %s", p.ID, render.TitleCase(p.Name)))
	title.Selected = true
	t.pageLabel("zoom/types", right, y, pokemonPageSummary,
		txt.Pokemon.Types+": "+render.TitleCase(strings.Join(p.Types, "/")))

	stats := []int{p.Stats.HP, p.Stats.Attack, p.Stats.Defense, p.Stats.SpAttack, p.Stats.SpDefense, p.Stats.Speed}
	for i, v := range stats {
		t.pageLabel("zoom/stat/"+strconv.Itoa(i), Margin, y+2+i, pokemonPageSummary,
			fmt.Sprintf("%-4s%4d", txt.StatLabel(i), v))
	}
	t.pageLabel("zoom/bst", Margin, y+2+len(stats), pokemonPageSummary,
		fmt.Sprintf("%-4s%4d", txt.Pokemon.BST, p.Stats.Total()))

	ry := y + 2
	t.pageLabel("zoom/abilities", right, ry, pokemonPageSummary,
		txt.Pokemon.Abilities+": "+render.TitleCase(strings.Join(p.Abilities, ", ")))
	ry += 2
	if len(p.Evolutions) == 0 {
		t.pageLabel("zoom/evo", right, ry, pokemonPageSummary, txt.Pokemon.NoEvolutions)
	} else {
		t.pageLabel("zoom/evo", right, ry, pokemonPageSummary, txt.Pokemon.Evolutions)
		x := right
		for _, evo := range p.Evolutions {
			target, ok := ctx.Log.Pokemon[evo]
			if !ok {
				continue
			}
			b := t.link("zoom/evo/"+strconv.Itoa(evo), x, ry+1, pokemonPageSummary,
				render.TitleCase(target.Name), func() { showPokemon(ctx, evo) })
			x += b.Box.W + 1
		}
	}
	ry += 3
	if p.Item != "" {
		t.pageLabel("zoom/item", right, ry, pokemonPageSummary, txt.Pokemon.Item+": "+render.TitleCase(p.Item))
		ry++
	}
	if seen := ctx.tracked().Encounters(id); seen > 0 {
		t.pageLabel("zoom/seen", right, ry, pokemonPageSummary, fmt.Sprintf("%s: %s", txt.Pokemon.Encounters, humanize.Comma(int64(seen))))
		ry++
	}
	if note := ctx.tracked().Note(id); note != "" {
		t.pageLabel("zoom/note", right, ry, pokemonPageSummary, txt.Pokemon.Note+": "+render.Truncate(note, l.Width-right-Margin-render.Width(txt.Pokemon.Note)-2))
	}
	if sprite := t.sprite(id); sprite != "" {
		t.add(&button.Button{
			ID:          "zoom/sprite",
			Box:         button.Box{X: l.Width - Margin - spriteWidth, Y: l.Height - spriteHeight, W: spriteWidth, H: spriteHeight},
			Kind:        button.KindLabel,
			Image:       sprite,
			PageVisible: pokemonPageSummary,
		})
	}

	// Where page: routes and trainers using the Pokémon.
	y = GridTop + 2
	t.pageLabel("zoom/foundon", Margin, y, pokemonPageWhere, txt.Pokemon.FoundOn)
	rowLimit := l.Height - 1
	row := y + 1
	for _, rid := range ctx.Log.RoutesWith(id) {
		if row >= rowLimit {
			break
		}
		t.link("zoom/route/"+strconv.Itoa(rid), Margin, row, pokemonPageWhere,
			render.TitleCase(ctx.Log.Routes[rid].Name), func() { showRoute(ctx, rid) })
		row++
	}
	t.pageLabel("zoom/usedby", right, y, pokemonPageWhere, txt.Pokemon.UsedBy)
	row = y + 1
	for _, tid := range ctx.Log.TrainersWith(id) {
		if row >= rowLimit {
			break
		}
		tr := ctx.Log.Trainers[tid]
		t.link("zoom/trainer/"+strconv.Itoa(tid), right, row, pokemonPageWhere,
			render.TitleCase(tr.Class+" "+tr.Name), func() { showTrainer(ctx, tid) })
		row++
	}

	// Move pages, two columns per page.
	y = GridTop + 2
	perColumn := max(1, l.Height-y-1)
	perPage := perColumn * 2
	for i, m := range p.Moves {
		page := pokemonPageMoves + i/perPage
		slot := i % perPage
		x := Margin
		if slot >= perColumn {
			x = right
		}
		move := m.Move
		t.link(fmt.Sprintf("zoom/move/%d", i), x, y+slot%perColumn, page,
			fmt.Sprintf("%s %2d  %s", txt.Trainers.Level, m.Level, render.TitleCase(move)),
			func() {
				if ctx.Actions != nil {
					ctx.Actions.SearchMove(move)
				}
			})
	}
	for page := pokemonPageMoves; page < pokemonPageMoves+Pages(len(p.Moves), perPage); page++ {
		t.pageLabel(fmt.Sprintf("zoom/moves/%d", page), Margin, GridTop+1, page, txt.Pokemon.Moves)
	}

	return pokemonPageMoves - 1 + Pages(len(p.Moves), perPage)
}

func (t *pokemonZoom) sprite(id int) string {
	if t.ctx.SpritesDir == "" {
		return ""
	}
	path := filepath.Join(t.ctx.SpritesDir, strconv.Itoa(id)+".png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Draw paints the base stat bars of the summary page.
func (t *pokemonZoom) Draw(r canvas.Renderer, st navigator.State) {
	if st.Page != pokemonPageSummary || t.infoID == navigator.NoInfo {
		return
	}
	th := styles.T()
	stats := []int{t.stats.HP, t.stats.Attack, t.stats.Defense, t.stats.SpAttack, t.stats.SpDefense, t.stats.Speed}
	for i, v := range stats {
		w := max(1, v*statBarWidth/statBarMax)
		w = min(w, statBarWidth)
		color := styles.Blend(th.Error, th.Success, float64(v)/float64(statBarMax/2))
		r.FillRect(statBarX, GridTop+2+i, w, 1, canvas.Color(color))
	}
}

// --- Trainer ---

type trainerZoom struct {
	detailTab
}

// NewTrainerZoom creates the trainer detail tab.
func NewTrainerZoom() Tab {
	return &trainerZoom{detailTab: newDetailTab(navigator.TabTrainerZoom)}
}

func (t *trainerZoom) Caps() Capability { return CanLoad | CanRebuild }

func (t *trainerZoom) Build(ctx *Context) {
	t.ctx = ctx
	t.reset()
}

func (t *trainerZoom) Rebuild(ctx *Context) {
	t.ctx = ctx
	t.Load(t.infoID)
}

// Load implements Tab.
func (t *trainerZoom) Load(id int) int {
	t.begin(id)
	ctx := t.ctx
	if ctx == nil || ctx.Log == nil {
		return 1
	}
	tr, ok := ctx.Log.Trainers[id]
	if !ok {
		return 1
	}
	txt := ctx.Text

	y := GridTop
	title := t.addLabel("zoom/title", Margin, y, render.TitleCase(tr.Class+" "+tr.Name))
	title.Selected = true
	if tr.GymNumber > 0 {
		t.addLabel("zoom/gym", Margin+title.Box.W+2, y, fmt.Sprintf(txt.Trainers.Gym, humanize.Ordinal(tr.GymNumber)))
	}

	y += 2
	t.addLabel("zoom/party", Margin, y, txt.Trainers.Party)
	grid := NewGrid(ctx.Layout, pokemonCellWidth+6)
	grid.Top = y + 1
	for i, m := range tr.Party {
		label := fmt.Sprintf("%s %s%d", render.TitleCase(m.Name), txt.Trainers.Level, m.Level)
		pid := m.PokemonID
		b := t.add(&button.Button{
			ID:    fmt.Sprintf("zoom/member/%d", i),
			Box:   grid.Slot(i),
			Label: render.Truncate(label, grid.CellWidth),
			Kind:  button.KindCell,
		})
		if pid > 0 {
			b.OnClick = func() { showPokemon(ctx, pid) }
		}
	}

	y = grid.Slot(len(tr.Party)).Y + 2
	if len(tr.Party) == 0 {
		y = grid.Top + 1
	}
	toggle := t.link("zoom/defeated", Margin, y, 0, txt.Trainers.MarkDefeated, nil)
	toggle.OnClick = func() {
		ctx.tracked().ToggleDefeated(id)
	}
	toggle.UpdateSelf = func(b *button.Button) {
		b.Selected = ctx.tracked().Defeated(id)
	}
	return 1
}

// --- Route ---

type routeZoom struct {
	detailTab
	pages int
}

// NewRouteZoom creates the route detail tab, one page per encounter kind.
func NewRouteZoom() Tab {
	return &routeZoom{detailTab: newDetailTab(navigator.TabRouteZoom)}
}

func (t *routeZoom) Caps() Capability { return CanLoad | CanRebuild | CanCheckInput }

func (t *routeZoom) Build(ctx *Context) {
	t.ctx = ctx
	t.reset()
}

func (t *routeZoom) Rebuild(ctx *Context) {
	t.ctx = ctx
	t.Load(t.infoID)
}

// Load implements Tab.
func (t *routeZoom) Load(id int) int {
	t.begin(id)
	t.pages = 1
	ctx := t.ctx
	if ctx == nil || ctx.Log == nil {
		return 1
	}
	r, ok := ctx.Log.Routes[id]
	if !ok {
		return 1
	}
	txt := ctx.Text
	name := render.TitleCase(r.Name)

	kinds := r.Kinds()
	if len(kinds) == 0 {
		t.addLabel("zoom/title", Margin, GridTop, name).Selected = true
		t.addLabel("zoom/none", Margin, GridTop+2, txt.Routes.None)
		return 1
	}

	grid := NewGrid(ctx.Layout, pokemonCellWidth+8)
	grid.Top = GridTop + 2
	for i, kind := range kinds {
		page := i + 1
		title := t.pageLabel(fmt.Sprintf("zoom/title/%d", page), Margin, GridTop, page,
			name+" · "+kindLabel(ctx, kind))
		title.Selected = true

		for j, e := range r.Encounters[kind] {
			if j >= grid.PageSize() {
				break
			}
			label := fmt.Sprintf("%s "+txt.Routes.Levels, render.TitleCase(e.Name), e.MinLevel, e.MaxLevel)
			if e.MinLevel == e.MaxLevel {
				label = fmt.Sprintf("%s %s%d", render.TitleCase(e.Name), txt.Trainers.Level, e.MinLevel)
			}
			pid := e.PokemonID
			b := t.add(&button.Button{
				ID:          fmt.Sprintf("zoom/enc/%d/%d", page, j),
				Box:         grid.Slot(j),
				Label:       render.Truncate(label, grid.CellWidth),
				Kind:        button.KindCell,
				PageVisible: page,
			})
			if pid > 0 {
				b.OnClick = func() { showPokemon(ctx, pid) }
			}
		}
	}
	t.pages = len(kinds)
	return t.pages
}

// CheckInput turns to the next encounter kind when the title row is clicked.
func (t *routeZoom) CheckInput(_, y int, _ navigator.State) bool {
	if y != GridTop || t.pages <= 1 || t.ctx == nil || t.ctx.Actions == nil {
		return false
	}
	t.ctx.Actions.TurnPage(1)
	return true
}

func kindLabel(ctx *Context, k rlog.EncounterKind) string {
	switch k {
	case rlog.EncounterSurf:
		return ctx.Text.Filters.Surf
	case rlog.EncounterFish:
		return ctx.Text.Filters.Fish
	case rlog.EncounterRockSmash:
		return ctx.Text.Filters.RockSmash
	default:
		return ctx.Text.Filters.Walk
	}
}
