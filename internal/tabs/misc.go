package tabs

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/ui/render"
)

// miscTab shows log information, starters and the form actions.
type miscTab struct {
	base
}

// NewMiscTab creates the misc tab.
func NewMiscTab() Tab {
	return &miscTab{base: base{id: navigator.TabMisc}}
}

func (t *miscTab) Caps() Capability { return CanRebuild }

func (t *miscTab) Rebuild(ctx *Context) { t.Build(ctx) }

func (t *miscTab) Build(ctx *Context) {
	t.reset()
	txt := ctx.Text
	y := GridTop

	if ctx.Log == nil {
		t.addLabel("misc/nolog", Margin, y, txt.Misc.NoLog)
	} else {
		t.addLabel("misc/version", Margin, y, fmt.Sprintf("%s %s", txt.Misc.Version, ctx.Log.Version))
		t.addLabel("misc/seed", Margin+30, y, fmt.Sprintf("%s %s", txt.Misc.Seed, ctx.Log.Seed))

		y += 2
		t.addLabel("misc/starters", Margin, y, txt.Misc.Starters)
		x := Margin + render.Width(txt.Misc.Starters) + 2
		for _, id := range ctx.Log.Starters {
			p, ok := ctx.Log.Pokemon[id]
			if !ok {
				continue
			}
			label := render.TitleCase(p.Name)
			w := render.Width(label) + 2
			t.add(&button.Button{
				ID:      fmt.Sprintf("misc/starter/%d", id),
				Box:     button.Box{X: x, Y: y, W: w, H: 1},
				Label:   label,
				Kind:    button.KindCell,
				OnClick: func() { showPokemon(ctx, id) },
			})
			x += w + 1
		}
	}

	y += 2
	summary := txt.Misc.NoData
	if game, savedAt, ok := ctx.tracked().Summary(); ok {
		summary = game + " · " + fmt.Sprintf(txt.Misc.Saved, humanize.Time(savedAt))
	}
	t.addLabel("misc/tracked", Margin, y, summary)

	y += 2
	x := Margin
	for _, a := range []struct {
		id    string
		label string
		run   func(Actions)
	}{
		{"open", txt.Misc.OpenLog, Actions.OpenLog},
		{"search", txt.Misc.Search, Actions.OpenSearch},
		{"load", txt.Misc.LoadData, Actions.LoadData},
		{"save", txt.Misc.SaveData, Actions.SaveData},
		{"settings", txt.Misc.Settings, Actions.OpenSettings},
	} {
		w := render.Width(a.label) + 2
		run := a.run
		t.add(&button.Button{
			ID:    "misc/action/" + a.id,
			Box:   button.Box{X: x, Y: y, W: w, H: 1},
			Label: a.label,
			Kind:  button.KindCell,
			OnClick: func() {
				if ctx.Actions != nil {
					run(ctx.Actions)
				}
			},
		})
		x += w + 1
	}
}
