// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"fmt"

	"github.com/llehouerou/dexlog/internal/button"
	"github.com/llehouerou/dexlog/internal/icons"
	"github.com/llehouerou/dexlog/internal/navigator"
	"github.com/llehouerou/dexlog/internal/resources"
	"github.com/llehouerou/dexlog/internal/tabs"
	"github.com/llehouerou/dexlog/internal/ui/render"
	"github.com/llehouerou/dexlog/internal/ui/styles"
)

// Height is the fixed height of the header bar (tab row and rule).
const Height = tabs.HeaderHeight

// Row is the canvas row of the header buttons.
const Row = 0

// iconWidth is the width of the close/back and pager slots.
const iconWidth = 3

// Navigator is the part of the navigator the header drives.
type Navigator interface {
	State() navigator.State
	NextPage()
	PrevPage()
	GoBack()
}

// Actions are the overlay operations behind the header buttons.
type Actions interface {
	ShowList(tab navigator.TabID, filter string)
	// CloseOverlay hides the overlay and leaves to the application screen.
	CloseOverlay()
}

// Bar holds the header buttons.
type Bar struct {
	nav     Navigator
	actions Actions
	width   int
	buttons []*button.Button

	icon *button.Button
	page *button.Button
}

// New creates an empty header bar. Build lays out its buttons.
func New(nav Navigator, actions Actions) *Bar {
	return &Bar{nav: nav, actions: actions}
}

// Buttons returns the header buttons in registration order.
func (b *Bar) Buttons() []*button.Button {
	return b.buttons
}

// Icon returns the close/back button.
func (b *Bar) Icon() *button.Button {
	return b.icon
}

// BackMode reports whether the icon navigates back for st.
func BackMode(st navigator.State) bool {
	return st.Tab.IsDetail()
}

func shown(st navigator.State) bool {
	return st.Tab != navigator.TabNone
}

func paged(st navigator.State) bool {
	return shown(st) && st.TotalPages > 1
}

// closeX returns the icon position in close mode.
func (b *Bar) closeX() int {
	return b.width - tabs.Margin - iconWidth
}

// backX returns the icon position in back mode.
func (b *Bar) backX() int {
	return b.closeX() - iconWidth
}

// Build lays out the header for the given width and strings.
func (b *Bar) Build(txt *resources.Table, width int) {
	b.width = max(width, tabs.MinWidth)
	b.buttons = nil

	labels := map[navigator.TabID]struct{ icon, name string }{
		navigator.TabPokemon:  {icons.Current().Pokemon, txt.Tabs.Pokemon},
		navigator.TabTrainers: {icons.Current().Trainers, txt.Tabs.Trainers},
		navigator.TabRoutes:   {icons.Current().Routes, txt.Tabs.Routes},
		navigator.TabTMs:      {icons.Current().TMs, txt.Tabs.TMs},
		navigator.TabMisc:     {icons.Current().Misc, txt.Tabs.Misc},
	}
	x := tabs.Margin
	for _, id := range navigator.ListTabs {
		l := labels[id]
		label := l.icon + l.name
		w := render.Width(label) + 2
		b.add(&button.Button{
			ID:      "header/tab/" + id.String(),
			Box:     button.Box{X: x, Y: Row, W: w, H: 1},
			Label:   label,
			Kind:    button.KindText,
			Visible: shown,
			OnClick: func() { b.actions.ShowList(id, tabs.FilterAll) },
			UpdateSelf: func(btn *button.Button) {
				btn.Selected = b.nav.State().Tab.ListTab() == id
			},
		})
		x += w + 1
	}

	// Pager sits left of both icon positions.
	nextX := b.backX() - iconWidth - 1
	b.add(&button.Button{
		ID:      "header/next",
		Box:     button.Box{X: nextX, Y: Row, W: iconWidth, H: 1},
		Label:   icons.Next(),
		Kind:    button.KindIcon,
		Visible: paged,
		OnClick: func() { b.nav.NextPage() },
	})
	b.page = b.add(&button.Button{
		ID:      "header/page",
		Box:     button.Box{Y: Row, H: 1},
		Kind:    button.KindLabel,
		Visible: paged,
		UpdateSelf: func(btn *button.Button) {
			st := b.nav.State()
			btn.Label = fmt.Sprintf(txt.Header.Page, st.Page, st.TotalPages)
			btn.Box.W = render.Width(btn.Label)
			btn.Box.X = nextX - 1 - btn.Box.W
		},
	})
	b.add(&button.Button{
		ID:      "header/prev",
		Box:     button.Box{Y: Row, W: iconWidth, H: 1},
		Label:   icons.Prev(),
		Kind:    button.KindIcon,
		Visible: paged,
		OnClick: func() { b.nav.PrevPage() },
		UpdateSelf: func(btn *button.Button) {
			btn.Box.X = b.page.Box.X - 1 - iconWidth
		},
	})

	b.icon = b.add(&button.Button{
		ID:         "header/icon",
		Box:        button.Box{X: b.closeX(), Y: Row, W: iconWidth, H: 1},
		Kind:       button.KindIcon,
		Visible:    shown,
		OnClick:    b.iconClicked,
		UpdateSelf: b.updateIcon,
	})
	b.UpdateSelf()
}

func (b *Bar) add(btn *button.Button) *button.Button {
	b.buttons = append(b.buttons, btn)
	return btn
}

// updateIcon switches the icon between back and close mode.
func (b *Bar) updateIcon(btn *button.Button) {
	th := styles.T()
	if BackMode(b.nav.State()) {
		btn.Label = icons.Back()
		btn.Color = string(th.Secondary)
		btn.Box.X = b.backX()
		return
	}
	btn.Label = icons.Close()
	btn.Color = string(th.Error)
	btn.Box.X = b.closeX()
}

func (b *Bar) iconClicked() {
	if BackMode(b.nav.State()) {
		b.nav.GoBack()
		return
	}
	b.actions.CloseOverlay()
}

// UpdateSelf runs the per-frame updates of the header buttons.
func (b *Bar) UpdateSelf() {
	for _, btn := range b.buttons {
		if btn.UpdateSelf != nil {
			btn.UpdateSelf(btn)
		}
	}
}
