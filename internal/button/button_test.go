package button

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/dexlog/internal/navigator"
)

func TestBox_Contains(t *testing.T) {
	b := Box{X: 2, Y: 1, W: 3, H: 2}

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{4, 2, true},
		{5, 1, false},
		{2, 3, false},
		{1, 1, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestIsVisible_TabAndPage(t *testing.T) {
	b := &Button{Tab: navigator.TabPokemon, PageVisible: 2}

	assert.True(t, b.IsVisible(navigator.State{Tab: navigator.TabPokemon, Page: 2}))
	assert.False(t, b.IsVisible(navigator.State{Tab: navigator.TabPokemon, Page: 1}))
	assert.False(t, b.IsVisible(navigator.State{Tab: navigator.TabTrainers, Page: 2}))

	always := &Button{Tab: navigator.TabMisc}
	assert.True(t, always.IsVisible(navigator.State{Tab: navigator.TabMisc, Page: 3}))
}

func TestIsVisible_Override(t *testing.T) {
	b := &Button{
		Tab:     navigator.TabPokemon,
		Visible: func(st navigator.State) bool { return st.TotalPages > 1 },
	}

	assert.True(t, b.IsVisible(navigator.State{Tab: navigator.TabRoutes, TotalPages: 2}))
	assert.False(t, b.IsVisible(navigator.State{Tab: navigator.TabPokemon, TotalPages: 1}))
}

func TestHitTest_LastRegisteredWins(t *testing.T) {
	st := navigator.State{Tab: navigator.TabPokemon, Page: 1}
	noop := func() {}
	under := &Button{ID: "under", Tab: navigator.TabPokemon, Box: Box{0, 0, 10, 2}, OnClick: noop}
	over := &Button{ID: "over", Tab: navigator.TabPokemon, Box: Box{5, 0, 10, 2}, OnClick: noop}
	hidden := &Button{ID: "hidden", Tab: navigator.TabPokemon, PageVisible: 2, Box: Box{0, 0, 20, 2}, OnClick: noop}
	label := &Button{ID: "label", Tab: navigator.TabPokemon, Kind: KindLabel, Box: Box{0, 0, 20, 2}, OnClick: noop}
	buttons := []*Button{under, over, hidden, label}

	assert.Equal(t, "over", HitTest(buttons, st, 6, 1).ID)
	assert.Equal(t, "under", HitTest(buttons, st, 2, 0).ID)
	assert.Nil(t, HitTest(buttons, st, 30, 0))
}

func TestVisible(t *testing.T) {
	st := navigator.State{Tab: navigator.TabTMs, Page: 1}
	a := &Button{ID: "a", Tab: navigator.TabTMs, PageVisible: 1}
	b := &Button{ID: "b", Tab: navigator.TabTMs, PageVisible: 2}
	c := &Button{ID: "c", Tab: navigator.TabTMs}

	got := Visible([]*Button{a, b, c}, st)

	assert.Equal(t, []*Button{a, c}, got)
}
