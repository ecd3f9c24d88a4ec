package formbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePopup_ReplacesActive(t *testing.T) {
	host := NewMockHost()
	b := New(host)

	first := b.CreatePopup("First", 30, 10)
	require.NotNil(t, first)
	label := first.AddLabel("hello", 1, 1)

	second := b.CreatePopup("Second", 30, 10)
	require.NotNil(t, second)

	assert.Same(t, second, b.Active())
	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.Equal(t, []WindowID{first.ID()}, host.Destroyed)
	assert.Equal(t, []string{"create First", "add label hello", "destroy First", "create Second"}, host.Calls)
	assert.Len(t, host.Windows, 1)

	_, ok := b.ControlType(label.ID)
	assert.False(t, ok, "controls of the destroyed popup are forgotten")
	assert.Equal(t, "", b.GetText(label.ID))
}

func TestCreatePopup_Options(t *testing.T) {
	host := NewMockHost()
	b := New(host)

	p := b.CreatePopup("Search", 40, 8)
	w := host.Windows[p.ID()]
	assert.True(t, w.BlockInput, "popups block input by default")
	assert.False(t, w.HasPosition)

	p = b.CreatePopup("Info", 20, 5, WithPosition(3, 4), WithBlockInput(false))
	w = host.Windows[p.ID()]
	assert.False(t, w.BlockInput)
	assert.True(t, w.HasPosition)
	assert.Equal(t, 3, w.X)
	assert.Equal(t, 4, w.Y)
}

func TestCreatePopup_HostUnavailable(t *testing.T) {
	tests := []struct {
		name string
		b    *Bridge
	}{
		{"nil host", New(nil)},
		{"unavailable", New(&MockHost{Unavailable: true})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.b.CreatePopup("x", 10, 10)
			assert.Nil(t, p)
			assert.Nil(t, tt.b.Active())
			assert.False(t, p.AddButton("ok", 0, 0, 4, nil).Valid())
			assert.Equal(t, "", tt.b.GetText(1))
			assert.False(t, tt.b.IsChecked(1))
			tt.b.SetText(1, "x")
			tt.b.DestroyPopup(nil)

			path, ok := tt.b.OpenFileDialog("a.tdat", "/tmp", "Data (*.tdat)|*.tdat")
			assert.Empty(t, path)
			assert.False(t, ok)
		})
	}
}

func TestDestroyPopup(t *testing.T) {
	host := NewMockHost()
	b := New(host)
	p := b.CreatePopup("A", 10, 10)

	b.DestroyPopup(nil)
	assert.Nil(t, b.Active())
	assert.True(t, p.Closed())

	b.DestroyPopup(p)
	assert.Len(t, host.Destroyed, 1, "destroying twice is a no-op")
}

func TestUserCloseRunsOnClose(t *testing.T) {
	host := NewMockHost()
	b := New(host)
	closed := 0
	p := b.CreatePopup("A", 10, 10, WithOnClose(func() { closed++ }))
	box := p.AddTextBox("abc", 0, 0, 10)

	host.Close(p.ID())

	assert.Equal(t, 1, closed)
	assert.Nil(t, b.Active())
	assert.Equal(t, "", b.GetText(box.ID))
}

func TestControls(t *testing.T) {
	host := NewMockHost()
	b := New(host)
	p := b.CreatePopup("Settings", 40, 10)

	pressed := false
	btn := p.AddButton("Apply", 1, 5, 8, func() { pressed = true })
	check := p.AddCheckbox("Auto detect", 1, 3, true)
	drop := p.AddDropdown([]string{"English", "Spanish"}, "English", 1, 1, 12)
	box := p.AddTextBox("seed", 1, 7, 12)

	for c, want := range map[Control]ControlType{
		btn:   ControlButton,
		check: ControlCheckbox,
		drop:  ControlDropdown,
		box:   ControlTextBox,
	} {
		got, ok := b.ControlType(c.ID)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, want, c.Type)
	}
	assert.Len(t, p.Controls(), 4)

	assert.True(t, b.IsChecked(check.ID))
	assert.False(t, b.IsChecked(box.ID), "only checkboxes are checked")
	host.Click(check.ID)
	assert.False(t, b.IsChecked(check.ID))

	b.SetText(box.ID, "hello")
	assert.Equal(t, "hello", b.GetText(box.ID))
	assert.Equal(t, "English", b.GetText(drop.ID))

	b.SetProperty(drop.ID, "SelectedIndex", "1")
	assert.Equal(t, "1", b.GetProperty(drop.ID, "SelectedIndex"))
	assert.Equal(t, "", b.GetProperty(drop.ID, ""))

	host.Click(btn.ID)
	assert.True(t, pressed)

	assert.Equal(t, "", b.GetText(0))
	assert.Equal(t, "", b.GetText(999))
}

func TestOpenFileDialog_RestoresInput(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantOK   bool
		wantPath string
	}{
		{"cancel", "", false, ""},
		{"chosen", "/saves/run.tdat", true, "/saves/run.tdat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pointer, audio := true, true
			var order []string
			suspend := func(flag *bool, name string) Suspender {
				return SuspendFunc(func() func() {
					*flag = false
					order = append(order, "off "+name)
					return func() {
						*flag = true
						order = append(order, "on "+name)
					}
				})
			}
			host := NewMockHost()
			host.DialogPath = tt.path
			host.OnOpenFile = func() {
				assert.False(t, pointer)
				assert.False(t, audio)
			}
			b := New(host, WithSuspenders(suspend(&pointer, "pointer"), suspend(&audio, "audio")))
			p := b.CreatePopup("Load", 10, 10)

			path, ok := b.OpenFileDialog("run.tdat", "/saves", "Tracked data (*.tdat)|*.tdat")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, path)
			assert.True(t, pointer)
			assert.True(t, audio)
			assert.Equal(t, []string{"off pointer", "off audio", "on audio", "on pointer"}, order)
			assert.Same(t, p, b.Active(), "the dialog leaves popups alone")
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		spec string
		want []FileFilter
	}{
		{"", nil},
		{
			"Tracked data (*.tdat)|*.tdat",
			[]FileFilter{{Description: "Tracked data (*.tdat)", Extensions: []string{"tdat"}}},
		},
		{
			"Logs (*.log;*.txt)|*.log;*.txt|All files (*.*)|*.*",
			[]FileFilter{
				{Description: "Logs (*.log;*.txt)", Extensions: []string{"log", "txt"}},
				{Description: "All files (*.*)", Extensions: []string{"*"}},
			},
		},
		{
			"Logs (*.log)",
			[]FileFilter{{Description: "Logs (*.log)", Extensions: []string{"log"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilter(tt.spec))
		})
	}
}
