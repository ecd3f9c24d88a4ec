// internal/formbridge/mock.go
package formbridge

import "strings"

// MockHost is an in-memory Host for tests.
type MockHost struct {
	Unavailable bool
	// DialogPath is returned by OpenFile.
	DialogPath string
	// OnOpenFile runs inside OpenFile, while input is suspended.
	OnOpenFile func()

	Windows   map[WindowID]Window
	Destroyed []WindowID
	Controls  map[ControlID]*MockControl
	Calls     []string

	nextWindow  WindowID
	nextControl ControlID
}

// MockControl is a control held by MockHost.
type MockControl struct {
	Window     WindowID
	Spec       ControlSpec
	Checked    bool
	Properties map[string]string
}

var _ Host = (*MockHost)(nil)

// NewMockHost creates an available mock host.
func NewMockHost() *MockHost {
	return &MockHost{
		Windows:  make(map[WindowID]Window),
		Controls: make(map[ControlID]*MockControl),
	}
}

func (m *MockHost) call(name string, args ...string) {
	m.Calls = append(m.Calls, strings.Join(append([]string{name}, args...), " "))
}

func (m *MockHost) Available() bool { return !m.Unavailable }

func (m *MockHost) CreateWindow(w Window) WindowID {
	m.nextWindow++
	m.Windows[m.nextWindow] = w
	m.call("create", w.Title)
	return m.nextWindow
}

func (m *MockHost) DestroyWindow(id WindowID) {
	w, ok := m.Windows[id]
	if !ok {
		return
	}
	delete(m.Windows, id)
	m.Destroyed = append(m.Destroyed, id)
	for cid, c := range m.Controls {
		if c.Window == id {
			delete(m.Controls, cid)
		}
	}
	m.call("destroy", w.Title)
}

// Close simulates the user closing a window.
func (m *MockHost) Close(id WindowID) {
	w, ok := m.Windows[id]
	if !ok {
		return
	}
	m.DestroyWindow(id)
	if w.OnClose != nil {
		w.OnClose()
	}
}

func (m *MockHost) AddControl(window WindowID, spec ControlSpec) ControlID {
	if _, ok := m.Windows[window]; !ok {
		return 0
	}
	m.nextControl++
	m.Controls[m.nextControl] = &MockControl{
		Window:     window,
		Spec:       spec,
		Checked:    spec.Checked,
		Properties: make(map[string]string),
	}
	m.call("add", spec.Type.String(), spec.Text)
	return m.nextControl
}

// Click presses a button control.
func (m *MockHost) Click(id ControlID) {
	if c, ok := m.Controls[id]; ok {
		switch c.Spec.Type {
		case ControlButton:
			if c.Spec.OnClick != nil {
				c.Spec.OnClick()
			}
		case ControlCheckbox:
			c.Checked = !c.Checked
		}
	}
}

func (m *MockHost) Text(id ControlID) string {
	if c, ok := m.Controls[id]; ok {
		return c.Spec.Text
	}
	return ""
}

func (m *MockHost) SetText(id ControlID, text string) {
	if c, ok := m.Controls[id]; ok {
		c.Spec.Text = text
	}
}

func (m *MockHost) Property(id ControlID, name string) string {
	if c, ok := m.Controls[id]; ok {
		return c.Properties[name]
	}
	return ""
}

func (m *MockHost) SetProperty(id ControlID, name, value string) {
	if c, ok := m.Controls[id]; ok {
		c.Properties[name] = value
	}
}

func (m *MockHost) Checked(id ControlID) bool {
	if c, ok := m.Controls[id]; ok {
		return c.Checked
	}
	return false
}

func (m *MockHost) OpenFile(suggestedName, dir string, _ []FileFilter) string {
	m.call("openfile", suggestedName, dir)
	if m.OnOpenFile != nil {
		m.OnOpenFile()
	}
	return m.DialogPath
}
