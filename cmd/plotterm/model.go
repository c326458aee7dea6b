package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tanema/gween/ease"

	"github.com/go-theft-auto/plot"
	"github.com/go-theft-auto/plot/backend/braille"
)

const frameInterval = time.Second / 30

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF5350")).Bold(true)
)

type tickMsg time.Time

type model struct {
	graph  *plot.Graph
	canvas *braille.Renderer
	in     *plot.InputState
	keys   keyMap
	help   help.Model

	width, height int
	fitted        bool
	ticking       bool
	status        string
	err           error
}

func newModel(g *plot.Graph) *model {
	m := &model{
		graph:  g,
		canvas: braille.NewRenderer(0, 0),
		in:     plot.NewInputState(),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	g.OnMarkerMoved(func(mk *plot.Marker) {
		m.status = fmt.Sprintf("%s moved to x=%.4g y=%.4g", mk.Label, mk.Rect.X, mk.Rect.Y)
	})
	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tickMsg:
		m.ticking = false
		m.graph.Update(float32(frameInterval.Seconds()))
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		case key.Matches(msg, m.keys.Fit):
			m.fit(0.4)
			return m, m.tick()
		}
		if k := m.graphKey(msg); k != plot.KeyNone {
			m.in.PressKey(k)
		}

	case tea.MouseMsg:
		m.mouse(tea.MouseEvent(msg))
	}

	m.graph.HandleInput(m.in)
	m.in.Reset()
	return m, m.tick()
}

// tick schedules animation frames while a transition runs.
func (m *model) tick() tea.Cmd {
	if !m.graph.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) graphKey(msg tea.KeyMsg) plot.Key {
	switch {
	case key.Matches(msg, m.keys.Left):
		return plot.KeyLeft
	case key.Matches(msg, m.keys.Right):
		return plot.KeyRight
	case key.Matches(msg, m.keys.Up):
		return plot.KeyUp
	case key.Matches(msg, m.keys.Down):
		return plot.KeyDown
	case key.Matches(msg, m.keys.ZoomIn):
		return plot.KeyPlus
	case key.Matches(msg, m.keys.ZoomOut):
		return plot.KeyMinus
	case key.Matches(msg, m.keys.Home):
		return plot.KeyHome
	case key.Matches(msg, m.keys.Cancel):
		return plot.KeyEscape
	}
	return plot.KeyNone
}

// mouse feeds a terminal mouse event to the graph, at the center of the
// cell under the pointer.
func (m *model) mouse(ev tea.MouseEvent) {
	p := braille.CellCenter(ev.X, ev.Y)
	m.in.SetMousePos(p.X, p.Y)
	m.in.ModCtrl, m.in.ModShift, m.in.ModAlt = ev.Ctrl, ev.Shift, ev.Alt

	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.in.AddMouseWheel(0, 1)
		return
	case tea.MouseButtonWheelDown:
		m.in.AddMouseWheel(0, -1)
		return
	}

	button, ok := mouseButton(ev.Button)
	switch ev.Action {
	case tea.MouseActionPress:
		if ok {
			m.in.SetMouseButton(button, true)
		}
	case tea.MouseActionRelease:
		if ok {
			m.in.SetMouseButton(button, false)
			return
		}
		// Some terminals do not report which button was released.
		for b := plot.MouseButton(0); b < plot.MouseButtonCount; b++ {
			m.in.SetMouseButton(b, false)
		}
	}
}

func mouseButton(b tea.MouseButton) (plot.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return plot.MouseButtonLeft, true
	case tea.MouseButtonRight:
		return plot.MouseButtonRight, true
	case tea.MouseButtonMiddle:
		return plot.MouseButtonMiddle, true
	}
	return 0, false
}

func (m *model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

func (m *model) resize() {
	rows := max(m.height-m.footerHeight(), 0)
	w, h := braille.PixelSize(m.width, rows)
	m.graph.Resize(w, h)
	m.canvas.Resize(w, h)
	if !m.fitted && m.graph.Viewport().Sized() {
		m.fitted = true
		m.fit(0)
		m.graph.SetHome(m.graph.Region())
	}
}

// fit shows all data, animated over seconds.
func (m *model) fit(seconds float32) {
	saved := m.graph.Region()
	if err := m.graph.FitToData(0.05); err != nil {
		m.err = err
		return
	}
	if seconds <= 0 {
		return
	}
	target := m.graph.Region()
	if err := m.graph.Display(saved); err != nil {
		return
	}
	if err := m.graph.DisplayAnimated(target, seconds, ease.InOutQuad); err != nil {
		m.err = err
	}
}

func (m *model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	f, err := m.graph.Redraw()
	if err != nil {
		return errStyle.Render("terminal too small: " + err.Error())
	}
	if err := m.canvas.Render(f); err != nil {
		return errStyle.Render(err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.canvas.View(), m.statusLine(), m.help.View(m.keys))
}

func (m *model) statusLine() string {
	if m.err != nil {
		return errStyle.Render(m.err.Error())
	}
	r := m.graph.Region()
	text := fmt.Sprintf(" x %.4g..%.4g  y %.4g..%.4g", r.X, r.X+r.W, r.Y, r.Y+r.H)
	if p := m.in.MousePos(); m.graph.PlotRect().Contains(p) {
		at := m.graph.LogicalAt(p)
		text += fmt.Sprintf("  cursor %.4g, %.4g", at.X, at.Y)
	}
	if m.status != "" {
		text += "  " + m.status
	}
	return statusStyle.Render(text)
}
