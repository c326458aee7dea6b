package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/plot"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	g := plot.NewGraph(plot.WithStyle(plot.TerminalStyle()))
	addSamples(g)
	m := newModel(g)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func TestResizeFitsData(t *testing.T) {
	m := newTestModel(t)
	if !m.graph.Viewport().Sized() {
		t.Fatal("graph not sized after WindowSizeMsg")
	}
	r := m.graph.Region()
	if r.X > 0 || r.X+r.W < 10 || r.Y > -1 || r.Y+r.H < 1 {
		t.Errorf("region %+v does not cover the samples", r)
	}
}

func TestKeyZoom(t *testing.T) {
	m := newTestModel(t)
	before := m.graph.Region()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	after := m.graph.Region()
	if !(after.W < before.W) {
		t.Errorf("zoom in: width %v -> %v", before.W, after.W)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	if got := m.graph.Region(); got != before {
		t.Errorf("home: region %+v, want %+v", got, before)
	}
}

func TestMouseDragPans(t *testing.T) {
	m := newTestModel(t)
	before := m.graph.Region()
	press := tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonMiddle, Action: tea.MouseActionPress}
	move := tea.MouseMsg{X: 30, Y: 10, Button: tea.MouseButtonMiddle, Action: tea.MouseActionMotion}
	release := tea.MouseMsg{X: 30, Y: 10, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
	for _, msg := range []tea.Msg{press, move, release} {
		m.Update(msg)
	}
	after := m.graph.Region()
	if !(after.X > before.X) || after.W != before.W {
		t.Errorf("dragging left should move the view right: %+v -> %+v", before, after)
	}
	if m.graph.Dragging().Active {
		t.Error("drag still active after release")
	}
}

func TestViewRendersBraille(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	if !strings.ContainsFunc(view, func(r rune) bool { return r > 0x2800 && r <= 0x28FF }) {
		t.Error("view contains no braille dots")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view is missing the help line")
	}
}
