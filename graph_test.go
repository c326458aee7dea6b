package plot_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-theft-auto/plot"
)

// mockRenderer records what it was asked to draw.
type mockRenderer struct {
	renderCalls int
	layers      []plot.Space
	width       int
	height      int
}

func (m *mockRenderer) Render(f *plot.Frame) error {
	m.renderCalls++
	m.layers = m.layers[:0]
	for _, l := range f.Layers {
		m.layers = append(m.layers, l.Space)
	}
	return nil
}

func (m *mockRenderer) Resize(width, height int) {
	m.width, m.height = width, height
}

// newTestGraph returns a graph whose plot area is 400x300 pixels at
// (64, 8) showing (0, 0)-(40, 30): 10 pixels per unit.
func newTestGraph(t *testing.T, opts ...plot.GraphOption) *plot.Graph {
	t.Helper()
	g := plot.NewGraph(opts...)
	g.Resize(476, 332)
	if got := g.PlotRect(); got != (plot.Rect{X: 64, Y: 8, W: 400, H: 300}) {
		t.Fatalf("plot rect = %v", got)
	}
	if err := g.Display(plot.DataRect{W: 40, H: 30}); err != nil {
		t.Fatalf("Display: %v", err)
	}
	return g
}

// frame runs one input frame: the callback sets this frame's input.
func frame(g *plot.Graph, in *plot.InputState, set func(in *plot.InputState)) bool {
	in.Reset()
	set(in)
	return g.HandleInput(in)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestDisplayBeforeSizedFails(t *testing.T) {
	g := plot.NewGraph()
	err := g.Display(plot.DataRect{W: 1, H: 1})
	if !errors.Is(err, plot.ErrZeroDimension) {
		t.Errorf("Display on unsized graph = %v, want ErrZeroDimension", err)
	}

	for _, size := range [][2]int{{0, 300}, {300, 0}, {40, 20}} {
		g.Resize(size[0], size[1])
		if err := g.Display(plot.DataRect{W: 1, H: 1}); !errors.Is(err, plot.ErrZeroDimension) {
			t.Errorf("Display at %dx%d = %v, want ErrZeroDimension", size[0], size[1], err)
		}
		if _, err := g.Redraw(); !errors.Is(err, plot.ErrZeroDimension) {
			t.Errorf("Redraw at %dx%d = %v, want ErrZeroDimension", size[0], size[1], err)
		}
	}
}

func TestDisplayEmptyRegion(t *testing.T) {
	g := newTestGraph(t)
	if err := g.Display(plot.DataRect{W: 0, H: 1}); !errors.Is(err, plot.ErrEmptyRegion) {
		t.Errorf("Display of empty region = %v, want ErrEmptyRegion", err)
	}
	if err := g.Display(plot.DataRect{W: math.Inf(1), H: 1}); !errors.Is(err, plot.ErrEmptyRegion) {
		t.Errorf("Display of infinite region = %v, want ErrEmptyRegion", err)
	}
	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("failed Display changed region to %v", g.Region())
	}
}

func TestAddRemoveLineLeavesCacheEmpty(t *testing.T) {
	g := newTestGraph(t)
	l := plot.NewPolyline(0, 2, plot.Point{X: 1, Y: 1}, plot.Point{X: 10, Y: 20})

	g.AddLine(l)
	g.AddLine(l)
	if len(g.Lines()) != 1 {
		t.Fatalf("lines = %d after adding twice, want 1", len(g.Lines()))
	}
	if l.Color == 0 {
		t.Error("line without color got no palette color")
	}
	if _, err := g.Redraw(); err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	if g.Cache().Len() != 1 {
		t.Fatalf("cache len = %d after redraw, want 1", g.Cache().Len())
	}

	if err := g.RemoveLine(l); err != nil {
		t.Fatalf("RemoveLine: %v", err)
	}
	if g.Cache().Len() != 0 {
		t.Errorf("cache len = %d after removal, want 0", g.Cache().Len())
	}
	if err := g.RemoveLine(l); !errors.Is(err, plot.ErrNotFound) {
		t.Errorf("second RemoveLine = %v, want ErrNotFound", err)
	}
}

func TestClearLinesResetsCache(t *testing.T) {
	g := newTestGraph(t)
	for i := 0; i < 3; i++ {
		g.AddLine(plot.NewPolyline(plot.ColorRed, 1, plot.Point{}, plot.Point{X: float64(i + 1), Y: 1}))
	}
	if _, err := g.Redraw(); err != nil {
		t.Fatal(err)
	}
	g.ClearLines()
	if len(g.Lines()) != 0 || g.Cache().Len() != 0 {
		t.Errorf("after ClearLines: %d lines, %d cached", len(g.Lines()), g.Cache().Len())
	}
}

func TestHostFrameLayers(t *testing.T) {
	g := plot.NewGraph()
	r := &mockRenderer{}
	h := plot.NewHost(g, r)
	h.Resize(476, 332)
	if r.width != 476 || r.height != 332 {
		t.Errorf("renderer resized to %dx%d", r.width, r.height)
	}
	if err := g.Display(plot.DataRect{W: 40, H: 30}); err != nil {
		t.Fatal(err)
	}

	g.AddLine(plot.NewPolyline(plot.ColorRed, 1, plot.Point{}, plot.Point{X: 10, Y: 10}))
	hidden := plot.NewPolyline(plot.ColorRed, 1, plot.Point{}, plot.Point{X: 5, Y: 5})
	hidden.Hidden = true
	g.AddLine(hidden)

	changed, err := h.Frame(plot.NewInputState(), 0.016)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if !changed {
		t.Error("first frame reported no change")
	}
	if r.renderCalls != 1 {
		t.Errorf("render calls = %d, want 1", r.renderCalls)
	}
	want := []plot.Space{plot.SpaceScreen, plot.SpaceLogical, plot.SpaceScreen, plot.SpaceScreen}
	if len(r.layers) != len(want) {
		t.Fatalf("layers = %v, want %v", r.layers, want)
	}
	for i := range want {
		if r.layers[i] != want[i] {
			t.Errorf("layer %d space = %v, want %v", i, r.layers[i], want[i])
		}
	}

	changed, err = h.Frame(plot.NewInputState(), 0.016)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("idle frame reported a change")
	}
	if g.Cache().Rebuilds() != 1 {
		t.Errorf("idle frame rebuilt lines (rebuilds = %d)", g.Cache().Rebuilds())
	}
}

func TestMousePan(t *testing.T) {
	g := newTestGraph(t)
	in := plot.NewInputState()

	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(300, 100)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	if !g.Dragging().IsPanning() {
		t.Fatal("left press on empty plot area did not start a pan")
	}
	if g.Cursor() != plot.CursorMove {
		t.Errorf("cursor = %v while panning, want CursorMove", g.Cursor())
	}

	if !frame(g, in, func(in *plot.InputState) { in.SetMousePos(320, 90) }) {
		t.Error("pan step reported no change")
	}
	r := g.Region()
	if !near(r.X, -2) || !near(r.Y, -1) {
		t.Errorf("region after pan = %v, want origin (-2, -1)", r)
	}

	frame(g, in, func(in *plot.InputState) { in.SetMouseButton(plot.MouseButtonLeft, false) })
	if g.Dragging().Active {
		t.Error("drag still active after release")
	}
}

func TestPanDisabled(t *testing.T) {
	g := newTestGraph(t, plot.WithPanEnabled(false))
	in := plot.NewInputState()

	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(300, 100)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	frame(g, in, func(in *plot.InputState) { in.SetMousePos(350, 150) })
	frame(g, in, func(in *plot.InputState) { in.PressKey(plot.KeyLeft) })

	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("region moved to %v with panning disabled", g.Region())
	}
}

func TestMarkerDragWinsOverPan(t *testing.T) {
	g := newTestGraph(t)
	m := plot.NewMarker(plot.DataRect{X: 10, Y: 5, W: 4, H: 2}, plot.ColorRed)
	g.AddMarker(m)

	var moved *plot.Marker
	g.OnMarkerMoved(func(m *plot.Marker) { moved = m })

	in := plot.NewInputState()
	// The marker spans x 164..204, y 238..258 on screen.
	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(180, 248)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	if g.Dragging().DraggedMarker() != m {
		t.Fatal("press on marker did not start a marker drag")
	}
	if id, ok := g.Hovered(); !ok || id != m.ID() {
		t.Errorf("Hovered() = %v, %v during drag", id, ok)
	}

	frame(g, in, func(in *plot.InputState) { in.SetMousePos(210, 248) })
	if !near(m.Rect.X, 13) || !near(m.Rect.Y, 5) {
		t.Errorf("marker at (%v, %v), want (13, 5)", m.Rect.X, m.Rect.Y)
	}
	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("marker drag panned the view to %v", g.Region())
	}

	frame(g, in, func(in *plot.InputState) { in.SetMouseButton(plot.MouseButtonLeft, false) })
	if moved != m {
		t.Error("OnMarkerMoved not called")
	}
}

func TestMarkerDragEscapeCancels(t *testing.T) {
	g := newTestGraph(t)
	m := plot.NewMarker(plot.DataRect{X: 10, Y: 5, W: 4, H: 2}, plot.ColorRed)
	g.AddMarker(m)
	called := false
	g.OnMarkerMoved(func(*plot.Marker) { called = true })

	in := plot.NewInputState()
	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(180, 248)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	frame(g, in, func(in *plot.InputState) { in.SetMousePos(250, 200) })
	frame(g, in, func(in *plot.InputState) { in.PressKey(plot.KeyEscape) })

	if m.Rect != (plot.DataRect{X: 10, Y: 5, W: 4, H: 2}) {
		t.Errorf("cancelled drag left marker at %v", m.Rect)
	}
	if g.Dragging().Active {
		t.Error("drag still active after Escape")
	}
	frame(g, in, func(in *plot.InputState) { in.SetMouseButton(plot.MouseButtonLeft, false) })
	if called {
		t.Error("OnMarkerMoved called for a cancelled drag")
	}
}

func TestLockedMarkerIsNotDragged(t *testing.T) {
	g := newTestGraph(t)
	m := plot.NewMarker(plot.DataRect{X: 10, Y: 5, W: 4, H: 2}, plot.ColorRed)
	m.Draggable = false
	g.AddMarker(m)

	in := plot.NewInputState()
	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(180, 248)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	if !g.Dragging().IsPanning() {
		t.Error("press on a non-draggable marker should pan")
	}
}

func TestWheelZoomAtCursor(t *testing.T) {
	g := newTestGraph(t)
	in := plot.NewInputState()
	pos := plot.Vec2{X: 164, Y: 258}
	before := g.LogicalAt(pos)

	changed := frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(pos.X, pos.Y)
		in.SetMouseWheel(0, 1)
	})
	if !changed {
		t.Error("wheel reported no change")
	}
	if r := g.Region(); !near(r.W, 36) || !near(r.H, 27) {
		t.Errorf("region after zoom = %v, want 36x27", r)
	}
	after := g.LogicalAt(pos)
	if !near(after.X, before.X) || !near(after.Y, before.Y) {
		t.Errorf("point under cursor moved from %v to %v", before, after)
	}
}

func TestZoomDisabled(t *testing.T) {
	g := newTestGraph(t, plot.WithZoomEnabled(false))
	in := plot.NewInputState()
	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(200, 100)
		in.SetMouseWheel(0, 3)
		in.PressKey(plot.KeyPlus)
	})
	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("region changed to %v with zoom disabled", g.Region())
	}
}

func TestKeyboardPanAndHome(t *testing.T) {
	g := newTestGraph(t)
	in := plot.NewInputState()

	frame(g, in, func(in *plot.InputState) { in.PressKey(plot.KeyLeft) })
	if r := g.Region(); !near(r.X, -4) {
		t.Errorf("left arrow moved origin to %v, want -4", r.X)
	}
	frame(g, in, func(in *plot.InputState) { in.PressKey(plot.KeyMinus) })
	if r := g.Region(); r.W <= 40 {
		t.Errorf("minus key did not zoom out: %v", r)
	}

	frame(g, in, func(in *plot.InputState) { in.PressKey(plot.KeyHome) })
	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("Home restored %v", g.Region())
	}
}

func TestCursorShapes(t *testing.T) {
	g := newTestGraph(t)
	g.AddMarker(plot.NewMarker(plot.DataRect{X: 10, Y: 5, W: 4, H: 2}, plot.ColorRed))
	in := plot.NewInputState()

	tests := []struct {
		pos  plot.Vec2
		want plot.Cursor
	}{
		{plot.Vec2{X: 10, Y: 10}, plot.CursorArrow},
		{plot.Vec2{X: 300, Y: 100}, plot.CursorCrosshair},
		{plot.Vec2{X: 180, Y: 248}, plot.CursorHand},
	}
	for _, tt := range tests {
		frame(g, in, func(in *plot.InputState) { in.SetMousePos(tt.pos.X, tt.pos.Y) })
		if g.Cursor() != tt.want {
			t.Errorf("cursor at %v = %v, want %v", tt.pos, g.Cursor(), tt.want)
		}
	}
}

func TestFitToData(t *testing.T) {
	g := newTestGraph(t)
	if err := g.FitToData(0.1); err != nil {
		t.Fatalf("FitToData with no lines: %v", err)
	}
	if g.Region() != (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("FitToData with no lines changed region to %v", g.Region())
	}

	g.AddLine(plot.NewPolyline(plot.ColorRed, 1, plot.Point{X: 0, Y: 0}, plot.Point{X: 10, Y: 5}))
	g.AddLine(plot.NewPolyline(plot.ColorBlue, 1, plot.Point{X: 2, Y: -5}, plot.Point{X: 4, Y: 20}))
	if err := g.FitToData(0.1); err != nil {
		t.Fatal(err)
	}
	r := g.Region()
	if !near(r.X, -1) || !near(r.W, 12) || !near(r.Y, -7.5) || !near(r.H, 30) {
		t.Errorf("fitted region = %v, want {-1 -7.5 12 30}", r)
	}
}

func TestFitToDataSinglePoint(t *testing.T) {
	g := newTestGraph(t)
	g.AddLine(plot.NewPolyline(plot.ColorRed, 1, plot.Point{X: 5, Y: 5}))
	if err := g.FitToData(0); err != nil {
		t.Fatalf("FitToData on a single point: %v", err)
	}
	if r := g.Region(); !(r.W > 0 && r.H > 0) || !r.Contains(plot.Point{X: 5, Y: 5}) {
		t.Errorf("region %v does not show the point", r)
	}
}

func TestDisplayAnimated(t *testing.T) {
	g := newTestGraph(t)
	target := plot.DataRect{X: 100, Y: 50, W: 10, H: 10}
	if err := g.DisplayAnimated(target, 1, nil); err != nil {
		t.Fatal(err)
	}
	if !g.Update(0.5) {
		t.Error("Update during animation reported no change")
	}
	mid := g.Region()
	if mid == target || mid == (plot.DataRect{W: 40, H: 30}) {
		t.Errorf("mid-animation region = %v", mid)
	}
	g.Update(0.6)
	if g.Region() != target {
		t.Errorf("final region = %v, want %v", g.Region(), target)
	}
	if g.Animating() || g.Update(0.1) {
		t.Error("animation still running after its duration")
	}
}

func TestRemoveUnknownMarker(t *testing.T) {
	g := newTestGraph(t)
	err := g.RemoveMarker(plot.NewMarker(plot.DataRect{}, plot.ColorRed))
	if !errors.Is(err, plot.ErrNotFound) {
		t.Errorf("RemoveMarker = %v, want ErrNotFound", err)
	}
}

func TestRemoveDraggedMarkerEndsDrag(t *testing.T) {
	g := newTestGraph(t)
	m := plot.NewMarker(plot.DataRect{X: 10, Y: 5, W: 4, H: 2}, plot.ColorRed)
	g.AddMarker(m)

	in := plot.NewInputState()
	frame(g, in, func(in *plot.InputState) {
		in.SetMousePos(180, 248)
		in.SetMouseButton(plot.MouseButtonLeft, true)
	})
	if err := g.RemoveMarker(m); err != nil {
		t.Fatal(err)
	}
	if g.Dragging().Active {
		t.Error("removing the dragged marker left the drag active")
	}
	if _, ok := g.Hovered(); ok {
		t.Error("removed marker still hovered")
	}
}
