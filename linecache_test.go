package plot

import (
	"math"
	"testing"
)

func TestLineCacheRebuildsOnlyWhenNeeded(t *testing.T) {
	v := NewViewport(DataRect{W: 10, H: 10}, Rect{W: 100, H: 100})
	l := NewPolyline(ColorRed, 2, Point{X: 1, Y: 1}, Point{X: 5, Y: 5}, Point{X: 9, Y: 1})
	c := NewLineCache(nil)

	e := c.Get(l, v)
	if c.Rebuilds() != 1 {
		t.Fatalf("rebuilds = %d, want 1", c.Rebuilds())
	}
	if e.Anchor != (Point{X: 5, Y: 5}) {
		t.Errorf("anchor = %v, want view center (5, 5)", e.Anchor)
	}

	v.Pan(30, -12)
	if c.Get(l, v) != e || c.Rebuilds() != 1 {
		t.Errorf("pan rebuilt the line (rebuilds = %d)", c.Rebuilds())
	}

	l.Append(Point{X: 12, Y: 3})
	c.Get(l, v)
	if c.Rebuilds() != 2 {
		t.Errorf("append did not rebuild (rebuilds = %d)", c.Rebuilds())
	}

	v.Zoom(1)
	c.Get(l, v)
	if c.Rebuilds() != 3 {
		t.Errorf("zoom did not rebuild (rebuilds = %d)", c.Rebuilds())
	}

	l.Color = ColorBlue
	c.Get(l, v)
	if c.Rebuilds() != 4 {
		t.Errorf("color change did not rebuild (rebuilds = %d)", c.Rebuilds())
	}
}

func TestLineCacheConstantScreenThickness(t *testing.T) {
	// 10 pixels per unit horizontally, 50 vertically.
	v := NewViewport(DataRect{W: 10, H: 2}, Rect{W: 100, H: 100})
	l := NewPolyline(ColorRed, 4, Point{X: 0, Y: 1}, Point{X: 10, Y: 1})
	c := NewLineCache(nil)

	e := c.Get(l, v)
	if len(e.List.VtxBuffer) != 4 {
		t.Fatalf("got %d vertices, want 4", len(e.List.VtxBuffer))
	}
	m := v.ProjectionAt(Vec2{X: 100, Y: 100}, e.Anchor)
	minY, maxY := float32(math.Inf(1)), float32(math.Inf(-1))
	for _, vtx := range e.List.VtxBuffer {
		_, y := m.ToPixels(vtx.Pos[0], vtx.Pos[1], 100, 100)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}
	if !nearly(float64(maxY-minY), 4, 1e-3) {
		t.Errorf("on-screen thickness = %v, want 4", maxY-minY)
	}
}

func TestLineCacheRelease(t *testing.T) {
	v := NewViewport(DataRect{W: 10, H: 10}, Rect{W: 100, H: 100})
	a := NewPolyline(ColorRed, 1, Point{}, Point{X: 1, Y: 1})
	b := NewPolyline(ColorRed, 1, Point{}, Point{X: 2, Y: 2})
	c := NewLineCache(nil)

	c.Get(a, v)
	c.Get(b, v)
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}
	if !c.Release(a.ID()) {
		t.Error("Release of cached line returned false")
	}
	if c.Release(a.ID()) {
		t.Error("second Release returned true")
	}
	if c.Len() != 1 {
		t.Errorf("len = %d after release, want 1", c.Len())
	}

	c.Reset()
	if c.Len() != 0 {
		t.Errorf("len = %d after reset, want 0", c.Len())
	}
}

func TestLineCacheSkipsNaNGaps(t *testing.T) {
	v := NewViewport(DataRect{W: 10, H: 10}, Rect{W: 100, H: 100})
	l := NewPolyline(ColorRed, 1,
		Point{X: 0, Y: 0}, Point{X: 1, Y: 1},
		Point{X: math.NaN(), Y: math.NaN()},
		Point{X: 2, Y: 2}, Point{X: 3, Y: 3},
	)
	e := NewLineCache(nil).Get(l, v)

	// Two segments, one quad each.
	if got := len(e.List.IdxBuffer); got != 12 {
		t.Errorf("got %d indices, want 12", got)
	}
}

func TestLineCacheDeepZoomPrecision(t *testing.T) {
	l := NewPolyline(ColorRed, 1,
		Point{X: 0, Y: 0},
		Point{X: 999999.55, Y: 999999.55},
		Point{X: 999999.65, Y: 999999.65},
		Point{X: 1e6 + 10, Y: 1e6 + 10},
	)
	v := NewViewport(DataRect{X: 999999.5, Y: 999999.5, W: 0.2, H: 0.2}, Rect{W: 600, H: 600})
	display := Vec2{X: 600, Y: 600}
	c := NewLineCache(nil)

	e := c.Get(l, v)
	m := v.ProjectionAt(display, e.Anchor)

	// The quad of the visible segment straddles the line by half its
	// thickness, so its vertex midpoints lie on the data points.
	want := v.ToScreen(Point{X: 999999.55, Y: 999999.55})
	found := false
	for _, vtx := range e.List.VtxBuffer {
		x, y := m.ToPixels(vtx.Pos[0], vtx.Pos[1], 600, 600)
		if math.Hypot(float64(x-want.X), float64(y-want.Y)) <= 1.5 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("no cached vertex within 1.5px of %v (anchor %v)", want, e.Anchor)
	}
}

func TestLineCacheRebuildsAfterFarPan(t *testing.T) {
	v := NewViewport(DataRect{W: 10, H: 10}, Rect{W: 100, H: 100})
	l := NewPolyline(ColorRed, 1, Point{}, Point{X: 1e6, Y: 1})
	c := NewLineCache(nil)

	c.Get(l, v)
	v.Pan(-2*maxAnchorPixels, 0)
	e := c.Get(l, v)
	if c.Rebuilds() != 2 {
		t.Fatalf("far pan did not rebuild (rebuilds = %d)", c.Rebuilds())
	}
	if e.Anchor != v.Region().Center() {
		t.Errorf("anchor = %v, want view center %v", e.Anchor, v.Region().Center())
	}
}

func TestLineCacheRebuildsAfterRemoveAt(t *testing.T) {
	v := NewViewport(DataRect{W: 10, H: 10}, Rect{W: 100, H: 100})
	l := NewPolyline(ColorRed, 1, Point{}, Point{X: 1, Y: 1}, Point{X: 2, Y: 0})
	c := NewLineCache(nil)

	c.Get(l, v)
	l.RemoveAt(2)
	e := c.Get(l, v)
	if c.Rebuilds() != 2 {
		t.Errorf("RemoveAt did not rebuild (rebuilds = %d)", c.Rebuilds())
	}
	if got := len(e.List.IdxBuffer); got != 6 {
		t.Errorf("got %d indices after RemoveAt, want 6", got)
	}
}
