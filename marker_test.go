package plot

import "testing"

func markerViewport() Viewport {
	// 10 pixels per unit on both axes.
	return NewViewport(DataRect{W: 40, H: 30}, Rect{X: 0, Y: 0, W: 400, H: 300})
}

func TestMarkerScreenRect(t *testing.T) {
	v := markerViewport()
	m := NewMarker(DataRect{X: 10, Y: 5, W: 4, H: 2}, ColorRed)

	got := m.ScreenRect(v)
	want := Rect{X: 100, Y: 230, W: 40, H: 20}
	if got != want {
		t.Errorf("ScreenRect = %v, want %v", got, want)
	}
}

func TestMarkerHitTest(t *testing.T) {
	v := markerViewport()
	m := NewMarker(DataRect{X: 10, Y: 5, W: 4, H: 2}, ColorRed)

	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{X: 120, Y: 240}, true},
		{Vec2{X: 100, Y: 230}, true},
		{Vec2{X: 99, Y: 240}, false},
		{Vec2{X: 120, Y: 251}, false},
	}
	for _, tt := range tests {
		if got := m.HitTest(v, tt.p); got != tt.want {
			t.Errorf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMarkerHitTestZeroWidth(t *testing.T) {
	v := markerViewport()
	line := NewMarker(DataRect{X: 20, Y: 0, W: 0, H: 30}, ColorRed)

	if !line.HitTest(v, Vec2{X: 202, Y: 150}) {
		t.Error("zero-width marker not hit within MinMarkerPixels")
	}
	if line.HitTest(v, Vec2{X: 205, Y: 150}) {
		t.Error("zero-width marker hit outside MinMarkerPixels")
	}
}

func TestMarkerDrag(t *testing.T) {
	tests := []struct {
		constraint DragConstraint
		want       Point
	}{
		{DragFree, Point{X: 13, Y: 3}},
		{DragXOnly, Point{X: 13, Y: 5}},
		{DragYOnly, Point{X: 10, Y: 3}},
	}
	for _, tt := range tests {
		v := markerViewport()
		m := NewMarker(DataRect{X: 10, Y: 5, W: 4, H: 2}, ColorRed)
		m.Constraint = tt.constraint

		// 30 pixels right, 20 pixels down.
		m.Drag(v, Vec2{X: 110, Y: 240}, Vec2{X: 140, Y: 260})

		if !nearly(m.Rect.X, tt.want.X, 1e-9) || !nearly(m.Rect.Y, tt.want.Y, 1e-9) {
			t.Errorf("constraint %d: marker at (%v, %v), want %v", tt.constraint, m.Rect.X, m.Rect.Y, tt.want)
		}
		if m.Rect.W != 4 || m.Rect.H != 2 {
			t.Errorf("drag changed marker size to %vx%v", m.Rect.W, m.Rect.H)
		}
	}
}

func TestMarkerIDsAreUnique(t *testing.T) {
	a := NewMarker(DataRect{}, ColorRed)
	b := NewMarker(DataRect{}, ColorRed)
	if a.ID() == b.ID() {
		t.Errorf("markers share ID %d", a.ID())
	}
}

func TestSnapConfig(t *testing.T) {
	m := NewMarker(DataRect{X: 3.7, Y: 8.2, W: 1, H: 1}, ColorRed)
	SnapConfig{Enabled: true, GridX: 0.5, GridY: 5}.snap(m)
	if m.Rect.X != 3.5 || m.Rect.Y != 10 {
		t.Errorf("snapped to (%v, %v), want (3.5, 10)", m.Rect.X, m.Rect.Y)
	}

	m = NewMarker(DataRect{X: 3.7, Y: 8.2}, ColorRed)
	SnapConfig{GridX: 1, GridY: 1}.snap(m)
	if m.Rect.X != 3.7 {
		t.Error("disabled snap moved the marker")
	}
}
