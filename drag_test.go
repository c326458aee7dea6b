package plot

import "testing"

func TestDragState_BeginStep(t *testing.T) {
	var d DragState
	d.begin(dragPan, MouseButtonMiddle, Vec2{X: 10, Y: 20})

	if !d.IsPanning() {
		t.Error("Expected pan drag after begin")
	}
	if d.Moved() {
		t.Error("Expected no movement right after begin")
	}

	prev := d.step(Vec2{X: 15, Y: 18})
	if prev != (Vec2{X: 10, Y: 20}) {
		t.Errorf("Expected previous position (10, 20), got %v", prev)
	}
	prev = d.step(Vec2{X: 30, Y: 40})
	if prev != (Vec2{X: 15, Y: 18}) {
		t.Errorf("Expected previous position (15, 18), got %v", prev)
	}
	if !d.Moved() {
		t.Error("Expected Moved after stepping away from the start")
	}
	if d.DraggedMarker() != nil {
		t.Error("Expected no marker during a pan drag")
	}
}

func TestDragState_Marker(t *testing.T) {
	m := NewMarker(DataRect{X: 1, Y: 2, W: 3, H: 4}, 0)

	var d DragState
	d.beginMarker(m, Vec2{X: 5, Y: 5})

	if d.DraggedMarker() != m {
		t.Fatal("Expected dragged marker to be m")
	}
	if d.IsPanning() {
		t.Error("Expected marker drag not to report panning")
	}
	m.Rect.X = 9
	if d.markerStart.X != 1 {
		t.Errorf("Expected start rect to be kept for cancel, got X=%v", d.markerStart.X)
	}

	d.Reset()
	if d.Active || d.DraggedMarker() != nil {
		t.Error("Expected Reset to clear the drag")
	}
}
