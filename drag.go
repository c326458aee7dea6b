package plot

import "math"

// dragMode is what an active drag manipulates.
type dragMode int

const (
	dragNone dragMode = iota
	dragPan
	dragMarker
)

// DragState tracks the state of a drag operation.
type DragState struct {
	Active bool
	StartX float32 // Mouse X when drag started
	StartY float32 // Mouse Y when drag started
	LastX  float32 // Mouse X at the previous step
	LastY  float32 // Mouse Y at the previous step

	mode        dragMode
	button      MouseButton
	marker      *Marker
	markerStart DataRect // Marker rectangle when the drag started, for cancel
}

// Reset clears the drag state.
func (d *DragState) Reset() {
	*d = DragState{}
}

// begin starts a drag at pos.
func (d *DragState) begin(mode dragMode, button MouseButton, pos Vec2) {
	d.Active = true
	d.mode = mode
	d.button = button
	d.StartX, d.StartY = pos.X, pos.Y
	d.LastX, d.LastY = pos.X, pos.Y
}

// beginMarker starts dragging m.
func (d *DragState) beginMarker(m *Marker, pos Vec2) {
	d.begin(dragMarker, MouseButtonLeft, pos)
	d.marker = m
	d.markerStart = m.Rect
}

// step returns the previous position and records pos as the new one.
func (d *DragState) step(pos Vec2) (prev Vec2) {
	prev = Vec2{X: d.LastX, Y: d.LastY}
	d.LastX, d.LastY = pos.X, pos.Y
	return prev
}

// Moved reports whether the mouse moved since the drag started.
func (d *DragState) Moved() bool {
	return d.LastX != d.StartX || d.LastY != d.StartY
}

// IsPanning returns true while the view is being dragged.
func (d *DragState) IsPanning() bool {
	return d.Active && d.mode == dragPan
}

// DraggedMarker returns the marker being dragged, or nil.
func (d *DragState) DraggedMarker() *Marker {
	if !d.Active || d.mode != dragMarker {
		return nil
	}
	return d.marker
}

// SnapConfig snaps dragged markers to a logical grid when the drag ends.
type SnapConfig struct {
	Enabled bool
	GridX   float64 // Horizontal grid spacing (0 = no snapping on X)
	GridY   float64 // Vertical grid spacing (0 = no snapping on Y)
}

// snap snaps the marker's bottom-left corner to the grid.
func (s SnapConfig) snap(m *Marker) {
	if !s.Enabled {
		return
	}
	if s.GridX > 0 && m.Constraint != DragYOnly {
		m.Rect.X = math.Round(m.Rect.X/s.GridX) * s.GridX
	}
	if s.GridY > 0 && m.Constraint != DragXOnly {
		m.Rect.Y = math.Round(m.Rect.Y/s.GridY) * s.GridY
	}
}
