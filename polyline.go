package plot

import (
	"math"
	"sync/atomic"
)

// LineID identifies a polyline for the lifetime of the process.
type LineID uint64

var lineIDCounter atomic.Uint64

// Polyline is an ordered sequence of logical points drawn as connected
// segments. Every mutation bumps Revision so cached geometry is rebuilt.
type Polyline struct {
	Label     string
	Color     uint32
	Thickness float32 // Stroke width in pixels
	Hidden    bool

	id       LineID
	points   []Point
	revision uint64
}

// NewPolyline creates a polyline with the given color and thickness.
func NewPolyline(color uint32, thickness float32, points ...Point) *Polyline {
	if thickness <= 0 {
		thickness = 1
	}
	l := &Polyline{
		Color:     color,
		Thickness: thickness,
		id:        LineID(lineIDCounter.Add(1)),
		points:    make([]Point, 0, len(points)),
	}
	l.points = append(l.points, points...)
	return l
}

// ID returns the line's identity.
func (l *Polyline) ID() LineID { return l.id }

// Revision returns a counter that changes on every point mutation.
func (l *Polyline) Revision() uint64 { return l.revision }

// Len returns the number of points.
func (l *Polyline) Len() int { return len(l.points) }

// Points returns a copy of the points.
func (l *Polyline) Points() []Point {
	out := make([]Point, len(l.points))
	copy(out, l.points)
	return out
}

// At returns the i-th point.
func (l *Polyline) At(i int) Point { return l.points[i] }

// Append adds points to the end of the line.
func (l *Polyline) Append(points ...Point) {
	if len(points) == 0 {
		return
	}
	l.points = append(l.points, points...)
	l.revision++
}

// RemoveAt removes the i-th point. Out of range indices are ignored.
func (l *Polyline) RemoveAt(i int) {
	if i < 0 || i >= len(l.points) {
		return
	}
	l.points = append(l.points[:i], l.points[i+1:]...)
	l.revision++
}

// SetPoints replaces all points. A nil slice leaves the line empty.
func (l *Polyline) SetPoints(points []Point) {
	l.points = append(l.points[:0], points...)
	l.revision++
}

// Clear removes all points.
func (l *Polyline) Clear() {
	l.SetPoints(nil)
}

// Touch marks the line changed after a color or thickness edit.
func (l *Polyline) Touch() {
	l.revision++
}

// Bounds returns the bounding rectangle of the finite points, and false if
// there are none.
func (l *Polyline) Bounds() (DataRect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, p := range l.points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			continue
		}
		found = true
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if !found {
		return DataRect{}, false
	}
	return DataRect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
