package plot

import "sync/atomic"

// MarkerID identifies a marker for the lifetime of the process.
type MarkerID uint64

var markerIDCounter atomic.Uint64

// DragConstraint limits the direction a marker can be dragged in.
type DragConstraint int

const (
	DragFree  DragConstraint = iota // Move along both axes
	DragXOnly                       // Move horizontally only
	DragYOnly                       // Move vertically only
)

// MinMarkerPixels is the smallest screen size used for hit-testing, so thin
// markers (e.g. a zero-width vertical cursor line) can still be grabbed.
const MinMarkerPixels float32 = 6

// Marker is a rectangular annotation overlay defined in logical space.
type Marker struct {
	Rect        DataRect // Logical rectangle (X, Y bottom-left)
	Color       uint32   // Fill color
	BorderColor uint32   // Outline color (0 = none)
	Label       string   // Drawn above the marker when non-empty
	Draggable   bool
	Constraint  DragConstraint

	id MarkerID
}

// NewMarker creates a draggable marker covering rect.
func NewMarker(rect DataRect, color uint32) *Marker {
	return &Marker{
		Rect:      rect,
		Color:     color,
		Draggable: true,
		id:        MarkerID(markerIDCounter.Add(1)),
	}
}

// ID returns the marker's identity.
func (m *Marker) ID() MarkerID { return m.id }

// ScreenRect converts the logical rectangle to screen space under v.
func (m *Marker) ScreenRect(v Viewport) Rect {
	tl := v.ToScreen(Point{X: m.Rect.X, Y: m.Rect.Y + m.Rect.H})
	br := v.ToScreen(Point{X: m.Rect.X + m.Rect.W, Y: m.Rect.Y})
	return Rect{X: tl.X, Y: tl.Y, W: br.X - tl.X, H: br.Y - tl.Y}
}

// hitRect is ScreenRect grown to at least MinMarkerPixels on each axis.
func (m *Marker) hitRect(v Viewport) Rect {
	r := m.ScreenRect(v)
	if r.W < MinMarkerPixels {
		r.X -= (MinMarkerPixels - r.W) / 2
		r.W = MinMarkerPixels
	}
	if r.H < MinMarkerPixels {
		r.Y -= (MinMarkerPixels - r.H) / 2
		r.H = MinMarkerPixels
	}
	return r
}

// HitTest reports whether the screen point p lies on the marker under v.
func (m *Marker) HitTest(v Viewport, p Vec2) bool {
	if !v.Sized() {
		return false
	}
	return m.hitRect(v).Contains(p)
}

// Drag translates the marker by the logical delta between two screen points.
func (m *Marker) Drag(v Viewport, from, to Vec2) {
	if !v.Sized() {
		return
	}
	d := v.ToLogical(to).Sub(v.ToLogical(from))
	switch m.Constraint {
	case DragXOnly:
		d.Y = 0
	case DragYOnly:
		d.X = 0
	}
	m.Rect.X += d.X
	m.Rect.Y += d.Y
}

// MoveTo places the marker's bottom-left corner at p.
func (m *Marker) MoveTo(p Point) {
	m.Rect.X = p.X
	m.Rect.Y = p.Y
}

// draw renders the marker in screen space.
func (m *Marker) draw(dl *DrawList, v Viewport, style *Style, hovered bool) {
	r := m.ScreenRect(v)
	if !r.Intersects(v.Pixel) {
		return
	}
	if r.W < 1 {
		r.X -= (1 - r.W) / 2
		r.W = 1
	}
	if r.H < 1 {
		r.Y -= (1 - r.H) / 2
		r.H = 1
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, m.Color)

	border := m.BorderColor
	if hovered {
		border = style.MarkerHoverColor
	}
	if border != 0 {
		dl.AddRectOutline(r.X, r.Y, r.W, r.H, border, 1)
	}
	if m.Label != "" {
		ly := r.Y - GlyphHeight*style.LabelScale - 2
		if ly < v.Pixel.Y {
			ly = r.Y + 2
		}
		dl.AddText(r.X+2, ly, m.Label, style.LabelColor, style.LabelScale)
	}
}
