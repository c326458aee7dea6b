package plot

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ZoomPercent is the fraction of the visible span removed by one zoom-in step.
// Zooming out divides by the same factor, so in/out steps cancel exactly.
const ZoomPercent = 0.1

// Span limits keep the mapping finite no matter how far the user zooms.
const (
	MinSpan = 1e-9
	MaxSpan = 1e15
)

// Viewport maps a logical (data) rectangle onto a pixel rectangle.
//
// Logical Y grows upward, screen Y grows downward: the logical origin
// (bottom-left) lands on the bottom-left pixel of Pixel.
type Viewport struct {
	Origin Point   // Bottom-left logical corner
	Width  float64 // Logical width
	Height float64 // Logical height
	Pixel  Rect    // Screen rectangle the viewport renders into
}

// NewViewport creates a viewport showing region inside pixel.
func NewViewport(region DataRect, pixel Rect) Viewport {
	return Viewport{
		Origin: region.Min(),
		Width:  region.W,
		Height: region.H,
		Pixel:  pixel,
	}
}

// Left returns the smallest visible logical X.
func (v Viewport) Left() float64 { return v.Origin.X }

// Right returns the largest visible logical X.
func (v Viewport) Right() float64 { return v.Origin.X + v.Width }

// Bottom returns the smallest visible logical Y.
func (v Viewport) Bottom() float64 { return v.Origin.Y }

// Top returns the largest visible logical Y.
func (v Viewport) Top() float64 { return v.Origin.Y + v.Height }

// Region returns the visible logical rectangle.
func (v Viewport) Region() DataRect {
	return DataRect{X: v.Origin.X, Y: v.Origin.Y, W: v.Width, H: v.Height}
}

// SetRegion replaces the visible logical rectangle.
func (v *Viewport) SetRegion(r DataRect) {
	v.Origin = r.Min()
	v.Width = r.W
	v.Height = r.H
}

// Resize replaces the pixel rectangle, keeping the logical region.
func (v *Viewport) Resize(pixel Rect) {
	v.Pixel = pixel
}

// Sized reports whether the pixel rectangle has a non-zero size.
func (v Viewport) Sized() bool {
	return v.Pixel.W != 0 && v.Pixel.H != 0
}

// Validate checks that the viewport can be drawn.
func (v Viewport) Validate() error {
	if !v.Sized() {
		return ErrZeroDimension
	}
	if !(v.Width > 0) || !(v.Height > 0) {
		return ErrEmptyRegion
	}
	return nil
}

// PixelsPerUnit returns the horizontal and vertical scale of the mapping.
func (v Viewport) PixelsPerUnit() (sx, sy float64) {
	if v.Width == 0 || v.Height == 0 {
		return 0, 0
	}
	return float64(v.Pixel.W) / v.Width, float64(v.Pixel.H) / v.Height
}

// ToScreen converts a logical point to screen pixels.
func (v Viewport) ToScreen(p Point) Vec2 {
	sx, sy := v.PixelsPerUnit()
	return Vec2{
		X: float32(float64(v.Pixel.X) + (p.X-v.Origin.X)*sx),
		Y: float32(float64(v.Pixel.Y+v.Pixel.H) - (p.Y-v.Origin.Y)*sy),
	}
}

// ToLogical converts screen pixels to a logical point.
// It is the exact inverse of ToScreen for a sized viewport.
func (v Viewport) ToLogical(s Vec2) Point {
	if !v.Sized() {
		return v.Origin
	}
	return Point{
		X: v.Origin.X + float64(s.X-v.Pixel.X)*v.Width/float64(v.Pixel.W),
		Y: v.Origin.Y + float64(v.Pixel.Y+v.Pixel.H-s.Y)*v.Height/float64(v.Pixel.H),
	}
}

// transform returns the logical -> pixel transform:
// translate by the pixel origin, scale by pixel size (Y flipped),
// scale by inverse logical size, translate by negative logical origin.
func (v Viewport) transform() mgl64.Mat4 {
	px := mgl64.Translate3D(float64(v.Pixel.X), float64(v.Pixel.Y+v.Pixel.H), 0)
	ps := mgl64.Scale3D(float64(v.Pixel.W), -float64(v.Pixel.H), 1)
	ls := mgl64.Scale3D(1/v.Width, 1/v.Height, 1)
	lo := mgl64.Translate3D(-v.Origin.X, -v.Origin.Y, 0)
	return px.Mul4(ps).Mul4(ls).Mul4(lo)
}

// Projection returns the logical -> normalized device transform for a
// display of the given pixel size.
func (v Viewport) Projection(display Vec2) Matrix {
	return v.ProjectionAt(display, Point{})
}

// ProjectionAt is Projection for geometry stored relative to anchor.
// Anchoring near the visible region keeps the float32 vertices of cached
// lines small where precision matters.
func (v Viewport) ProjectionAt(display Vec2, anchor Point) Matrix {
	m := screenOrtho(display).Mul4(v.transform()).Mul4(mgl64.Translate3D(anchor.X, anchor.Y, 0))
	return matrixFrom(m)
}

// Pan offsets the logical origin by a pixel-space mouse delta.
// Dragging right moves the content right, so the origin moves left.
func (v *Viewport) Pan(dx, dy float32) {
	if !v.Sized() {
		return
	}
	v.Origin.X -= float64(dx) * v.Width / float64(v.Pixel.W)
	v.Origin.Y += float64(dy) * v.Height / float64(v.Pixel.H)
}

// zoomFactor returns the span multiplier for steps (positive zooms in).
func zoomFactor(steps int) float64 {
	return math.Pow(1-ZoomPercent, float64(steps))
}

// Zoom scales the logical span by ZoomPercent per step and recenters on the
// viewport center. Positive steps zoom in.
func (v *Viewport) Zoom(steps int) {
	c := v.Region().Center()
	f := zoomFactor(steps)
	v.Width = clampSpan(v.Width * f)
	v.Height = clampSpan(v.Height * f)
	v.Origin = Point{X: c.X - v.Width/2, Y: c.Y - v.Height/2}
}

// ZoomAt zooms like Zoom but keeps the logical point under the screen
// position anchor fixed.
func (v *Viewport) ZoomAt(steps int, anchor Vec2) {
	if !v.Sized() {
		v.Zoom(steps)
		return
	}
	a := v.ToLogical(anchor)
	fx := (a.X - v.Origin.X) / v.Width
	fy := (a.Y - v.Origin.Y) / v.Height
	f := zoomFactor(steps)
	v.Width = clampSpan(v.Width * f)
	v.Height = clampSpan(v.Height * f)
	v.Origin = Point{X: a.X - fx*v.Width, Y: a.Y - fy*v.Height}
}

func clampSpan(s float64) float64 {
	return math.Max(MinSpan, math.Min(s, MaxSpan))
}
