package plot

import (
	"log/slog"
	"math"
)

// CachedLine is a polyline tessellated in logical space, relative to Anchor.
// Render it with Viewport.ProjectionAt(display, Anchor).
type CachedLine struct {
	List   *DrawList
	Anchor Point

	revision  uint64
	color     uint32
	thickness float32
	sx, sy    float64
}

// maxAnchorPixels is how far, in pixels, the view center may drift from a
// cached line's anchor before the line is rebuilt. Vertices within this
// distance of the anchor keep sub-pixel float32 precision.
const maxAnchorPixels = 1 << 14

// LineCache owns the cached draw lists of polylines, keyed by line identity.
// Entries stay valid while the line is unchanged, the zoom scale is the same
// and the view stays within maxAnchorPixels of the anchor; smaller pans only
// change the projection.
type LineCache struct {
	entries  map[LineID]*CachedLine
	rebuilds int
	logger   *slog.Logger
}

// NewLineCache creates an empty cache.
func NewLineCache(logger *slog.Logger) *LineCache {
	if logger == nil {
		logger = plotLogger
	}
	return &LineCache{
		entries: make(map[LineID]*CachedLine),
		logger:  logger,
	}
}

// Len returns the number of cached lines.
func (c *LineCache) Len() int { return len(c.entries) }

// Rebuilds returns how many times a line has been tessellated.
func (c *LineCache) Rebuilds() int { return c.rebuilds }

// Get returns the cached geometry for l under v, rebuilding it if the line
// or the zoom scale changed since it was built.
func (c *LineCache) Get(l *Polyline, v Viewport) *CachedLine {
	sx, sy := v.PixelsPerUnit()
	e, ok := c.entries[l.ID()]
	center := v.Region().Center()
	if ok && e.revision == l.Revision() && e.color == l.Color &&
		e.thickness == l.Thickness && sameScale(e.sx, sx) && sameScale(e.sy, sy) &&
		nearAnchor(e.Anchor, center, sx, sy) {
		return e
	}
	if !ok {
		e = &CachedLine{List: AcquireDrawList()}
		c.entries[l.ID()] = e
	}
	c.build(e, l, center, sx, sy)
	return e
}

func nearAnchor(anchor, center Point, sx, sy float64) bool {
	return math.Abs(center.X-anchor.X)*sx <= maxAnchorPixels &&
		math.Abs(center.Y-anchor.Y)*sy <= maxAnchorPixels
}

// build tessellates l into e relative to anchor, the view center.
func (c *LineCache) build(e *CachedLine, l *Polyline, anchor Point, sx, sy float64) {
	e.List.Clear()
	e.revision = l.Revision()
	e.color = l.Color
	e.thickness = l.Thickness
	e.sx, e.sy = sx, sy
	c.rebuilds++

	e.Anchor = anchor

	pts := make([][2]float32, len(l.points))
	for i, p := range l.points {
		pts[i] = [2]float32{float32(p.X - e.Anchor.X), float32(p.Y - e.Anchor.Y)}
	}
	e.List.AddPolylineScaled(pts, l.Color, l.Thickness, float32(sx), float32(sy))
	e.List.Finalize()

	c.logger.Debug("line tessellated", "line", l.ID(), "points", len(pts), "vertices", len(e.List.VtxBuffer))
}

// Release drops the cached geometry of a line and returns its draw list to
// the pool. It reports whether an entry existed.
func (c *LineCache) Release(id LineID) bool {
	e, ok := c.entries[id]
	if !ok {
		return false
	}
	delete(c.entries, id)
	ReleaseDrawList(e.List)
	return true
}

// Reset releases every cached line.
func (c *LineCache) Reset() {
	for id := range c.entries {
		c.Release(id)
	}
}

func sameScale(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
