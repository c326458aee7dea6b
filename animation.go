package plot

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// regionTween animates the visible region between two rectangles.
// The tween runs on a 0..1 progress value so the float32 precision of the
// tween never touches logical coordinates.
type regionTween struct {
	from, to DataRect
	progress *gween.Tween
	done     bool
}

func newRegionTween(from, to DataRect, seconds float32, fn ease.TweenFunc) *regionTween {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &regionTween{
		from:     from,
		to:       to,
		progress: gween.New(0, 1, seconds, fn),
	}
}

// update advances the tween by dt seconds and returns the current region.
func (a *regionTween) update(dt float32) (DataRect, bool) {
	if a.done {
		return a.to, true
	}
	t, done := a.progress.Update(dt)
	a.done = done
	if done {
		return a.to, true
	}
	return lerpRegion(a.from, a.to, float64(t)), false
}

func lerpRegion(a, b DataRect, t float64) DataRect {
	return DataRect{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		W: a.W + (b.W-a.W)*t,
		H: a.H + (b.H-a.H)*t,
	}
}
