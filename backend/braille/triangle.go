package braille

import "math"

type point struct{ x, y float64 }

type triangle struct {
	p [3]point
}

// edgeTolerance keeps samples that fall exactly on an edge.
const edgeTolerance = 1e-3

func (t *triangle) bounds() (x0, y0, x1, y1 float64) {
	x0, y0 = t.p[0].x, t.p[0].y
	x1, y1 = x0, y0
	for _, p := range t.p[1:] {
		x0, x1 = math.Min(x0, p.x), math.Max(x1, p.x)
		y0, y1 = math.Min(y0, p.y), math.Max(y1, p.y)
	}
	return
}

func (t *triangle) area2() float64 {
	a, b, c := t.p[0], t.p[1], t.p[2]
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// altitude returns the height of the triangle over its longest edge.
func (t *triangle) altitude() float64 {
	longest := 0.0
	for i := range t.p {
		a, b := t.p[i], t.p[(i+1)%3]
		longest = math.Max(longest, math.Hypot(b.x-a.x, b.y-a.y))
	}
	if longest == 0 {
		return 0
	}
	return math.Abs(t.area2()) / longest
}

// contains reports whether q lies inside t or on its edges.
func (t *triangle) contains(q point) bool {
	sign := 1.0
	if t.area2() < 0 {
		sign = -1
	}
	for i := range t.p {
		a, b := t.p[i], t.p[(i+1)%3]
		length := math.Hypot(b.x-a.x, b.y-a.y)
		if length == 0 {
			continue
		}
		// Signed distance of q from edge ab, positive inside.
		d := sign * ((b.x-a.x)*(q.y-a.y) - (b.y-a.y)*(q.x-a.x)) / length
		if d < -edgeTolerance {
			return false
		}
	}
	return t.area2() != 0
}
