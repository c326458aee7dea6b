package raster

type vec struct{ x, y float64 }

func signedArea(p []vec) float64 {
	var a float64
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].x*p[j].y - p[j].x*p[i].y
	}
	return a / 2
}

// clipPolygon clips a convex polygon to the rectangle (x1, y1, x2, y2),
// one edge at a time. Winding is preserved.
func clipPolygon(poly []vec, rect [4]float32) []vec {
	x1, y1 := float64(rect[0]), float64(rect[1])
	x2, y2 := float64(rect[2]), float64(rect[3])

	edges := [4]struct {
		inside func(v vec) bool
		cross  func(a, b vec) vec
	}{
		{func(v vec) bool { return v.x >= x1 }, func(a, b vec) vec { return atX(a, b, x1) }},
		{func(v vec) bool { return v.x <= x2 }, func(a, b vec) vec { return atX(a, b, x2) }},
		{func(v vec) bool { return v.y >= y1 }, func(a, b vec) vec { return atY(a, b, y1) }},
		{func(v vec) bool { return v.y <= y2 }, func(a, b vec) vec { return atY(a, b, y2) }},
	}

	out := poly
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]vec, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b vec, x float64) vec {
	t := (x - a.x) / (b.x - a.x)
	return vec{x, a.y + t*(b.y-a.y)}
}

func atY(a, b vec, y float64) vec {
	t := (y - a.y) / (b.y - a.y)
	return vec{a.x + t*(b.x-a.x), y}
}
