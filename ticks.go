package plot

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Axis selects which logical axis a tick bar measures.
type Axis int

const (
	AxisX Axis = iota // Horizontal bar under the plot area, labels at screen X
	AxisY             // Vertical bar left of the plot area, labels at screen Y
)

// TickKind classifies a tick.
type TickKind int

const (
	TickMinor TickKind = iota
	TickMajor
)

// TickEpsilon is the divisibility tolerance, relative to the spacing.
const TickEpsilon = 1e-6

// maxTicks bounds the work done for a fixed spacing on a huge range.
const maxTicks = 4096

// Tick is a single scale mark.
type Tick struct {
	Value float64
	Kind  TickKind
	Label string // Set for major ticks only
}

// TickBar computes and draws the scale marks of one axis.
// It holds configuration only; ticks are recomputed on every draw.
type TickBar struct {
	Axis  Axis
	Start float64 // Offset the ticks are aligned to
	Major float64 // Major spacing (<= 0 disables major ticks)
	Minor float64 // Minor spacing (<= 0 disables minor ticks)

	// Auto recomputes Major and Minor from the visible span on each draw.
	Auto bool

	// Format is a fmt verb for labels, e.g. "%.2f". Empty prints as many
	// decimals as the spacing needs, so neighboring labels always differ.
	Format string

	// Formatter overrides Format when set.
	Formatter func(v float64) string
}

// NewTickBar creates a tick bar with automatic spacing.
func NewTickBar(axis Axis) *TickBar {
	return &TickBar{Axis: axis, Auto: true}
}

// Label formats a tick value at the bar's Major spacing.
func (b *TickBar) Label(v float64) string {
	return b.label(v, b.Major)
}

// label formats v with as many digits as tell ticks spacing apart.
func (b *TickBar) label(v, spacing float64) string {
	switch {
	case b.Formatter != nil:
		return b.Formatter(v)
	case b.Format != "":
		return fmt.Sprintf(b.Format, v)
	case v == 0:
		return "0"
	case !(spacing > 0) || math.IsInf(spacing, 0):
		return strconv.FormatFloat(v, 'g', 12, 64)
	}
	d := spacingDecimals(spacing)
	if math.Abs(v) >= 1e15 {
		digits := int(math.Floor(math.Log10(math.Abs(v)))) + d + 1
		return strconv.FormatFloat(v, 'g', min(max(digits, 1), 17), 64)
	}
	out := strconv.FormatFloat(v, 'f', max(d, 0), 64)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(strings.TrimRight(out, "0"), ".")
	}
	if out == "-0" {
		out = "0"
	}
	return out
}

// spacingDecimals returns the decimal places that write spacing exactly,
// negative for spacings of tens and above (1000 gives -3, 0.25 gives 2).
func spacingDecimals(spacing float64) int {
	d := -int(math.Floor(math.Log10(spacing)))
	for range 4 {
		s := spacing * math.Pow(10, float64(d))
		if math.Abs(s-math.Round(s)) <= 1e-6*s {
			break
		}
		d++
	}
	return d
}

// Ticks returns the ticks inside [lo, hi] in ascending order. A value
// divisible by the major spacing is always major; values divisible by
// neither spacing are skipped.
func (b *TickBar) Ticks(lo, hi float64) []Tick {
	return b.ticks(lo, hi, b.Major, b.Minor)
}

func (b *TickBar) ticks(lo, hi, major, minor float64) []Tick {
	if hi < lo {
		lo, hi = hi, lo
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}

	var out []Tick
	if major > 0 {
		n0, n1, ok := stepRange(lo-b.Start, hi-b.Start, major)
		if !ok {
			return nil
		}
		for n := n0; n <= n1; n++ {
			v := b.tickValue(n, major)
			out = append(out, Tick{Value: v, Kind: TickMajor, Label: b.label(v, major)})
		}
	}
	if minor > 0 {
		n0, n1, ok := stepRange(lo-b.Start, hi-b.Start, minor)
		if ok {
			for n := n0; n <= n1; n++ {
				if major > 0 && divisible(float64(n)*minor, major) {
					continue
				}
				out = append(out, Tick{Value: b.tickValue(n, minor), Kind: TickMinor})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// tickValue returns Start + n*spacing with float noise around zero removed.
func (b *TickBar) tickValue(n int64, spacing float64) float64 {
	v := b.Start + float64(n)*spacing
	if math.Abs(v) < spacing*TickEpsilon {
		return 0
	}
	return v
}

// maxStep is the largest step index whose value float64 holds exactly.
const maxStep = 1 << 53

// stepRange returns the step indices whose multiples of spacing fall in
// [lo, hi], and false when there are too many to draw or the indices
// exceed maxStep.
func stepRange(lo, hi, spacing float64) (int64, int64, bool) {
	f0 := math.Ceil(lo/spacing - TickEpsilon)
	f1 := math.Floor(hi/spacing + TickEpsilon)
	if !(math.Abs(f0) <= maxStep) || !(math.Abs(f1) <= maxStep) || f1-f0 > maxTicks {
		return 0, 0, false
	}
	return int64(f0), int64(f1), true
}

// divisible reports whether x is a multiple of spacing within TickEpsilon.
func divisible(x, spacing float64) bool {
	q := x / spacing
	return math.Abs(q-math.Round(q)) < TickEpsilon
}

// AutoSpacing returns a 1, 2 or 5 times 10^n spacing so that consecutive
// ticks over span are at least minGap pixels apart on a pixels-wide axis.
func AutoSpacing(span float64, pixels, minGap float32) float64 {
	if !(span > 0) || pixels <= 0 || minGap <= 0 {
		return 0
	}
	raw := span * float64(minGap) / float64(pixels)
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*base >= raw*(1-TickEpsilon) {
			return m * base
		}
	}
	return 10 * base
}

// minorFor returns the minor spacing that pairs with an automatic major.
func minorFor(major float64) float64 {
	lead := major / math.Pow(10, math.Floor(math.Log10(major)))
	if math.Abs(lead-2) < 1e-9 {
		return major / 4
	}
	return major / 5
}

// spacing returns the spacing to use for a span drawn over pixels.
func (b *TickBar) spacing(span float64, pixels float32, style *Style) (major, minor float64) {
	if !b.Auto {
		return b.Major, b.Minor
	}
	major = AutoSpacing(span, pixels, style.MinLabelGap)
	if major <= 0 {
		return 0, 0
	}
	if style.MinorTickLength <= 0 && style.MinorGridColor == 0 {
		return major, 0
	}
	return major, minorFor(major)
}

// visible returns the ticks for the range v shows along the bar's axis.
func (b *TickBar) visible(v Viewport, style *Style) []Tick {
	if b.Axis == AxisX {
		major, minor := b.spacing(v.Width, v.Pixel.W, style)
		return b.ticks(v.Left(), v.Right(), major, minor)
	}
	major, minor := b.spacing(v.Height, v.Pixel.H, style)
	return b.ticks(v.Bottom(), v.Top(), major, minor)
}

// screenPos returns the tick's pixel coordinate along the bar.
func (b *TickBar) screenPos(v Viewport, value float64) float32 {
	if b.Axis == AxisX {
		return v.ToScreen(Point{X: value, Y: v.Bottom()}).X
	}
	return v.ToScreen(Point{X: v.Left(), Y: value}).Y
}

// DrawGrid draws gridlines across the plot area.
func (b *TickBar) DrawGrid(dl *DrawList, v Viewport, style *Style) {
	if !style.ShowGrid {
		return
	}
	px := v.Pixel
	for _, t := range b.visible(v, style) {
		color := style.GridColor
		if t.Kind == TickMinor {
			color = style.MinorGridColor
		}
		if color == 0 {
			continue
		}
		p := b.screenPos(v, t.Value)
		if b.Axis == AxisX {
			dl.AddLine(p, px.Y, p, px.Y+px.H, color, 1)
		} else {
			dl.AddLine(px.X, p, px.X+px.W, p, color, 1)
		}
	}
}

// Draw renders the base line, tick marks and major labels in the margin
// next to the plot area.
func (b *TickBar) Draw(dl *DrawList, v Viewport, style *Style) {
	px := v.Pixel
	scale := style.LabelScale
	lineH := GlyphHeight * scale

	if b.Axis == AxisX {
		dl.AddLine(px.X, px.Y+px.H, px.X+px.W, px.Y+px.H, style.AxisColor, 1)
	} else {
		dl.AddLine(px.X, px.Y, px.X, px.Y+px.H, style.AxisColor, 1)
	}

	lastEnd := float32(math.Inf(-1))
	for _, t := range b.visible(v, style) {
		length := style.MinorTickLength
		if t.Kind == TickMajor {
			length = style.MajorTickLength
		}
		p := b.screenPos(v, t.Value)

		if b.Axis == AxisX {
			base := px.Y + px.H
			if length > 0 {
				dl.AddLine(p, base, p, base+length, style.TickColor, 1)
			}
			if t.Kind != TickMajor || t.Label == "" {
				continue
			}
			w := MeasureText(t.Label, scale).X
			x := p - w/2
			if x < lastEnd+GlyphWidth*scale {
				continue
			}
			dl.AddText(x, base+style.MajorTickLength+2, t.Label, style.LabelColor, scale)
			lastEnd = x + w
			continue
		}

		if length > 0 {
			dl.AddLine(px.X-length, p, px.X, p, style.TickColor, 1)
		}
		if t.Kind != TickMajor || t.Label == "" {
			continue
		}
		w := MeasureText(t.Label, scale).X
		y := p - lineH/2
		// Ticks ascend in value, which is descending screen Y.
		if !math.IsInf(float64(lastEnd), -1) && y+lineH > lastEnd-2 {
			continue
		}
		dl.AddText(px.X-style.MajorTickLength-2-w, y, t.Label, style.LabelColor, scale)
		lastEnd = y
	}
}
