package plot

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"

	"github.com/tanema/gween/ease"
)

// KeyPanPixels is how far one arrow key press pans the view.
const KeyPanPixels float32 = 40

// Cursor is the standard cursor shape the host should show.
type Cursor int

const (
	CursorArrow     Cursor = iota // Outside the plot area
	CursorCrosshair               // Over the plot area
	CursorHand                    // Over a draggable marker
	CursorMove                    // Panning or dragging a free marker
	CursorHResize                 // Dragging a horizontal-only marker
	CursorVResize                 // Dragging a vertical-only marker
)

// Graph is an embeddable line-graph surface. It owns polylines and markers,
// maps a logical region onto its pixel area, and turns all of it into a
// Frame for a Renderer.
//
// A Graph is not safe for concurrent use; drive it from the host's UI thread.
type Graph struct {
	style  Style
	logger *slog.Logger

	width, height int // Host surface size in pixels
	view          Viewport
	home          DataRect
	homeSet       bool

	lines   []*Polyline
	markers []*Marker
	cache   *LineCache

	xBar, yBar *TickBar

	panEnabled  bool
	zoomEnabled bool
	snap        SnapConfig

	drag        DragState
	hovered     *Marker
	mouse       Vec2
	mouseInside bool
	cursor      Cursor

	anim          *regionTween
	onMarkerMoved func(*Marker)

	frame Frame
}

// GraphOption configures a Graph instance.
type GraphOption func(*Graph)

// WithStyle sets the graph style.
func WithStyle(style Style) GraphOption {
	return func(g *Graph) { g.style = style }
}

// WithPanEnabled enables or disables mouse and keyboard panning.
func WithPanEnabled(enabled bool) GraphOption {
	return func(g *Graph) { g.panEnabled = enabled }
}

// WithZoomEnabled enables or disables wheel and keyboard zoom.
func WithZoomEnabled(enabled bool) GraphOption {
	return func(g *Graph) { g.zoomEnabled = enabled }
}

// WithTickBars replaces the horizontal and vertical tick bars.
// A nil bar hides that axis.
func WithTickBars(x, y *TickBar) GraphOption {
	return func(g *Graph) {
		g.xBar = x
		g.yBar = y
	}
}

// WithRegion sets the initial and home region. Unlike Display it does not
// require the surface to be sized.
func WithRegion(r DataRect) GraphOption {
	return func(g *Graph) {
		g.view.SetRegion(r)
		g.home = r
		g.homeSet = true
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) { g.logger = logger }
}

// WithMarkerSnap snaps dragged markers to a logical grid on release.
func WithMarkerSnap(snap SnapConfig) GraphOption {
	return func(g *Graph) { g.snap = snap }
}

// NewGraph creates an unsized graph. Call Resize once the host surface has
// a size, then Display.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		style:       DefaultStyle(),
		logger:      plotLogger,
		xBar:        NewTickBar(AxisX),
		yBar:        NewTickBar(AxisY),
		panEnabled:  true,
		zoomEnabled: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = plotLogger
	}
	g.cache = NewLineCache(g.logger)
	return g
}

// Style returns the current style.
func (g *Graph) Style() Style { return g.style }

// SetStyle replaces the style.
func (g *Graph) SetStyle(style Style) {
	g.style = style
	g.Resize(g.width, g.height)
}

// PanEnabled reports whether panning is enabled.
func (g *Graph) PanEnabled() bool { return g.panEnabled }

// SetPanEnabled enables or disables panning. Disabling ends a pan in progress.
func (g *Graph) SetPanEnabled(enabled bool) {
	g.panEnabled = enabled
	if !enabled && g.drag.IsPanning() {
		g.drag.Reset()
	}
}

// ZoomEnabled reports whether zooming is enabled.
func (g *Graph) ZoomEnabled() bool { return g.zoomEnabled }

// SetZoomEnabled enables or disables zooming.
func (g *Graph) SetZoomEnabled(enabled bool) { g.zoomEnabled = enabled }

// Viewport returns a copy of the current viewport.
func (g *Graph) Viewport() Viewport { return g.view }

// Region returns the visible logical region.
func (g *Graph) Region() DataRect { return g.view.Region() }

// PlotRect returns the pixel rectangle lines are drawn into.
func (g *Graph) PlotRect() Rect { return g.view.Pixel }

// Size returns the host surface size in pixels.
func (g *Graph) Size() (width, height int) { return g.width, g.height }

// Cache returns the line cache, for statistics.
func (g *Graph) Cache() *LineCache { return g.cache }

// Resize sets the host surface size and lays out the plot area inside the
// style margins.
func (g *Graph) Resize(width, height int) {
	g.width, g.height = max(width, 0), max(height, 0)
	s := &g.style
	plot := Rect{
		X: s.MarginLeft,
		Y: s.MarginTop,
		W: float32(g.width) - s.MarginLeft - s.MarginRight,
		H: float32(g.height) - s.MarginTop - s.MarginBottom,
	}
	if plot.W <= 0 || plot.H <= 0 {
		plot.W, plot.H = 0, 0
	}
	g.view.Resize(plot)
}

// Display shows region. It fails with ErrZeroDimension until the host
// surface has been sized.
func (g *Graph) Display(region DataRect) error {
	if err := g.checkDisplay(region); err != nil {
		return err
	}
	g.anim = nil
	g.view.SetRegion(region)
	if !g.homeSet {
		g.home = region
		g.homeSet = true
	}
	g.logger.Debug("display region", "x", region.X, "y", region.Y, "w", region.W, "h", region.H)
	return nil
}

// DisplayAnimated moves to region over seconds with the easing function
// (nil uses ease.OutCubic). Update advances the transition.
func (g *Graph) DisplayAnimated(region DataRect, seconds float32, fn ease.TweenFunc) error {
	if seconds <= 0 {
		return g.Display(region)
	}
	if err := g.checkDisplay(region); err != nil {
		return err
	}
	if !g.homeSet {
		g.home = region
		g.homeSet = true
	}
	g.anim = newRegionTween(g.view.Region(), region, seconds, fn)
	g.logger.Debug("animate region", "x", region.X, "y", region.Y, "w", region.W, "h", region.H, "seconds", seconds)
	return nil
}

func (g *Graph) checkDisplay(region DataRect) error {
	if !g.view.Sized() {
		return fmt.Errorf("display %dx%d surface: %w", g.width, g.height, ErrZeroDimension)
	}
	if !(region.W > 0) || !(region.H > 0) || !finiteRect(region) {
		return fmt.Errorf("display %gx%g region: %w", region.W, region.H, ErrEmptyRegion)
	}
	return nil
}

func finiteRect(r DataRect) bool {
	for _, v := range [4]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Animating reports whether a DisplayAnimated transition is running.
func (g *Graph) Animating() bool { return g.anim != nil }

// Update advances time-based state by dt seconds and reports whether the
// view changed.
func (g *Graph) Update(dt float32) bool {
	if g.anim == nil {
		return false
	}
	r, done := g.anim.update(dt)
	g.view.SetRegion(r)
	if done {
		g.anim = nil
	}
	return true
}

// FitToData displays the bounds of all visible lines grown by padding (a
// fraction of the span on each side). With no points it does nothing.
func (g *Graph) FitToData(padding float64) error {
	var bounds DataRect
	found := false
	for _, l := range g.lines {
		if l.Hidden {
			continue
		}
		b, ok := l.Bounds()
		if !ok {
			continue
		}
		if !found {
			bounds, found = b, true
		} else {
			bounds = bounds.Union(b)
		}
	}
	if !found {
		return nil
	}
	bounds = widenDegenerate(bounds)
	return g.Display(bounds.Inset(padding))
}

// widenDegenerate gives a zero-width or zero-height rectangle a unit span
// around its center, so a single point or a flat line can still be shown.
func widenDegenerate(r DataRect) DataRect {
	if r.W <= 0 {
		w := math.Max(math.Abs(r.X)*0.1, 1)
		r.X -= w / 2
		r.W = w
	}
	if r.H <= 0 {
		h := math.Max(math.Abs(r.Y)*0.1, 1)
		r.Y -= h / 2
		r.H = h
	}
	return r
}

// Home returns to the home region: the first displayed region, or the one
// set with WithRegion or SetHome.
func (g *Graph) Home() {
	if !g.homeSet {
		return
	}
	g.anim = nil
	g.view.SetRegion(g.home)
}

// SetHome replaces the home region.
func (g *Graph) SetHome(r DataRect) {
	g.home = r
	g.homeSet = true
}

// LogicalAt converts a screen position to a logical point.
func (g *Graph) LogicalAt(screen Vec2) Point {
	return g.view.ToLogical(screen)
}

// AddLine adds a polyline. A line without a color takes the next palette
// color. Adding a line twice has no effect.
func (g *Graph) AddLine(l *Polyline) {
	if l == nil || slices.Contains(g.lines, l) {
		return
	}
	if l.Color == 0 {
		l.Color = g.style.LineColor(len(g.lines))
	}
	g.lines = append(g.lines, l)
	g.logger.Debug("line added", "line", l.ID(), "points", l.Len())
}

// RemoveLine removes a polyline and releases its cached geometry.
func (g *Graph) RemoveLine(l *Polyline) error {
	i := slices.Index(g.lines, l)
	if i < 0 {
		return fmt.Errorf("remove line: %w", ErrNotFound)
	}
	g.lines = slices.Delete(g.lines, i, i+1)
	g.cache.Release(l.ID())
	g.logger.Debug("line removed", "line", l.ID())
	return nil
}

// Lines returns the polylines in drawing order.
func (g *Graph) Lines() []*Polyline {
	return slices.Clone(g.lines)
}

// ClearLines removes every line and resets the line cache.
func (g *Graph) ClearLines() {
	clear(g.lines)
	g.lines = g.lines[:0]
	g.cache.Reset()
}

// AddMarker adds a marker on top of the existing ones.
func (g *Graph) AddMarker(m *Marker) {
	if m == nil || slices.Contains(g.markers, m) {
		return
	}
	g.markers = append(g.markers, m)
}

// RemoveMarker removes a marker. A drag on it is cancelled.
func (g *Graph) RemoveMarker(m *Marker) error {
	i := slices.Index(g.markers, m)
	if i < 0 {
		return fmt.Errorf("remove marker: %w", ErrNotFound)
	}
	g.markers = slices.Delete(g.markers, i, i+1)
	g.forgetMarker(m)
	return nil
}

// Markers returns the markers in drawing order.
func (g *Graph) Markers() []*Marker {
	return slices.Clone(g.markers)
}

// ClearMarkers removes every marker.
func (g *Graph) ClearMarkers() {
	for _, m := range g.markers {
		g.forgetMarker(m)
	}
	clear(g.markers)
	g.markers = g.markers[:0]
}

func (g *Graph) forgetMarker(m *Marker) {
	if g.drag.DraggedMarker() == m {
		g.drag.Reset()
	}
	if g.hovered == m {
		g.hovered = nil
	}
}

// OnMarkerMoved sets a callback invoked when a marker drag ends with the
// marker in a new place.
func (g *Graph) OnMarkerMoved(fn func(m *Marker)) {
	g.onMarkerMoved = fn
}

// Hovered returns the marker under the mouse, if any.
func (g *Graph) Hovered() (MarkerID, bool) {
	if g.hovered == nil {
		return 0, false
	}
	return g.hovered.ID(), true
}

// Cursor returns the cursor shape for the current mouse position.
func (g *Graph) Cursor() Cursor { return g.cursor }

// Dragging returns the drag state.
func (g *Graph) Dragging() *DragState { return &g.drag }

// markerAt returns the top-most marker under p.
func (g *Graph) markerAt(p Vec2) *Marker {
	for i := len(g.markers) - 1; i >= 0; i-- {
		if g.markers[i].HitTest(g.view, p) {
			return g.markers[i]
		}
	}
	return nil
}

// HandleInput applies one frame of input and reports whether the graph
// needs a redraw. Dragging a marker takes priority over panning.
func (g *Graph) HandleInput(in *InputState) bool {
	if in == nil || !g.view.Sized() {
		return false
	}
	pos := in.MousePos()
	inside := g.view.Pixel.Contains(pos)
	changed := false

	if pos != g.mouse && g.style.CrosshairColor != 0 && (inside || g.mouseInside) {
		changed = true
	}
	g.mouse, g.mouseInside = pos, inside

	switch {
	case g.drag.Active:
		changed = g.continueDrag(in, pos) || changed
	case inside:
		g.beginDrag(in, pos)
	}

	if g.zoomEnabled && inside && in.MouseWheelY != 0 && g.drag.DraggedMarker() == nil {
		g.view.ZoomAt(wheelSteps(in.MouseWheelY), pos)
		g.anim = nil
		changed = true
	}

	if g.handleKeys(in) {
		changed = true
	}

	hovered := g.hovered
	switch {
	case g.drag.DraggedMarker() != nil:
		g.hovered = g.drag.DraggedMarker()
	case inside && !g.drag.Active:
		g.hovered = g.markerAt(pos)
	default:
		g.hovered = nil
	}
	if hovered != g.hovered {
		changed = true
	}

	g.cursor = g.cursorFor(inside)
	return changed
}

func (g *Graph) beginDrag(in *InputState, pos Vec2) {
	if in.MouseClicked(MouseButtonLeft) {
		if m := g.markerAt(pos); m != nil && m.Draggable {
			g.drag.beginMarker(m, pos)
			g.logger.Debug("marker drag start", "marker", m.ID())
			return
		}
		if g.panEnabled {
			g.drag.begin(dragPan, MouseButtonLeft, pos)
			g.anim = nil
		}
		return
	}
	if in.MouseClicked(MouseButtonMiddle) && g.panEnabled {
		g.drag.begin(dragPan, MouseButtonMiddle, pos)
		g.anim = nil
	}
}

func (g *Graph) continueDrag(in *InputState, pos Vec2) bool {
	m := g.drag.DraggedMarker()

	if m != nil && in.KeyPressed(KeyEscape) {
		m.Rect = g.drag.markerStart
		g.logger.Debug("marker drag cancelled", "marker", m.ID())
		g.drag.Reset()
		return true
	}

	prev := g.drag.step(pos)
	moved := prev != pos
	if moved {
		if m != nil {
			m.Drag(g.view, prev, pos)
		} else {
			g.view.Pan(pos.X-prev.X, pos.Y-prev.Y)
		}
	}

	if in.MouseDown(g.drag.button) {
		return moved
	}

	if m != nil {
		g.snap.snap(m)
		g.logger.Debug("marker drag end", "marker", m.ID(), "x", m.Rect.X, "y", m.Rect.Y)
		if m.Rect != g.drag.markerStart && g.onMarkerMoved != nil {
			g.onMarkerMoved(m)
		}
	}
	g.drag.Reset()
	return true
}

func (g *Graph) handleKeys(in *InputState) bool {
	changed := false
	if g.panEnabled && !g.drag.Active {
		var dx, dy float32
		if in.KeyRepeated(KeyLeft) {
			dx += KeyPanPixels
		}
		if in.KeyRepeated(KeyRight) {
			dx -= KeyPanPixels
		}
		if in.KeyRepeated(KeyUp) {
			dy += KeyPanPixels
		}
		if in.KeyRepeated(KeyDown) {
			dy -= KeyPanPixels
		}
		if dx != 0 || dy != 0 {
			g.view.Pan(dx, dy)
			g.anim = nil
			changed = true
		}
	}
	if g.zoomEnabled {
		steps := 0
		if in.KeyRepeated(KeyPlus) || in.KeyRepeated(KeyPageUp) {
			steps++
		}
		if in.KeyRepeated(KeyMinus) || in.KeyRepeated(KeyPageDown) {
			steps--
		}
		if steps != 0 {
			g.view.Zoom(steps)
			g.anim = nil
			changed = true
		}
	}
	if in.KeyPressed(KeyHome) && g.homeSet && !g.drag.Active {
		g.Home()
		changed = true
	}
	return changed
}

// wheelSteps converts a wheel delta to whole zoom steps, at least one.
func wheelSteps(delta float32) int {
	s := int(math.Round(float64(delta)))
	if s == 0 {
		if delta > 0 {
			return 1
		}
		return -1
	}
	return s
}

func (g *Graph) cursorFor(inside bool) Cursor {
	if m := g.drag.DraggedMarker(); m != nil {
		switch m.Constraint {
		case DragXOnly:
			return CursorHResize
		case DragYOnly:
			return CursorVResize
		}
		return CursorMove
	}
	if g.drag.IsPanning() {
		return CursorMove
	}
	if !inside {
		return CursorArrow
	}
	if g.hovered != nil && g.hovered.Draggable {
		return CursorHand
	}
	return CursorCrosshair
}

// Redraw builds the frame for the current state. The frame and its lists
// stay valid until the next Redraw.
func (g *Graph) Redraw() (*Frame, error) {
	if err := g.view.Validate(); err != nil {
		return nil, fmt.Errorf("redraw: %w", err)
	}

	f := &g.frame
	f.Release()
	f.Width, f.Height = g.width, g.height
	f.Clear = g.style.BackgroundColor
	display := f.Display()
	plot := g.view.Pixel
	s := &g.style

	back := f.NewScreenLayer(Rect{})
	back.AddRect(plot.X, plot.Y, plot.W, plot.H, s.plotBg())
	back.PushClipRect(plot.X, plot.Y, plot.X+plot.W, plot.Y+plot.H)
	if g.xBar != nil {
		g.xBar.DrawGrid(back, g.view, s)
	}
	if g.yBar != nil {
		g.yBar.DrawGrid(back, g.view, s)
	}
	back.PopClipRect()

	for _, l := range g.lines {
		if l.Hidden || l.Len() < 2 {
			continue
		}
		cl := g.cache.Get(l, g.view)
		if cl.List.Empty() {
			continue
		}
		f.AddLayer(Layer{
			List:       cl.List,
			Projection: g.view.ProjectionAt(display, cl.Anchor),
			Space:      SpaceLogical,
			Clip:       plot,
		})
	}

	over := f.NewScreenLayer(plot)
	for _, m := range g.markers {
		m.draw(over, g.view, s, m == g.hovered)
	}
	g.drawCrosshair(over)
	g.drawLegend(over)

	axes := f.NewScreenLayer(Rect{})
	if s.BorderColor != 0 {
		axes.AddRectOutline(plot.X, plot.Y, plot.W, plot.H, s.BorderColor, 1)
	}
	if g.xBar != nil {
		g.xBar.Draw(axes, g.view, s)
	}
	if g.yBar != nil {
		g.yBar.Draw(axes, g.view, s)
	}

	f.Finalize()
	return f, nil
}

func (g *Graph) drawCrosshair(dl *DrawList) {
	s := &g.style
	if s.CrosshairColor == 0 || !g.mouseInside || g.drag.Active {
		return
	}
	plot := g.view.Pixel
	dl.AddLine(g.mouse.X, plot.Y, g.mouse.X, plot.Y+plot.H, s.CrosshairColor, 1)
	dl.AddLine(plot.X, g.mouse.Y, plot.X+plot.W, g.mouse.Y, s.CrosshairColor, 1)

	p := g.view.ToLogical(g.mouse)
	label := strconv.FormatFloat(p.X, 'g', 6, 64) + ", " + strconv.FormatFloat(p.Y, 'g', 6, 64)
	size := MeasureText(label, s.LabelScale)
	x := plot.X + 4
	y := plot.Y + plot.H - size.Y - 4
	dl.AddRect(x-2, y-2, size.X+4, size.Y+4, s.LegendBgColor)
	dl.AddText(x, y, label, s.LabelColor, s.LabelScale)
}

func (g *Graph) drawLegend(dl *DrawList) {
	s := &g.style
	if !s.ShowLegend {
		return
	}
	lineH := GlyphHeight*s.LabelScale + 4
	swatch := GlyphHeight * s.LabelScale * 2

	var rows []*Polyline
	var width float32
	for _, l := range g.lines {
		if l.Hidden || l.Label == "" {
			continue
		}
		rows = append(rows, l)
		width = max(width, MeasureText(l.Label, s.LabelScale).X)
	}
	if len(rows) == 0 {
		return
	}

	plot := g.view.Pixel
	w := swatch + 6 + width + 8
	h := float32(len(rows))*lineH + 4
	x := plot.X + plot.W - w - 6
	y := plot.Y + 6
	dl.AddRect(x, y, w, h, s.LegendBgColor)
	for i, l := range rows {
		ry := y + 2 + float32(i)*lineH
		dl.AddLine(x+4, ry+lineH/2, x+4+swatch, ry+lineH/2, l.Color, max(l.Thickness, 2))
		dl.AddText(x+4+swatch+6, ry+2, l.Label, s.LabelColor, s.LabelScale)
	}
}
