package plot

// Space tells a renderer what the vertex positions of a layer are.
type Space int

const (
	SpaceScreen  Space = iota // Pixels, top-left origin
	SpaceLogical              // Logical units relative to the layer anchor
)

// Layer is one draw list with the projection that maps its vertices to
// normalized device coordinates.
type Layer struct {
	List       *DrawList
	Projection Matrix
	Space      Space

	// Clip is a pixel rectangle intersected with each command's clip.
	// Logical layers rely on it since their commands carry no pixel clip.
	// An empty Clip means the whole frame.
	Clip Rect

	owned bool // List is released with the frame
}

// ClipFor returns the effective pixel clip rectangle (x1, y1, x2, y2) for
// cmd in this layer.
func (l *Layer) ClipFor(cmd DrawCmd) [4]float32 {
	c := cmd.ClipRect
	if l.Clip.Empty() {
		return c
	}
	return [4]float32{
		max(c[0], l.Clip.X),
		max(c[1], l.Clip.Y),
		min(c[2], l.Clip.X+l.Clip.W),
		min(c[3], l.Clip.Y+l.Clip.H),
	}
}

// ToPixels maps a vertex position of this layer to frame pixels.
func (l *Layer) ToPixels(x, y float32, width, height int) (float32, float32) {
	return l.Projection.ToPixels(x, y, width, height)
}

// Frame is everything a renderer needs to draw one graph image.
// Layers are drawn in order.
type Frame struct {
	Width, Height int
	Clear         uint32
	Layers        []Layer
}

// Display returns the frame size as a vector.
func (f *Frame) Display() Vec2 {
	return Vec2{X: float32(f.Width), Y: float32(f.Height)}
}

// NewScreenLayer appends a pooled screen-space list and returns it.
// The list is released with the frame.
func (f *Frame) NewScreenLayer(clip Rect) *DrawList {
	dl := AcquireDrawList()
	f.Layers = append(f.Layers, Layer{
		List:       dl,
		Projection: ScreenProjection(f.Display()),
		Space:      SpaceScreen,
		Clip:       clip,
		owned:      true,
	})
	return dl
}

// AddLayer appends a list the frame does not own, such as a cached line.
func (f *Frame) AddLayer(l Layer) {
	l.owned = false
	f.Layers = append(f.Layers, l)
}

// Finalize finalizes every owned list.
func (f *Frame) Finalize() {
	for i := range f.Layers {
		if f.Layers[i].owned {
			f.Layers[i].List.Finalize()
		}
	}
}

// Release returns the lists the frame owns to the pool. Cached line lists
// belong to the graph and are left alone.
func (f *Frame) Release() {
	for i := range f.Layers {
		if f.Layers[i].owned {
			ReleaseDrawList(f.Layers[i].List)
		}
		f.Layers[i].List = nil
	}
	f.Layers = f.Layers[:0]
}

// Renderer draws frames to a backend surface.
type Renderer interface {
	Render(f *Frame) error
	Resize(width, height int)
}
