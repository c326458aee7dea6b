// Package raster renders plot frames in software with gogpu/gg, for
// snapshots and headless use.
//
// Geometry comes from the frame's untextured commands. Labels are drawn
// from the draw lists' text runs with Go Regular instead of the bitmap
// atlas, so textured commands are skipped.
package raster

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-theft-auto/plot"
)

// Renderer implements plot.Renderer into an in-memory image.
type Renderer struct {
	dc     *gg.Context
	source *text.FontSource
	faces  map[float32]text.Face

	width, height int
	resizeErr     error // last failed Resize, cleared by a successful one

	poly []vec // scratch polygon for clipping
}

// NewRenderer creates a renderer with a width×height canvas.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: %w", plot.ErrZeroDimension)
	}
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Renderer{
		dc:     gg.NewContext(width, height),
		source: source,
		faces:  make(map[float32]text.Face),
		width:  width,
		height: height,
	}, nil
}

// Resize changes the canvas size. A failed resize keeps the old canvas and
// is reported by the next Render.
func (r *Renderer) Resize(width, height int) {
	if err := r.resize(width, height); err != nil {
		r.resizeErr = err
		return
	}
	r.resizeErr = nil
}

func (r *Renderer) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize raster to %dx%d: %w", width, height, plot.ErrZeroDimension)
	}
	if width == r.width && height == r.height {
		return nil
	}
	if err := r.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize raster to %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

// Render draws f onto the canvas, replacing its previous content. It fails
// without drawing when the canvas cannot take the frame's size.
func (r *Renderer) Render(f *plot.Frame) error {
	if f == nil {
		return nil
	}
	if f.Width != r.width || f.Height != r.height {
		if err := r.resize(f.Width, f.Height); err != nil {
			return err
		}
		r.resizeErr = nil
	}
	if r.resizeErr != nil {
		return r.resizeErr
	}

	r.dc.ClearWithColor(rgba(f.Clear))
	for i := range f.Layers {
		if err := r.renderLayer(&f.Layers[i]); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

func (r *Renderer) renderLayer(layer *plot.Layer) error {
	dl := layer.List
	if dl == nil {
		return nil
	}

	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 || cmd.TextureID != 0 {
			continue
		}
		clip := layer.ClipFor(cmd)
		clip[0], clip[1] = max(clip[0], 0), max(clip[1], 0)
		clip[2], clip[3] = min(clip[2], float32(r.width)), min(clip[3], float32(r.height))
		if clip[2] <= clip[0] || clip[3] <= clip[1] {
			continue
		}

		// Triangles of one color are filled as a single non-zero path, so
		// overlapping segment joints do not double their alpha.
		var color uint32
		pending := false
		var err error
		dl.Triangles(cmd, func(a, b, c plot.Vertex) {
			if err != nil {
				return
			}
			if pending && a.Color != color {
				err = r.fill(color)
				pending = false
			}
			if r.addTriangle(layer, a, b, c, clip) {
				color = a.Color
				pending = true
			}
		})
		if err != nil {
			return err
		}
		if pending {
			if err := r.fill(color); err != nil {
				return err
			}
		}
	}

	for _, run := range dl.Texts {
		r.drawText(layer, run)
	}
	return nil
}

// addTriangle projects and clips one triangle and appends it to the current
// path with a consistent winding. It reports whether anything was added.
func (r *Renderer) addTriangle(layer *plot.Layer, a, b, c plot.Vertex, clip [4]float32) bool {
	r.poly = r.poly[:0]
	for _, v := range [3]plot.Vertex{a, b, c} {
		x, y := layer.ToPixels(v.Pos[0], v.Pos[1], r.width, r.height)
		r.poly = append(r.poly, vec{float64(x), float64(y)})
	}
	if signedArea(r.poly) < 0 {
		r.poly[1], r.poly[2] = r.poly[2], r.poly[1]
	}
	r.poly = clipPolygon(r.poly, clip)
	if len(r.poly) < 3 {
		return false
	}

	r.dc.MoveTo(r.poly[0].x, r.poly[0].y)
	for _, p := range r.poly[1:] {
		r.dc.LineTo(p.x, p.y)
	}
	r.dc.ClosePath()
	return true
}

func (r *Renderer) fill(color uint32) error {
	r.dc.SetFillRule(gg.FillRuleNonZero)
	cr, cg, cb, ca := plot.UnpackRGBA(color)
	r.dc.SetRGBA(float64(cr)/255, float64(cg)/255, float64(cb)/255, float64(ca)/255)
	if err := r.dc.Fill(); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}

// drawText draws a run with its top-left corner at the run position.
// Runs starting outside the layer clip are dropped.
func (r *Renderer) drawText(layer *plot.Layer, run plot.TextRun) {
	x, y := layer.ToPixels(run.X, run.Y, r.width, r.height)
	if !layer.Clip.Empty() && !layer.Clip.Contains(plot.Vec2{X: x, Y: y}) {
		return
	}
	face := r.face(run.Scale)
	r.dc.SetFont(face)
	cr, cg, cb, ca := plot.UnpackRGBA(run.Color)
	r.dc.SetRGBA(float64(cr)/255, float64(cg)/255, float64(cb)/255, float64(ca)/255)
	r.dc.DrawString(run.Text, float64(x), float64(y)+face.Metrics().Ascent)
}

// face returns a Go Regular face whose line fits a glyph cell at scale.
func (r *Renderer) face(scale float32) text.Face {
	if scale <= 0 {
		scale = 1
	}
	if f, ok := r.faces[scale]; ok {
		return f
	}
	f := r.source.Face(float64(plot.GlyphHeight * scale))
	r.faces[scale] = f
	return f
}

// Image returns the rendered image.
func (r *Renderer) Image() image.Image {
	return r.dc.Image()
}

// SavePNG writes the rendered image to path.
func (r *Renderer) SavePNG(path string) error {
	return r.dc.SavePNG(path)
}

// EncodePNG writes the rendered image as PNG to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (r *Renderer) Close() error {
	return r.dc.Close()
}

func rgba(c uint32) gg.RGBA {
	r, g, b, a := plot.UnpackRGBA(c)
	return gg.RGBA2(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}
