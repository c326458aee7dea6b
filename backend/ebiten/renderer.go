// Package ebiten draws plot frames with Ebitengine and adapts its input.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/plot"
)

// Renderer implements plot.Renderer by submitting each draw command with
// DrawTriangles32. Untextured commands sample a white pixel, so vertex
// colors pass through unchanged.
type Renderer struct {
	target *ebiten.Image
	white  *ebiten.Image
	font   *ebiten.Image
	fontW  float32
	fontH  float32

	width, height int

	verts []ebiten.Vertex
	inds  []uint32
}

// NewRenderer creates a renderer. Set the target with SetTarget before
// rendering.
func NewRenderer() *Renderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	w, h, alpha := plot.FontAtlas()
	pix := make([]byte, 4*len(alpha))
	for i, a := range alpha {
		// Premultiplied white.
		pix[4*i+0] = a
		pix[4*i+1] = a
		pix[4*i+2] = a
		pix[4*i+3] = a
	}
	font := ebiten.NewImage(w, h)
	font.WritePixels(pix)

	return &Renderer{
		white: white,
		font:  font,
		fontW: float32(w),
		fontH: float32(h),
	}
}

// SetTarget sets the image the next Render draws into, usually the screen
// passed to Game.Draw.
func (r *Renderer) SetTarget(target *ebiten.Image) {
	r.target = target
	if target != nil {
		b := target.Bounds()
		r.width, r.height = b.Dx(), b.Dy()
	}
}

// Resize records the logical screen size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws f into the current target.
func (r *Renderer) Render(f *plot.Frame) error {
	if r.target == nil || f == nil {
		return nil
	}
	r.target.Fill(colorOf(f.Clear))

	for i := range f.Layers {
		r.renderLayer(&f.Layers[i], f.Width, f.Height)
	}
	return nil
}

func (r *Renderer) renderLayer(layer *plot.Layer, width, height int) {
	dl := layer.List
	if dl == nil || len(dl.IdxBuffer) == 0 {
		return
	}

	// Project every vertex once; commands index into the shared slice.
	r.verts = r.verts[:0]
	for _, v := range dl.VtxBuffer {
		x, y := layer.ToPixels(v.Pos[0], v.Pos[1], width, height)
		cr, cg, cb, ca := plot.UnpackRGBA(v.Color)
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			ColorR: float32(cr) / 255,
			ColorG: float32(cg) / 255,
			ColorB: float32(cb) / 255,
			ColorA: float32(ca) / 255,
		})
	}

	bounds := r.target.Bounds()
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 {
			continue
		}
		clip := layer.ClipFor(cmd)
		rect := image.Rect(int(clip[0]), int(clip[1]), int(clip[2]), int(clip[3])).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		src := r.white
		textured := cmd.TextureID == plot.FontTexture
		if textured {
			src = r.font
		}

		r.inds = r.inds[:0]
		end := cmd.IndexOffset + cmd.ElemCount
		for _, idx := range dl.IdxBuffer[cmd.IndexOffset:end] {
			vi := cmd.VertexOffset + uint32(idx)
			r.setSource(vi, dl.VtxBuffer[vi].TexCoord, textured)
			r.inds = append(r.inds, vi)
		}

		dst := r.target.SubImage(rect).(*ebiten.Image)
		var triOp ebiten.DrawTrianglesOptions
		triOp.AntiAlias = !textured
		dst.DrawTriangles32(r.verts, r.inds, src, &triOp)
	}
}

// setSource fills in the source coordinates of vertex vi for the image
// the command samples.
func (r *Renderer) setSource(vi uint32, uv [2]float32, textured bool) {
	v := &r.verts[vi]
	if textured {
		v.SrcX = uv[0] * r.fontW
		v.SrcY = uv[1] * r.fontH
		return
	}
	v.SrcX, v.SrcY = 0.5, 0.5
}
