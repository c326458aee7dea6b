package plot

import (
	"math"
	"slices"
	"sync"
)

// drawListPool provides efficient reuse of DrawList buffers.
// Overlay lists are rebuilt on every redraw and line lists on every
// re-tessellation, so both come from here.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// maxCmdVertices is the most vertices one command can address with uint16 indices.
const maxCmdVertices = math.MaxUint16

// TextRun records a label drawn with AddText. GPU backends draw the glyph
// quads; backends without the font atlas draw the run with their own font.
type TextRun struct {
	X, Y  float32 // Top-left position in the list's space
	Text  string
	Color uint32
	Scale float32
}

// DrawList accumulates draw commands for a layer.
// It batches primitives by texture to minimize GPU state changes.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []uint16  // Index data
	Texts     []TextRun // Labels, in drawing order

	clipStack    [][4]float32 // Clip rectangle stack
	currentClip  [4]float32   // Current clip rectangle
	textureID    uint32       // Current texture for batching
	cmdOffset    uint32       // Vertex offset for current command
	idxCmdOffset uint32       // Index offset for current command
}

// Clear resets the DrawList.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.Texts = dl.Texts[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9} // Very large default clip
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// Empty reports whether the list holds no geometry and no text.
func (dl *DrawList) Empty() bool {
	return len(dl.IdxBuffer) == 0 && len(dl.Texts) == 0
}

// PushClipRect pushes a new clip rectangle (in pixels) onto the stack.
// All subsequent primitives will be clipped to this rectangle.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	dl.currentClip = [4]float32{x1, y1, x2, y2}
	dl.splitDraw()
}

// PopClipRect pops the clip rectangle stack.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// ClipRect returns the current clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 {
	return dl.currentClip
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

// closeCmd sets the element count of the open command.
func (dl *DrawList) closeCmd() {
	if n := len(dl.CmdBuffer); n > 0 {
		dl.CmdBuffer[n-1].ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
}

// splitDraw closes the open command and starts one with the current clip
// and texture.
func (dl *DrawList) splitDraw() {
	dl.closeCmd()
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addVertices adds vertices and returns the starting index relative to the
// current command. A new command is started when uint16 indices would overflow.
func (dl *DrawList) addVertices(verts ...Vertex) uint16 {
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.cmdOffset)+len(verts) > maxCmdVertices {
		dl.splitDraw()
	}
	startIdx := uint16(len(dl.VtxBuffer) - int(dl.cmdOffset))
	dl.VtxBuffer = append(dl.VtxBuffer, verts...)
	return startIdx
}

// addIndices adds indices (relative to current command's vertex offset).
func (dl *DrawList) addIndices(indices ...uint16) {
	dl.IdxBuffer = append(dl.IdxBuffer, indices...)
}

// addQuad adds a quad from four corners in winding order.
func (dl *DrawList) addQuad(x0, y0, x1, y1, x2, y2, x3, y3 float32, color uint32) {
	dl.addQuadVerts([4]Vertex{
		{Pos: [2]float32{x0, y0}, Color: color},
		{Pos: [2]float32{x1, y1}, Color: color},
		{Pos: [2]float32{x2, y2}, Color: color},
		{Pos: [2]float32{x3, y3}, Color: color},
	})
}

// addQuadVerts adds a quad as two triangles sharing the 0-2 diagonal.
func (dl *DrawList) addQuadVerts(v [4]Vertex) {
	idx := dl.addVertices(v[:]...)
	dl.addIndices(idx, idx+1, idx+2, idx, idx+2, idx+3)
}

func invisible(color uint32) bool { return color&0xFF000000 == 0 }

// AddRect draws a filled rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if invisible(color) {
		return
	}
	dl.addQuad(x, y, x+w, y, x+w, y+h, x, y+h, color)
}

// AddRectOutline draws a rectangle outline.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddLine draws a line between two points as a quad of the given thickness.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	dl.AddLineScaled(x1, y1, x2, y2, color, thickness, 1, 1)
}

// AddLineScaled draws a line whose thickness is given in pixels while its
// endpoints live in a space scaled by (sx, sy) pixels per unit. Logical-space
// line caches use this to get constant on-screen thickness.
func (dl *DrawList) AddLineScaled(x1, y1, x2, y2 float32, color uint32, thickness, sx, sy float32) {
	if invisible(color) || sx == 0 || sy == 0 {
		return
	}

	// Work out the perpendicular in pixel space, then scale back.
	dx := (x2 - x1) * sx
	dy := (y2 - y1) * sy
	inv := float32(1)
	if dx != 0 || dy != 0 {
		inv = float32(1 / math.Sqrt(float64(dx*dx+dy*dy)))
	}
	nx := -dy * inv * thickness * 0.5 / sx
	ny := dx * inv * thickness * 0.5 / sy

	dl.addQuad(x1+nx, y1+ny, x2+nx, y2+ny, x2-nx, y2-ny, x1-nx, y1-ny, color)
}

// AddPolyline draws connected segments through points. NaN and infinite
// coordinates break the line into separate runs.
func (dl *DrawList) AddPolyline(points [][2]float32, color uint32, thickness float32) {
	dl.AddPolylineScaled(points, color, thickness, 1, 1)
}

// AddPolylineScaled is AddPolyline with AddLineScaled semantics.
func (dl *DrawList) AddPolylineScaled(points [][2]float32, color uint32, thickness, sx, sy float32) {
	if len(points) < 2 {
		return
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if !finite32(a[0]) || !finite32(a[1]) || !finite32(b[0]) || !finite32(b[1]) {
			continue
		}
		dl.AddLineScaled(a[0], a[1], b[0], b[1], color, thickness, sx, sy)
	}
}

// AddTriangle draws a filled triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if invisible(color) {
		return
	}
	idx := dl.addVertices(
		Vertex{Pos: [2]float32{x1, y1}, Color: color},
		Vertex{Pos: [2]float32{x2, y2}, Color: color},
		Vertex{Pos: [2]float32{x3, y3}, Color: color},
	)
	dl.addIndices(idx, idx+1, idx+2)
}

// AddText draws text with the built-in bitmap font at (x, y) (top-left).
// scale is typically 1.0 for the native 8x8 glyph size.
func (dl *DrawList) AddText(x, y float32, text string, color uint32, scale float32) {
	if invisible(color) || len(text) == 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	dl.Texts = append(dl.Texts, TextRun{X: x, Y: y, Text: text, Color: color, Scale: scale})

	prevTex := dl.textureID
	dl.SetTexture(FontTexture)

	cw, ch := GlyphWidth*scale, GlyphHeight*scale
	px := x
	for _, r := range text {
		u0, v0, u1, v1 := glyphUV(r)
		dl.addQuadVerts([4]Vertex{
			{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			{Pos: [2]float32{px + cw, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			{Pos: [2]float32{px + cw, y + ch}, TexCoord: [2]float32{u1, v1}, Color: color},
			{Pos: [2]float32{px, y + ch}, TexCoord: [2]float32{u0, v1}, Color: color},
		})
		px += cw
	}
	dl.SetTexture(prevTex)
}

// Finalize closes the open command and drops empty ones. Call it after the
// last primitive; calling it again is harmless.
func (dl *DrawList) Finalize() {
	if n := len(dl.CmdBuffer); n > 0 && dl.CmdBuffer[n-1].IndexOffset == dl.idxCmdOffset {
		dl.closeCmd()
	}
	dl.CmdBuffer = slices.DeleteFunc(dl.CmdBuffer, func(cmd DrawCmd) bool {
		return cmd.ElemCount == 0
	})
}

// Triangles calls fn for every triangle of cmd with absolute vertices.
// Software backends use it to walk the index buffer.
func (dl *DrawList) Triangles(cmd DrawCmd, fn func(a, b, c Vertex)) {
	end := cmd.IndexOffset + cmd.ElemCount
	for i := cmd.IndexOffset; i+2 < end && i+2 < uint32(len(dl.IdxBuffer)); i += 3 {
		a := dl.VtxBuffer[cmd.VertexOffset+uint32(dl.IdxBuffer[i])]
		b := dl.VtxBuffer[cmd.VertexOffset+uint32(dl.IdxBuffer[i+1])]
		c := dl.VtxBuffer[cmd.VertexOffset+uint32(dl.IdxBuffer[i+2])]
		fn(a, b, c)
	}
}

func finite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
