// Package opengl provides an OpenGL 4.1 backend for the plot package.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/plot"
)

const vertexSize = int(unsafe.Sizeof(plot.Vertex{}))

// Renderer implements plot.Renderer using OpenGL.
type Renderer struct {
	program  uint32
	vao      uint32
	vbo, ebo uint32
	uniforms struct {
		projection int32
		atlas      int32
		textured   int32
	}
	width, height int

	// textures maps draw-list texture IDs to GL texture names.
	textures map[uint32]uint32
}

// Layer vertices arrive in whatever space the layer's projection expects;
// the projection takes them to clip space.
const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 inPos;
layout (location = 1) in vec2 inUV;
layout (location = 2) in vec4 inColor;

uniform mat4 uProjection;

out vec2 vUV;
out vec4 vColor;

void main() {
    vUV = inUV;
    vColor = inColor;
    gl_Position = uProjection * vec4(inPos, 0.0, 1.0);
}
` + "\x00"

// The glyph atlas is alpha-only: its red channel is coverage, tinted by the
// vertex color.
const fragmentShaderSource = `
#version 410 core
in vec2 vUV;
in vec4 vColor;

uniform sampler2D uAtlas;
uniform bool uTextured;

out vec4 outColor;

void main() {
    float coverage = uTextured ? texture(uAtlas, vUV).r : 1.0;
    outColor = vec4(vColor.rgb, vColor.a * coverage);
}
` + "\x00"

// vertexAttribs describes plot.Vertex to the vertex array.
var vertexAttribs = []struct {
	size       int32
	xtype      uint32
	normalized bool
	offset     uintptr
}{
	{2, gl.FLOAT, false, unsafe.Offsetof(plot.Vertex{}.Pos)},
	{2, gl.FLOAT, false, unsafe.Offsetof(plot.Vertex{}.TexCoord)},
	{4, gl.UNSIGNED_BYTE, true, unsafe.Offsetof(plot.Vertex{}.Color)},
}

// NewRenderer creates a new OpenGL plot renderer. A GL context must be
// current on the calling thread.
func NewRenderer(width, height int) (*Renderer, error) {
	program, err := linkProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("plot shader: %w", err)
	}

	r := &Renderer{
		program:  program,
		width:    width,
		height:   height,
		textures: make(map[uint32]uint32),
	}
	r.uniforms.projection = gl.GetUniformLocation(program, gl.Str("uProjection\x00"))
	r.uniforms.atlas = gl.GetUniformLocation(program, gl.Str("uAtlas\x00"))
	r.uniforms.textured = gl.GetUniformLocation(program, gl.Str("uTextured\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	for i, a := range vertexAttribs {
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, a.xtype, a.normalized, int32(vertexSize), a.offset)
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)

	r.textures[plot.FontTexture] = uploadAtlas()
	return r, nil
}

// Resize updates the target size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// Render clears the viewport and draws every layer of f. The caller's GL
// state is restored afterwards so the graph can share a context.
func (r *Renderer) Render(f *plot.Frame) error {
	if f == nil {
		return nil
	}
	if f.Width != r.width || f.Height != r.height {
		r.Resize(f.Width, f.Height)
	}

	saved := captureState()

	cr, cg, cb, ca := plot.UnpackRGBA(f.Clear)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(float32(cr)/255, float32(cg)/255, float32(cb)/255, float32(ca)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.uniforms.atlas, 0)
	gl.BindVertexArray(r.vao)

	for i := range f.Layers {
		r.drawLayer(&f.Layers[i])
	}

	gl.BindVertexArray(0)
	saved.restore()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) drawLayer(layer *plot.Layer) {
	dl := layer.List
	if dl == nil || len(dl.VtxBuffer) == 0 || len(dl.IdxBuffer) == 0 {
		return
	}

	gl.UniformMatrix4fv(r.uniforms.projection, 1, false, &layer.Projection[0])

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(dl.VtxBuffer)*vertexSize, gl.Ptr(dl.VtxBuffer), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(dl.IdxBuffer)*2, gl.Ptr(dl.IdxBuffer), gl.STREAM_DRAW)

	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 || !r.scissor(layer.ClipFor(cmd)) {
			continue
		}

		tex, textured := r.textures[cmd.TextureID]
		textured = textured && cmd.TextureID != 0
		if textured {
			gl.BindTexture(gl.TEXTURE_2D, tex)
		}
		gl.Uniform1i(r.uniforms.textured, boolInt(textured))

		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElemCount), gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*2, int32(cmd.VertexOffset))
	}
}

// scissor sets the scissor box from a top-left pixel clip rectangle. It
// reports false when nothing of the clip lies on the target.
func (r *Renderer) scissor(clip [4]float32) bool {
	x1, y1 := max(clip[0], 0), max(clip[1], 0)
	x2, y2 := min(clip[2], float32(r.width)), min(clip[3], float32(r.height))
	if x2 <= x1 || y2 <= y1 {
		return false
	}
	// GL counts rows from the bottom.
	gl.Scissor(int32(x1), int32(float32(r.height)-y2), int32(x2-x1), int32(y2-y1))
	return true
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	for id, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, id)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	*r = Renderer{}
}

// glState is the slice of GL state Render changes.
type glState struct {
	program         int32
	blendSrc        int32
	blendDst        int32
	scissorBox      [4]int32
	blend, depth    bool
	cull, scissorOn bool
}

func captureState() glState {
	var s glState
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.BLEND_SRC_ALPHA, &s.blendSrc)
	gl.GetIntegerv(gl.BLEND_DST_ALPHA, &s.blendDst)
	gl.GetIntegerv(gl.SCISSOR_BOX, &s.scissorBox[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.depth = gl.IsEnabled(gl.DEPTH_TEST)
	s.cull = gl.IsEnabled(gl.CULL_FACE)
	s.scissorOn = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s glState) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BlendFunc(uint32(s.blendSrc), uint32(s.blendDst))
	setEnabled(gl.BLEND, s.blend)
	setEnabled(gl.DEPTH_TEST, s.depth)
	setEnabled(gl.CULL_FACE, s.cull)
	setEnabled(gl.SCISSOR_TEST, s.scissorOn)
	gl.Scissor(s.scissorBox[0], s.scissorBox[1], s.scissorBox[2], s.scissorBox[3])
}

func setEnabled(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// uploadAtlas uploads the built-in glyph atlas as a single-channel texture.
func uploadAtlas() uint32 {
	w, h, alpha := plot.FontAtlas()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(w), int32(h), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(alpha))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// linkProgram compiles both stages and links them.
func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex stage: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment stage: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return shader, nil
}

// infoLog reads the info log of a shader or program object.
func infoLog(obj uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	param(obj, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n+1)
	read(obj, n, nil, &buf[0])
	return gl.GoStr(&buf[0])
}
