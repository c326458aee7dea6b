// Package braille renders plot frames as Unicode braille text for
// terminals. Every character cell holds a 2x4 grid of dots, so a frame of
// width×height pixels occupies width/2 columns and height/4 rows.
//
// Thin triangles (lines, ticks, borders) become dots. Wide triangles
// (area fills) tint the cell background instead, since a solid braille
// block would hide everything drawn under it. Text runs are written into
// cells directly; textured glyph quads are skipped.
package braille

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/plot"
)

const (
	CellWidth  = 2 // Pixels per cell horizontally
	CellHeight = 4 // Pixels per cell vertically
)

// fillAltitude is the smallest triangle altitude, in pixels, treated as an
// area fill rather than a stroke.
const fillAltitude = CellHeight

// Renderer implements plot.Renderer into a grid of character cells.
type Renderer struct {
	cols, rows int
	clear      uint32

	dots      []uint32 // Per pixel color, 0 = no dot
	bg        []uint32 // Per cell background, 0 = clear color
	text      []rune   // Per cell text, 0 = none
	textColor []uint32

	styles map[[2]uint32]lipgloss.Style
}

// NewRenderer creates a renderer with cols×rows cells.
func NewRenderer(cols, rows int) *Renderer {
	r := &Renderer{styles: make(map[[2]uint32]lipgloss.Style)}
	r.resizeCells(cols, rows)
	return r
}

// PixelSize returns the frame size that fills cols×rows cells.
func PixelSize(cols, rows int) (width, height int) {
	return cols * CellWidth, rows * CellHeight
}

// CellCenter returns the pixel at the middle of a cell. Hosts use it to
// turn terminal mouse coordinates into graph input.
func CellCenter(col, row int) plot.Vec2 {
	return plot.Vec2{X: float32(col*CellWidth) + CellWidth/2, Y: float32(row*CellHeight) + CellHeight/2}
}

// Size returns the grid size in cells.
func (r *Renderer) Size() (cols, rows int) { return r.cols, r.rows }

// Resize sets the grid from a frame size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.resizeCells((width+CellWidth-1)/CellWidth, (height+CellHeight-1)/CellHeight)
}

func (r *Renderer) resizeCells(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == r.cols && rows == r.rows && r.dots != nil {
		return
	}
	r.cols, r.rows = cols, rows
	n := cols * rows
	r.dots = make([]uint32, n*CellWidth*CellHeight)
	r.bg = make([]uint32, n)
	r.text = make([]rune, n)
	r.textColor = make([]uint32, n)
}

func (r *Renderer) reset() {
	clear(r.dots)
	clear(r.bg)
	clear(r.text)
	clear(r.textColor)
}

// Render rasterizes f into the cell grid.
func (r *Renderer) Render(f *plot.Frame) error {
	if f == nil {
		return nil
	}
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("braille: invalid frame size %dx%d", f.Width, f.Height)
	}
	r.Resize(f.Width, f.Height)
	r.reset()
	r.clear = f.Clear

	for i := range f.Layers {
		r.renderLayer(&f.Layers[i], f.Width, f.Height)
	}
	return nil
}

func (r *Renderer) renderLayer(layer *plot.Layer, width, height int) {
	dl := layer.List
	if dl == nil {
		return
	}
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 || cmd.TextureID != 0 {
			continue
		}
		clip := layer.ClipFor(cmd)
		dl.Triangles(cmd, func(a, b, c plot.Vertex) {
			var t triangle
			for i, v := range [3]plot.Vertex{a, b, c} {
				x, y := layer.ToPixels(v.Pos[0], v.Pos[1], width, height)
				t.p[i] = point{float64(x), float64(y)}
			}
			if _, _, _, alpha := plot.UnpackRGBA(a.Color); alpha == 0 {
				return
			}
			if t.altitude() >= fillAltitude {
				r.fillCells(&t, a.Color, clip)
			} else {
				r.setDots(&t, a.Color, clip)
			}
		})
	}
	for _, run := range dl.Texts {
		r.drawText(layer, run, width, height)
	}
}

// setDots sets every pixel whose top-left corner lies in t.
func (r *Renderer) setDots(t *triangle, color uint32, clip [4]float32) {
	w, h := r.cols*CellWidth, r.rows*CellHeight
	x0, y0, x1, y1 := t.bounds()
	x0 = max(x0, math.Ceil(float64(clip[0])))
	y0 = max(y0, math.Ceil(float64(clip[1])))
	x1 = min(x1, float64(clip[2])-1e-3, float64(w-1))
	y1 = min(y1, float64(clip[3])-1e-3, float64(h-1))
	for y := math.Max(math.Ceil(y0), 0); y <= y1; y++ {
		for x := math.Max(math.Ceil(x0), 0); x <= x1; x++ {
			if t.contains(point{x, y}) {
				r.dots[int(y)*w+int(x)] = color
			}
		}
	}
}

// fillCells tints the background of every cell whose center lies in t.
// Opaque fills also erase the cell's dots and text.
func (r *Renderer) fillCells(t *triangle, color uint32, clip [4]float32) {
	_, _, _, alpha := plot.UnpackRGBA(color)
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			c := CellCenter(col, row)
			if c.X < clip[0] || c.X >= clip[2] || c.Y < clip[1] || c.Y >= clip[3] {
				continue
			}
			if !t.contains(point{float64(c.X), float64(c.Y)}) {
				continue
			}
			i := row*r.cols + col
			if alpha == 255 {
				r.bg[i] = color
				r.clearCell(col, row)
				continue
			}
			under := r.bg[i]
			if under == 0 {
				under = r.clear
			}
			r.bg[i] = blend(color, under)
		}
	}
}

func (r *Renderer) clearCell(col, row int) {
	w := r.cols * CellWidth
	for dy := 0; dy < CellHeight; dy++ {
		base := (row*CellHeight+dy)*w + col*CellWidth
		clear(r.dots[base : base+CellWidth])
	}
	r.text[row*r.cols+col] = 0
}

// drawText writes a run into the cells starting at its top-left corner.
// Runs starting outside the layer clip are dropped.
func (r *Renderer) drawText(layer *plot.Layer, run plot.TextRun, width, height int) {
	x, y := layer.ToPixels(run.X, run.Y, width, height)
	if !layer.Clip.Empty() && !layer.Clip.Contains(plot.Vec2{X: x, Y: y}) {
		return
	}
	col := int(math.Floor(float64(x) / CellWidth))
	row := int(math.Floor(float64(y) / CellHeight))
	if row < 0 || row >= r.rows {
		return
	}
	for _, ch := range run.Text {
		if col >= r.cols {
			break
		}
		if col >= 0 {
			r.text[row*r.cols+col] = ch
			r.textColor[row*r.cols+col] = run.Color
		}
		col++
	}
}

// Cell returns what a cell shows: its character, foreground color and
// background color (0 = clear color).
func (r *Renderer) Cell(col, row int) (ch rune, fg, bg uint32) {
	i := row*r.cols + col
	if t := r.text[i]; t != 0 {
		return t, r.textColor[i], r.bg[i]
	}
	mask, fg := r.cellDots(col, row)
	if mask == 0 {
		return ' ', 0, r.bg[i]
	}
	return rune(0x2800 + int(mask)), fg, r.bg[i]
}

// cellDots returns the braille mask of a cell and its most frequent dot color.
func (r *Renderer) cellDots(col, row int) (mask uint8, fg uint32) {
	w := r.cols * CellWidth
	var colors [CellWidth * CellHeight]uint32
	var counts [CellWidth * CellHeight]int
	best := 0
	for dy := 0; dy < CellHeight; dy++ {
		for dx := 0; dx < CellWidth; dx++ {
			c := r.dots[(row*CellHeight+dy)*w+col*CellWidth+dx]
			if c == 0 {
				continue
			}
			mask |= dotBit(dx, dy)
			for k := range colors {
				if colors[k] == 0 {
					colors[k] = c
				}
				if colors[k] == c {
					counts[k]++
					if counts[k] > best {
						best, fg = counts[k], c
					}
					break
				}
			}
		}
	}
	return mask, fg
}

// dotBit returns the braille pattern bit for a dot in a cell.
func dotBit(dx, dy int) uint8 {
	if dx == 0 {
		return [4]uint8{0x01, 0x02, 0x04, 0x40}[dy]
	}
	return [4]uint8{0x08, 0x10, 0x20, 0x80}[dy]
}

// Lines returns the grid as plain text, one string per row.
func (r *Renderer) Lines() []string {
	out := make([]string, r.rows)
	row := make([]rune, r.cols)
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			row[x], _, _ = r.Cell(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// View returns the grid with colors applied through lipgloss, rows joined
// by newlines. Runs of cells with the same colors share one style.
func (r *Renderer) View() string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < r.rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var key [2]uint32
		for x := 0; x < r.cols; x++ {
			ch, fg, bg := r.Cell(x, y)
			if bg == r.clear {
				bg = 0
			}
			k := [2]uint32{fg, bg}
			if x > 0 && k != key {
				sb.WriteString(r.style(key).Render(run.String()))
				run.Reset()
			}
			key = k
			run.WriteRune(ch)
		}
		sb.WriteString(r.style(key).Render(run.String()))
		run.Reset()
	}
	return sb.String()
}

func (r *Renderer) style(key [2]uint32) lipgloss.Style {
	if s, ok := r.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if key[0] != 0 {
		s = s.Foreground(hexColor(key[0]))
	}
	if key[1] != 0 {
		s = s.Background(hexColor(key[1]))
	}
	r.styles[key] = s
	return s
}

func hexColor(c uint32) lipgloss.Color {
	cr, cg, cb, _ := plot.UnpackRGBA(c)
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))
}

// blend composites src over an opaque dst.
func blend(src, dst uint32) uint32 {
	sr, sg, sb, sa := plot.UnpackRGBA(src)
	dr, dg, db, _ := plot.UnpackRGBA(dst)
	a := float32(sa) / 255
	mix := func(s, d uint8) uint8 { return uint8(float32(s)*a + float32(d)*(1-a) + 0.5) }
	return plot.RGBA(mix(sr, dr), mix(sg, dg), mix(sb, db), 255)
}
