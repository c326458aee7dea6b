package braille

import (
	"strings"
	"testing"

	"github.com/go-theft-auto/plot"
)

func screenFrame(w, h int, clip plot.Rect) (*plot.Frame, *plot.DrawList) {
	f := &plot.Frame{Width: w, Height: h, Clear: plot.ColorBlack}
	return f, f.NewScreenLayer(clip)
}

func render(t *testing.T, r *Renderer, f *plot.Frame) {
	t.Helper()
	f.Finalize()
	if err := r.Render(f); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f.Release()
}

func TestPixelSize(t *testing.T) {
	w, h := PixelSize(80, 24)
	if w != 160 || h != 96 {
		t.Errorf("PixelSize(80, 24) = %d, %d, want 160, 96", w, h)
	}
	r := NewRenderer(1, 1)
	r.Resize(161, 96)
	if cols, rows := r.Size(); cols != 81 || rows != 24 {
		t.Errorf("Resize(161, 96) gives %dx%d cells, want 81x24", cols, rows)
	}
	if c := CellCenter(3, 2); c.X != 7 || c.Y != 10 {
		t.Errorf("CellCenter(3, 2) = %v, want {7 10}", c)
	}
}

func TestHorizontalLine(t *testing.T) {
	r := NewRenderer(4, 2)
	f, dl := screenFrame(8, 8, plot.Rect{})
	dl.AddLine(0, 1, 8, 1, plot.ColorWhite, 1)
	render(t, r, f)

	lines := r.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	// Dot row 1 in both columns: bits 0x02 and 0x10.
	if want := strings.Repeat("⠒", 4); lines[0] != want {
		t.Errorf("row 0 = %q, want %q", lines[0], want)
	}
	if lines[1] != "    " {
		t.Errorf("row 1 = %q, want blank", lines[1])
	}
	if _, fg, _ := r.Cell(0, 0); fg != plot.ColorWhite {
		t.Errorf("cell color = %#x, want white", fg)
	}
}

func TestVerticalLine(t *testing.T) {
	r := NewRenderer(2, 2)
	f, dl := screenFrame(4, 8, plot.Rect{})
	dl.AddLine(1, 0, 1, 8, plot.ColorGreen, 1)
	render(t, r, f)

	// Right dot column of the first cell in every row.
	want := string(rune(0x2800 + 0x08 + 0x10 + 0x20 + 0x80))
	for row, line := range r.Lines() {
		if line != want+" " {
			t.Errorf("row %d = %q, want %q", row, line, want+" ")
		}
	}
}

func TestAreaFillTintsBackground(t *testing.T) {
	r := NewRenderer(8, 2)
	f, dl := screenFrame(16, 8, plot.Rect{})
	dl.AddLine(0, 1, 16, 1, plot.ColorWhite, 1)
	dl.AddRect(0, 0, 8, 8, plot.ColorRed)
	dl.AddRect(8, 0, 8, 8, plot.RGBA(0, 0, 255, 128))
	render(t, r, f)

	ch, _, bg := r.Cell(0, 0)
	if ch != ' ' || bg != plot.ColorRed {
		t.Errorf("opaque fill cell = %q bg %#x, want blank on red", ch, bg)
	}
	ch, _, bg = r.Cell(7, 0)
	if ch != '⠒' {
		t.Errorf("translucent fill erased dots: %q", ch)
	}
	if cr, _, cb, _ := plot.UnpackRGBA(bg); cr != 0 || cb < 120 || cb > 136 {
		t.Errorf("translucent bg = %#x, want half blue over black", bg)
	}
}

func TestLayerClip(t *testing.T) {
	r := NewRenderer(4, 1)
	f, dl := screenFrame(8, 4, plot.Rect{X: 0, Y: 0, W: 4, H: 4})
	dl.AddLine(0, 1, 8, 1, plot.ColorWhite, 1)
	render(t, r, f)

	if got, want := r.Lines()[0], "⠒⠒  "; got != want {
		t.Errorf("clipped row = %q, want %q", got, want)
	}
}

func TestTextRuns(t *testing.T) {
	r := NewRenderer(6, 2)
	f, dl := screenFrame(12, 8, plot.Rect{})
	dl.AddText(2, 4, "ab", plot.ColorYellow, 0.25)
	render(t, r, f)

	if got := r.Lines()[1]; got != " ab   " {
		t.Errorf("text row = %q, want %q", got, " ab   ")
	}
	if _, fg, _ := r.Cell(1, 1); fg != plot.ColorYellow {
		t.Errorf("text color = %#x, want yellow", fg)
	}
}

func TestRenderGraph(t *testing.T) {
	cols, rows := 60, 20
	g := plot.NewGraph(
		plot.WithStyle(plot.TerminalStyle()),
		plot.WithRegion(plot.DataRect{X: 0, Y: -1, W: 10, H: 2}),
	)
	g.Resize(PixelSize(cols, rows))
	line := plot.NewPolyline(plot.ColorRed, 1, plot.Point{X: 0, Y: 0}, plot.Point{X: 10, Y: 0})
	g.AddLine(line)

	f, err := g.Redraw()
	if err != nil {
		t.Fatalf("Redraw: %v", err)
	}
	r := NewRenderer(cols, rows)
	if err := r.Render(f); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// The line at Y=0 crosses the middle of the plot area.
	p := g.Viewport().ToScreen(plot.Point{X: 5, Y: 0})
	col, row := int(p.X)/CellWidth, int(p.Y)/CellHeight
	if ch, fg, _ := r.Cell(col, row); fg != plot.ColorRed || ch < 0x2800 || ch > 0x28FF {
		t.Errorf("cell (%d, %d) = %q %#x, want red braille", col, row, ch, fg)
	}

	view := r.View()
	if n := strings.Count(view, "\n"); n != rows-1 {
		t.Errorf("view has %d newlines, want %d", n, rows-1)
	}
}
