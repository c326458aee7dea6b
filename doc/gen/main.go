// Command gen renders sample graphs with the software backend and saves PNG
// screenshots to doc/imgs/, plus a braille rendering as text.
//
// Usage:
//
//	go run ./doc/gen/
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-theft-auto/plot"
	"github.com/go-theft-auto/plot/backend/braille"
	"github.com/go-theft-auto/plot/backend/raster"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single graph screenshot to capture.
type screenshot struct {
	name   string            // filename without extension
	width  int               // image width
	height int               // image height
	style  plot.Style        // graph style
	build  func(*plot.Graph) // adds lines and markers
	region *plot.DataRect    // shown region (nil = fit data)
	input  func(*plot.Graph) // simulated input before capture
}

func run() error {
	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.png (%dx%d)\n", s.name, s.width, s.height)
	}

	if err := captureTerminal(outDir); err != nil {
		return fmt.Errorf("capture terminal: %w", err)
	}
	fmt.Println("  terminal.txt")

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots)+1, outDir)
	return nil
}

func newGraph(s screenshot) (*plot.Graph, error) {
	g := plot.NewGraph(plot.WithStyle(s.style))
	g.Resize(s.width, s.height)
	s.build(g)
	if s.region != nil {
		return g, g.Display(*s.region)
	}
	return g, g.FitToData(0.05)
}

func capture(s screenshot, outDir string) error {
	// Fresh graph per screenshot to avoid state leaking between captures.
	g, err := newGraph(s)
	if err != nil {
		return err
	}
	if s.input != nil {
		s.input(g)
	}

	f, err := g.Redraw()
	if err != nil {
		return err
	}
	r, err := raster.NewRenderer(s.width, s.height)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := r.Render(f); err != nil {
		return err
	}
	return r.SavePNG(filepath.Join(outDir, s.name+".png"))
}

func captureTerminal(outDir string) error {
	cols, rows := 100, 30
	w, h := braille.PixelSize(cols, rows)
	s := screenshot{width: w, height: h, style: plot.TerminalStyle(), build: waves}
	g, err := newGraph(s)
	if err != nil {
		return err
	}
	f, err := g.Redraw()
	if err != nil {
		return err
	}
	r := braille.NewRenderer(cols, rows)
	if err := r.Render(f); err != nil {
		return err
	}
	text := strings.Join(r.Lines(), "\n") + "\n"
	return os.WriteFile(filepath.Join(outDir, "terminal.txt"), []byte(text), 0o644)
}

// buildScreenshots returns the list of all screenshots to generate.
func buildScreenshots() []screenshot {
	zoomed := plot.DataRect{X: 2, Y: -0.5, W: 2, H: 1}

	return []screenshot{
		{name: "waves", width: 800, height: 400, style: plot.DefaultStyle(), build: waves},
		{name: "waves_dark", width: 800, height: 400, style: plot.DarkStyle(), build: waves},
		{name: "zoomed", width: 600, height: 300, style: plot.DefaultStyle(), build: waves, region: &zoomed},
		{
			name: "markers", width: 800, height: 400, style: plot.DefaultStyle(),
			build: func(g *plot.Graph) {
				waves(g)
				for i, x := range []float64{math.Pi / 2, 3 * math.Pi / 2} {
					m := plot.NewMarker(plot.DataRect{X: x - 0.1, Y: -1.1, W: 0.2, H: 2.2}, plot.RGBA(255, 127, 14, 60))
					m.BorderColor = plot.RGBA(255, 127, 14, 255)
					m.Label = fmt.Sprintf("M%d", i+1)
					m.Constraint = plot.DragXOnly
					g.AddMarker(m)
				}
			},
			input: func(g *plot.Graph) {
				// Hover the first marker so the highlight shows.
				in := plot.NewInputState()
				c := g.Markers()[0].Rect.Center()
				p := g.Viewport().ToScreen(c)
				in.SetMousePos(p.X, p.Y)
				g.HandleInput(in)
			},
		},
		{
			name: "gaps", width: 600, height: 300, style: plot.DefaultStyle(),
			build: func(g *plot.Graph) {
				l := plot.NewPolyline(0, 2)
				l.Label = "tan(x)"
				for i := 0; i <= 600; i++ {
					x := float64(i)/100 - 3
					y := math.Tan(x)
					if math.Abs(y) > 8 {
						y = math.NaN()
					}
					l.Append(plot.Point{X: x, Y: y})
				}
				g.AddLine(l)
			},
		},
	}
}

func waves(g *plot.Graph) {
	sine := plot.NewPolyline(0, 2)
	sine.Label = "sin(x)"
	cosine := plot.NewPolyline(0, 2)
	cosine.Label = "cos(x)"
	for i := 0; i <= 628; i++ {
		x := float64(i) / 100
		sine.Append(plot.Point{X: x, Y: math.Sin(x)})
		cosine.Append(plot.Point{X: x, Y: math.Cos(x)})
	}
	g.AddLine(sine)
	g.AddLine(cosine)
}
