// Command plotterm shows line graphs in a terminal using braille
// characters.
//
// Usage:
//
//	go run ./cmd/plotterm/ [data.csv ...]
//
// Without arguments it plots a few sample curves. Drag with the mouse to
// pan or move markers, use the wheel or +/- to zoom.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/plot"
	"github.com/go-theft-auto/plot/internal/csvdata"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	noMarkers := flag.Bool("no-markers", false, "do not add the sample markers")
	flag.Parse()

	g := plot.NewGraph(plot.WithStyle(plot.TerminalStyle()))
	if flag.NArg() == 0 {
		addSamples(g)
	}
	for _, path := range flag.Args() {
		lines, err := csvdata.LoadFile(path)
		if err != nil {
			return err
		}
		for _, l := range lines {
			l.Thickness = 1
			g.AddLine(l)
		}
	}
	if !*noMarkers {
		addMarkers(g)
	}

	p := tea.NewProgram(newModel(g), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("plotterm: %w", err)
	}
	return nil
}

func addSamples(g *plot.Graph) {
	sine := plot.NewPolyline(0, 1)
	sine.Label = "sin"
	chirp := plot.NewPolyline(0, 1)
	chirp.Label = "chirp"
	for i := 0; i <= 1000; i++ {
		x := float64(i) / 100
		sine.Append(plot.Point{X: x, Y: math.Sin(x)})
		chirp.Append(plot.Point{X: x, Y: 0.5 * math.Sin(x*x/2)})
	}
	g.AddLine(sine)
	g.AddLine(chirp)
}

// addMarkers places a pair of vertical cursors across the data.
func addMarkers(g *plot.Graph) {
	var bounds plot.DataRect
	found := false
	for _, l := range g.Lines() {
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
	if !found || bounds.W <= 0 {
		return
	}
	for i, label := range []string{"A", "B"} {
		x := bounds.X + bounds.W*float64(i+1)/3
		m := plot.NewMarker(plot.DataRect{X: x, Y: bounds.Y, W: bounds.W / 200, H: bounds.H}, plot.RGBA(255, 183, 77, 255))
		m.Label = label
		m.Constraint = plot.DragXOnly
		g.AddMarker(m)
	}
}
