// Example ebiten shows a plot graph inside an Ebitengine game loop.
//
//	go run ./example/ebiten/
//
// Drag the markers with the left mouse button, drag empty space to pan and
// scroll to zoom around the cursor.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/plot"
	plotebiten "github.com/go-theft-auto/plot/backend/ebiten"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	graph := plot.NewGraph(
		plot.WithStyle(plot.DefaultStyle()),
		plot.WithRegion(plot.DataRect{X: 0, Y: -1.2, W: 4 * math.Pi, H: 2.4}),
	)

	damped := plot.NewPolyline(0, 2)
	damped.Label = "e^(-x/4) sin(2x)"
	square := plot.NewPolyline(0, 1.5)
	square.Label = "square"
	for i := 0; i <= 1200; i++ {
		x := float64(i) * 4 * math.Pi / 1200
		damped.Append(plot.Point{X: x, Y: math.Exp(-x/4) * math.Sin(2*x)})
		square.Append(plot.Point{X: x, Y: 0.8 * math.Copysign(1, math.Sin(x))})
	}
	graph.AddLine(damped)
	graph.AddLine(square)

	band := plot.NewMarker(plot.DataRect{X: 2, Y: -0.25, W: 3, H: 0.5}, plot.RGBA(80, 160, 80, 60))
	band.BorderColor = plot.RGBA(80, 160, 80, 255)
	band.Label = "band"
	band.Constraint = plot.DragYOnly
	graph.AddMarker(band)

	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("plot ebiten example")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(plotebiten.NewGame(graph)); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
