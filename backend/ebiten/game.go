package ebiten

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/plot"
)

// Game runs a graph as an ebiten.Game. Input and animation advance in
// Update; the frame is built and drawn in Draw.
type Game struct {
	graph    *plot.Graph
	renderer *Renderer
	input    *InputAdapter
	width    int
	height   int
	err      error
}

// NewGame wraps g. The graph is resized from Layout.
func NewGame(g *plot.Graph) *Game {
	return &Game{
		graph:    g,
		renderer: NewRenderer(),
		input:    NewInputAdapter(),
	}
}

// Graph returns the hosted graph.
func (g *Game) Graph() *plot.Graph { return g.graph }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	dt := float32(1 / float64(ebiten.TPS()))
	in := g.input.Update(dt)
	g.graph.HandleInput(in)
	g.graph.Update(dt)
	g.input.SetCursor(g.graph.Cursor())
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	f, err := g.graph.Redraw()
	if errors.Is(err, plot.ErrZeroDimension) {
		// Minimized window.
		return
	}
	if err != nil {
		g.err = fmt.Errorf("redraw: %w", err)
		return
	}
	g.renderer.SetTarget(screen)
	if err := g.renderer.Render(f); err != nil {
		g.err = fmt.Errorf("render frame: %w", err)
	}
}

// Layout implements ebiten.Game. The graph uses the window size in pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.graph.Resize(outsideWidth, outsideHeight)
		g.renderer.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
