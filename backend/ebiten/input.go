package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-theft-auto/plot"
)

// keyMap lists the Ebitengine keys that drive each plot key.
var keyMap = map[plot.Key][]ebiten.Key{
	plot.KeyLeft:     {ebiten.KeyArrowLeft},
	plot.KeyRight:    {ebiten.KeyArrowRight},
	plot.KeyUp:       {ebiten.KeyArrowUp},
	plot.KeyDown:     {ebiten.KeyArrowDown},
	plot.KeyHome:     {ebiten.KeyHome},
	plot.KeyPlus:     {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	plot.KeyMinus:    {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
	plot.KeyPageUp:   {ebiten.KeyPageUp},
	plot.KeyPageDown: {ebiten.KeyPageDown},
	plot.KeyEscape:   {ebiten.KeyEscape},
}

var buttonMap = [plot.MouseButtonCount]ebiten.MouseButton{
	plot.MouseButtonLeft:   ebiten.MouseButtonLeft,
	plot.MouseButtonRight:  ebiten.MouseButtonRight,
	plot.MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// InputAdapter polls Ebitengine input into a plot.InputState once per tick.
type InputAdapter struct {
	input   *plot.InputState
	current plot.Cursor
}

// NewInputAdapter creates a new input adapter.
func NewInputAdapter() *InputAdapter {
	return &InputAdapter{input: plot.NewInputState()}
}

// Update polls the current input state. Call it from Game.Update with the
// tick duration.
func (a *InputAdapter) Update(dt float32) *plot.InputState {
	in := a.input
	in.Reset()

	mx, my := ebiten.CursorPosition()
	in.SetMousePos(float32(mx), float32(my))
	for b, eb := range buttonMap {
		in.SetMouseButton(plot.MouseButton(b), ebiten.IsMouseButtonPressed(eb))
	}

	wx, wy := ebiten.Wheel()
	in.SetMouseWheel(float32(wx), float32(wy))

	for key, keys := range keyMap {
		down := false
		for _, k := range keys {
			down = down || ebiten.IsKeyPressed(k)
		}
		in.SetKey(key, down)
	}

	in.ModCtrl = ebiten.IsKeyPressed(ebiten.KeyControl)
	in.ModShift = ebiten.IsKeyPressed(ebiten.KeyShift)
	in.ModAlt = ebiten.IsKeyPressed(ebiten.KeyAlt)

	in.UpdateKeyRepeat(dt)
	return in
}

// Input returns the current input state.
func (a *InputAdapter) Input() *plot.InputState {
	return a.input
}

// SetCursor applies the graph's cursor shape to the window.
func (a *InputAdapter) SetCursor(c plot.Cursor) {
	if c == a.current {
		return
	}
	a.current = c
	ebiten.SetCursorShape(cursorShape(c))
}

func cursorShape(c plot.Cursor) ebiten.CursorShapeType {
	switch c {
	case plot.CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case plot.CursorHand:
		return ebiten.CursorShapePointer
	case plot.CursorMove:
		return ebiten.CursorShapeMove
	case plot.CursorHResize:
		return ebiten.CursorShapeEWResize
	case plot.CursorVResize:
		return ebiten.CursorShapeNSResize
	default:
		return ebiten.CursorShapeDefault
	}
}
