package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/plot"
)

// GLFWInputAdapter adapts GLFW input to plot.InputState and applies the
// graph's cursor shape to the window.
type GLFWInputAdapter struct {
	window  *glfw.Window
	input   *plot.InputState
	cursors map[plot.Cursor]*glfw.Cursor
	current plot.Cursor
}

// NewGLFWInputAdapter creates a new GLFW input adapter.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		input:  plot.NewInputState(),
		cursors: map[plot.Cursor]*glfw.Cursor{
			plot.CursorArrow:     glfw.CreateStandardCursor(glfw.ArrowCursor),
			plot.CursorCrosshair: glfw.CreateStandardCursor(glfw.CrosshairCursor),
			plot.CursorHand:      glfw.CreateStandardCursor(glfw.HandCursor),
			// GLFW 3.3 has no move cursor.
			plot.CursorMove:    glfw.CreateStandardCursor(glfw.HandCursor),
			plot.CursorHResize: glfw.CreateStandardCursor(glfw.HResizeCursor),
			plot.CursorVResize: glfw.CreateStandardCursor(glfw.VResizeCursor),
		},
	}

	// Setup callbacks
	window.SetKeyCallback(adapter.keyCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// BeginFrame clears the per-frame edges. Call it before glfw.PollEvents so
// the events polled this frame survive until the graph sees them.
func (a *GLFWInputAdapter) BeginFrame() {
	a.input.Reset()
}

// Update samples the mouse position and modifiers after events were polled
// and advances key repeat by dt seconds.
func (a *GLFWInputAdapter) Update(dt float32) *plot.InputState {
	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	// Update modifiers
	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	a.input.ModAlt = a.window.GetKey(glfw.KeyLeftAlt) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightAlt) == glfw.Press

	a.input.UpdateKeyRepeat(dt)
	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *plot.InputState {
	return a.input
}

// SetCursor changes the window cursor when the shape differs from the last one.
func (a *GLFWInputAdapter) SetCursor(c plot.Cursor) {
	if c == a.current {
		return
	}
	a.current = c
	a.window.SetCursor(a.cursors[c])
}

// Destroy releases the standard cursors.
func (a *GLFWInputAdapter) Destroy() {
	a.window.SetCursor(nil)
	for _, c := range a.cursors {
		c.Destroy()
	}
	clear(a.cursors)
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	plotKey := glfwKeyToPlotKey(key)
	if plotKey == plot.KeyNone {
		return
	}

	// Repeat events are ignored; InputState times repeats itself.
	switch action {
	case glfw.Press:
		a.input.SetKey(plotKey, true)
	case glfw.Release:
		a.input.SetKey(plotKey, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	plotButton := glfwMouseButtonToPlot(button)
	if plotButton < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(plotButton, true)
	case glfw.Release:
		a.input.SetMouseButton(plotButton, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.AddMouseWheel(float32(xoff), float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

// glfwKeyToPlotKey maps GLFW keys to plot keys.
func glfwKeyToPlotKey(key glfw.Key) plot.Key {
	switch key {
	case glfw.KeyLeft:
		return plot.KeyLeft
	case glfw.KeyRight:
		return plot.KeyRight
	case glfw.KeyUp:
		return plot.KeyUp
	case glfw.KeyDown:
		return plot.KeyDown
	case glfw.KeyHome:
		return plot.KeyHome
	case glfw.KeyEqual, glfw.KeyKPAdd:
		return plot.KeyPlus
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		return plot.KeyMinus
	case glfw.KeyPageUp:
		return plot.KeyPageUp
	case glfw.KeyPageDown:
		return plot.KeyPageDown
	case glfw.KeyEscape:
		return plot.KeyEscape
	default:
		return plot.KeyNone
	}
}

// glfwMouseButtonToPlot maps GLFW mouse buttons to plot mouse buttons.
func glfwMouseButtonToPlot(button glfw.MouseButton) plot.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return plot.MouseButtonLeft
	case glfw.MouseButtonRight:
		return plot.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return plot.MouseButtonMiddle
	default:
		return -1
	}
}
