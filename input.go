package plot

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key the graph reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyPlus
	KeyMinus
	KeyPageUp
	KeyPageDown
	KeyEscape
	KeyCount
)

// Key repeat timing constants
const (
	KeyRepeatDelay    float32 = 0.4  // Initial delay before repeat starts (seconds)
	KeyRepeatInterval float32 = 0.03 // Repeat interval once repeating (seconds)
)

// buttonState tracks one mouse button or key across frames.
type buttonState struct {
	down     bool
	pressed  bool // went down this frame
	released bool // went up this frame
	repeat   bool // crossed a repeat boundary this frame
	held     float32
}

func (b *buttonState) set(down bool) {
	switch {
	case down && !b.down:
		b.pressed = true
		b.held = 0
	case !down && b.down:
		b.released = true
		b.held = 0
	}
	b.down = down
}

func (b *buttonState) endFrame() {
	b.pressed, b.released, b.repeat = false, false, false
}

// advance adds dt to the hold time and flags a repeat when the hold crossed
// KeyRepeatDelay or a following KeyRepeatInterval boundary.
func (b *buttonState) advance(dt float32) {
	if !b.down {
		return
	}
	prev := b.held
	b.held += dt
	b.repeat = b.held >= KeyRepeatDelay && repeatCount(b.held) > repeatCount(prev)
}

func repeatCount(held float32) int {
	if held < KeyRepeatDelay {
		return -1
	}
	return int((held - KeyRepeatDelay) / KeyRepeatInterval)
}

// InputState holds input for the current frame. Backend adapters populate
// it from GLFW, ebiten or terminal events.
type InputState struct {
	MouseX, MouseY float32

	// Wheel delta accumulated this frame; positive Y scrolls up.
	MouseWheelX float32
	MouseWheelY float32

	ModCtrl  bool
	ModShift bool
	ModAlt   bool

	mouse [MouseButtonCount]buttonState
	keys  [KeyCount]buttonState
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{}
}

// Reset clears per-frame edges and the wheel; held buttons stay held.
// Call it at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.mouse {
		s.mouse[i].endFrame()
	}
	for i := range s.keys {
		s.keys[i].endFrame()
	}
	s.MouseWheelX, s.MouseWheelY = 0, 0
}

// MousePos returns the mouse position as a vector.
func (s *InputState) MousePos() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX, s.MouseY = x, y
}

// SetMouseButton records a button going down or up.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if b := s.button(button); b != nil {
		b.set(down)
	}
}

// SetKey records a key going down or up. KeyNone is ignored.
func (s *InputState) SetKey(key Key, down bool) {
	if key == KeyNone {
		return
	}
	if k := s.key(key); k != nil {
		k.set(down)
	}
}

// PressKey records a press and release in the same frame. Terminal hosts
// only see key presses, never releases, so they report keys this way.
func (s *InputState) PressKey(key Key) {
	s.SetKey(key, true)
	s.SetKey(key, false)
}

// UpdateKeyRepeat advances hold times by dt seconds. Call it once per frame.
func (s *InputState) UpdateKeyRepeat(dt float32) {
	for i := range s.keys {
		s.keys[i].advance(dt)
	}
}

// SetMouseWheel sets the wheel delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX, s.MouseWheelY = x, y
}

// AddMouseWheel accumulates wheel delta within a frame.
func (s *InputState) AddMouseWheel(x, y float32) {
	s.MouseWheelX += x
	s.MouseWheelY += y
}

func (s *InputState) button(b MouseButton) *buttonState {
	if b < 0 || b >= MouseButtonCount {
		return nil
	}
	return &s.mouse[b]
}

func (s *InputState) key(k Key) *buttonState {
	if k < 0 || k >= KeyCount {
		return nil
	}
	return &s.keys[k]
}

// MouseDown reports whether a mouse button is held.
func (s *InputState) MouseDown(button MouseButton) bool {
	b := s.button(button)
	return b != nil && b.down
}

// MouseClicked reports whether a mouse button went down this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	b := s.button(button)
	return b != nil && b.pressed
}

// MouseReleased reports whether a mouse button went up this frame.
func (s *InputState) MouseReleased(button MouseButton) bool {
	b := s.button(button)
	return b != nil && b.released
}

// KeyDown reports whether a key is held.
func (s *InputState) KeyDown(key Key) bool {
	k := s.key(key)
	return k != nil && k.down
}

// KeyPressed reports whether a key went down this frame.
func (s *InputState) KeyPressed(key Key) bool {
	k := s.key(key)
	return k != nil && k.pressed
}

// KeyReleased reports whether a key went up this frame.
func (s *InputState) KeyReleased(key Key) bool {
	k := s.key(key)
	return k != nil && k.released
}

// KeyRepeated is true on the initial press, then after KeyRepeatDelay, then
// every KeyRepeatInterval while the key is held.
func (s *InputState) KeyRepeated(key Key) bool {
	k := s.key(key)
	return k != nil && (k.pressed || k.repeat)
}

var keyNames = [KeyCount]string{
	KeyNone:     "--",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyHome:     "Home",
	KeyPlus:     "+",
	KeyMinus:    "-",
	KeyPageUp:   "PgUp",
	KeyPageDown: "PgDn",
	KeyEscape:   "Esc",
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	if k < 0 || k >= KeyCount {
		return "?"
	}
	return keyNames[k]
}
