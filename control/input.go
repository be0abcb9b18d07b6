package control

import "github.com/plus3/puppet/ecs"

// Key is one of the directional keys the controller reads.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	keyCount
)

var keyNames = [keyCount]string{"up", "down", "left", "right"}

func (k Key) String() string {
	if k >= keyCount {
		return "key?"
	}
	return keyNames[k]
}

// Button is a mouse button.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	buttonCount
)

var buttonNames = [buttonCount]string{"left", "right"}

func (b Button) String() string {
	if b >= buttonCount {
		return "button?"
	}
	return buttonNames[b]
}

// ParseKey maps a key name ("up", "down", "left", "right") to a Key.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return Key(k), true
		}
	}
	return 0, false
}

// ParseButton maps a button name ("left", "right") to a Button.
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name {
			return Button(b), true
		}
	}
	return 0, false
}

// InputSource is whatever can answer "is this held right now": a window,
// a replay script, a test.
type InputSource interface {
	KeyHeld(Key) bool
	ButtonHeld(Button) bool
	// CursorPosition returns the window-relative cursor, ok is false while
	// the pointer is outside the window.
	CursorPosition() (x, y float64, ok bool)
}

// InputSnapshot is the input state frozen at the start of a tick. Every
// system of the tick reads the same snapshot.
type InputSnapshot struct {
	Keys    [keyCount]bool
	Buttons [buttonCount]bool

	CursorX, CursorY float64
	CursorInside     bool
}

func (s *InputSnapshot) KeyHeld(k Key) bool {
	return k < keyCount && s.Keys[k]
}

func (s *InputSnapshot) ButtonHeld(b Button) bool {
	return b < buttonCount && s.Buttons[b]
}

func (s *InputSnapshot) CursorPosition() (float64, float64, bool) {
	return s.CursorX, s.CursorY, s.CursorInside
}

// AnyDirection reports whether at least one directional key is held.
func (s *InputSnapshot) AnyDirection() bool {
	for _, held := range s.Keys {
		if held {
			return true
		}
	}
	return false
}

// Capture overwrites s with the current state of src.
func (s *InputSnapshot) Capture(src InputSource) {
	for k := range keyCount {
		s.Keys[k] = src.KeyHeld(k)
	}
	for b := range buttonCount {
		s.Buttons[b] = src.ButtonHeld(b)
	}
	s.CursorX, s.CursorY, s.CursorInside = src.CursorPosition()
}

// InputSystem captures the snapshot. It must be the first system of a tick.
type InputSystem struct {
	Snapshot ecs.Singleton[InputSnapshot]
	Source   InputSource
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	s.Snapshot.MustGet().Capture(s.Source)
}
