package frontend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/ecs/debugui"
)

var keyBindings = map[control.Key]ebiten.Key{
	control.KeyUp:    ebiten.KeyArrowUp,
	control.KeyDown:  ebiten.KeyArrowDown,
	control.KeyLeft:  ebiten.KeyArrowLeft,
	control.KeyRight: ebiten.KeyArrowRight,
}

var buttonBindings = map[control.Button]ebiten.MouseButton{
	control.ButtonLeft:  ebiten.MouseButtonLeft,
	control.ButtonRight: ebiten.MouseButtonRight,
}

// Input reads the arrow keys and mouse from ebiten. Keyboard and mouse are
// reported as released while the debug UI captures them.
type Input struct {
	width, height int

	// Capture is optional.
	Capture *ecs.Singleton[debugui.ImguiInputState]
}

func NewInput(width, height int) *Input {
	return &Input{width: width, height: height}
}

// Resize records the logical screen size used for the inside-window check.
func (in *Input) Resize(width, height int) {
	in.width, in.height = width, height
}

func (in *Input) captured() (mouse, keyboard bool) {
	if in.Capture == nil {
		return false, false
	}
	state := in.Capture.Get()
	if state == nil {
		return false, false
	}
	return state.WantCaptureMouse, state.WantCaptureKeyboard
}

func (in *Input) KeyHeld(k control.Key) bool {
	if _, kb := in.captured(); kb {
		return false
	}
	key, ok := keyBindings[k]
	return ok && ebiten.IsKeyPressed(key)
}

func (in *Input) ButtonHeld(b control.Button) bool {
	if mouse, _ := in.captured(); mouse {
		return false
	}
	button, ok := buttonBindings[b]
	return ok && ebiten.IsMouseButtonPressed(button)
}

func (in *Input) CursorPosition() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	if !inside(x, y, in.width, in.height) || !ebiten.IsFocused() {
		return 0, 0, false
	}
	return float64(x), float64(y), true
}

func inside(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}
