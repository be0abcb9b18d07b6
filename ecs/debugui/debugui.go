// Package debugui renders Dear ImGui windows from ECS entities. Every entity
// carrying an ImguiItem contributes one render function per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puppet/ecs"
)

// ImguiItem holds a function that draws ImGui widgets. It runs once per
// frame, after the systems of the frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton telling gameplay systems whether ImGui is
// consuming the mouse or keyboard this frame.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// CaptureFunc reports whether ImGui wants the mouse and the keyboard.
type CaptureFunc func() (mouse, keyboard bool)

func currentCapture() (bool, bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

// ImguiSystem refreshes ImguiInputState and queues every ImguiItem render
// function to run when the frame's commands are flushed.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]

	// Capture defaults to the current ImGui IO.
	Capture CaptureFunc
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	capture := s.Capture
	if capture == nil {
		capture = currentCapture
	}
	state := s.InputState.MustGet()
	state.WantCaptureMouse, state.WantCaptureKeyboard = capture()

	for item := range s.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
