package frontend

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/puppet/control"
	"github.com/plus3/puppet/ecs"
	"github.com/plus3/puppet/ecs/debugui"
)

// SpawnInspector adds a debug window showing the controller's state, the
// held input and the clip catalog.
func SpawnInspector(storage *ecs.Storage, speed func() float32) ecs.EntityId {
	player := ecs.NewSingleton[control.PlayerState](storage)
	input := ecs.NewSingleton[control.InputSnapshot](storage)
	catalog := ecs.NewSingleton[control.ClipCatalog](storage)

	return storage.Spawn(debugui.ImguiItem{
		Render: func() {
			p := player.Get()
			if p == nil {
				return
			}

			imgui.SetNextWindowPosV(imgui.NewVec2(360, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
			if !imgui.BeginV("Controller", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}

			imgui.Text(fmt.Sprintf("State: %s (previous %s)", p.State, p.Previous))
			imgui.Text(fmt.Sprintf("Position: I=%.4f J=%.4f", p.I, p.J))
			if speed != nil {
				imgui.Text(fmt.Sprintf("Speed: %.2f", speed()))
			}
			imgui.Text(fmt.Sprintf("Entity valid: %v", p.Entity.Valid()))

			if in := input.Get(); in != nil {
				imgui.Separator()
				imgui.Text("Held: " + heldSummary(in))
				if x, y, ok := in.CursorPosition(); ok {
					imgui.Text(fmt.Sprintf("Cursor: %.0f, %.0f", x, y))
				} else {
					imgui.Text("Cursor: outside window")
				}
			}

			if c := catalog.Get(); c != nil && imgui.TreeNodeStr("Clip catalog") {
				for i, name := range c.Names() {
					imgui.BulletText(fmt.Sprintf("%d: %s", i, name))
				}
				imgui.TreePop()
			}

			imgui.End()
		},
	})
}

func heldSummary(in *control.InputSnapshot) string {
	var s string
	for _, k := range []control.Key{control.KeyUp, control.KeyDown, control.KeyLeft, control.KeyRight} {
		if in.KeyHeld(k) {
			s += k.String() + " "
		}
	}
	for _, b := range []control.Button{control.ButtonLeft, control.ButtonRight} {
		if in.ButtonHeld(b) {
			s += "mouse-" + b.String() + " "
		}
	}
	if s == "" {
		return "-"
	}
	return s[:len(s)-1]
}
