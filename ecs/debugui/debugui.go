// Package debugui provides immediate-mode GUI integration for worlds using
// Dear ImGui. Debug windows are ordinary entities carrying an ImguiItem
// component; ImguiSystem renders them during the world's draw pass.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/smallworld/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state. Use this to
// determine if ImGui is consuming mouse or keyboard input before forwarding
// input to game systems.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates the ImguiInputState entity every cycle and runs all
// ImguiItem render functions during the draw pass. Add it after the systems
// whose state the debug windows read.
type ImguiSystem struct {
	ecs.BaseSystem
}

func (s *ImguiSystem) Load(w *ecs.World) {
	if _, ok := ecs.ViewOne[ImguiInputState](w); !ok {
		e := w.NewEntity()
		ecs.Assign(w, e, ImguiInputState{})
	}
}

func (s *ImguiSystem) Update(w *ecs.World, dt float64) {
	state := ecs.GetOne[ImguiInputState](w)
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
}

func (s *ImguiSystem) Draw(w *ecs.World) {
	ecs.Each(w, func(e ecs.Entity, item *ImguiItem) {
		item.Render()
	})
}
