// Package ebiten hooks the debug windows into an Ebiten render loop through
// the cimgui-go Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
)

// ImguiBackend is the imgui renderer a game loop drives around the world:
// BeginFrame/EndFrame bracket World.Update, and Draw composites the imgui
// layer after the world has drawn.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}
