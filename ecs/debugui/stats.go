package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/smallworld/ecs"
)

func NewStatsComponent(historyFrames int) StatsComponent {
	return StatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *StatsComponent) Render(w *ecs.World, deltaTime float32) {
	if !imgui.BeginV("World Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := w.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d", stats.Entities))
	imgui.Text(fmt.Sprintf("Free Indices: %d", stats.FreeIndices))
	imgui.Text(fmt.Sprintf("Pending Destroys: %d", stats.PendingDestroys))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypes))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Component Counts") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComponentStatsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Type")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, cs := range stats.Components {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(cs.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", cs.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Cached Views") {
		for _, view := range stats.Views {
			imgui.BulletText(fmt.Sprintf("%s: %d entities, %d pending", view.Mask, view.Entities, view.PendingDiffs))
		}
		imgui.TreePop()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
