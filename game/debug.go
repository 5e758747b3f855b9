package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cardpile/components"
)

const (
	debugPanelW = 260
	debugPanelH = 250
)

// debugPanelRect is the screen area of the tuning panel, bottom right.
func debugPanelRect(screenW float32) components.Rect {
	return components.RectFromCenterSize(
		components.Vec2{X: screenW - debugPanelW/2 - 10, Y: 360 + debugPanelH/2},
		components.Vec2{X: debugPanelW, Y: debugPanelH},
	)
}

// drawDebugPanel renders live drag tuning controls.
func (g *Game) drawDebugPanel() {
	r := debugPanelRect(g.screenWidth)
	lo := r.Min()
	panelX := lo.X + 10
	panelY := lo.Y + 8
	sliderW := float32(debugPanelW - 100)

	rl.DrawRectangleRec(toRectangle(r), rl.Color{R: 20, G: 25, B: 30, A: 230})
	rl.DrawRectangleLinesEx(toRectangle(r), 1, rl.Yellow)
	rl.DrawText("Tuning [F1]", int32(panelX), int32(panelY), 14, rl.Yellow)
	panelY += 22

	params := g.table.Drag()

	slider := func(label string, value, minV, maxV float32) float32 {
		rl.DrawText(fmt.Sprintf("%s %.2f", label, value), int32(panelX), int32(panelY), 12, rl.LightGray)
		panelY += 14
		v := gui.SliderBar(
			rl.Rectangle{X: panelX + 30, Y: panelY, Width: sliderW, Height: 14},
			fmt.Sprintf("%.0f", minV), fmt.Sprintf("%.0f", maxV),
			value, minV, maxV,
		)
		panelY += 20
		return v
	}

	params.StackStep = slider("Stack step", params.StackStep, 0, 40)
	params.BaseRate = slider("Base rate", params.BaseRate, 0.01, 1)
	params.ReleaseRate = slider("Release rate", params.ReleaseRate, 0.01, 1)
	params.DragScale = slider("Drag scale", params.DragScale, 1, 2)

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 115, Height: 24}, "Select: "+g.table.Selection().Policy()) {
		g.togglePolicy()
	}
	if gui.Button(rl.Rectangle{X: panelX + 125, Y: panelY, Width: 115, Height: 24}, "Reset Camera") {
		g.camera.Reset()
	}
}
