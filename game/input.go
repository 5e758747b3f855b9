package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
	"github.com/pthm-cable/cardpile/sim"
)

// handleInput processes keyboard input that does not feed the pipeline.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Debug panel toggle
	if rl.IsKeyPressed(rl.KeyF1) {
		g.debugMode = !g.debugMode
		g.tablePanel.SetVisible(g.debugMode)
	}

	// Overlay toggles
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}

	// Camera controls
	g.handleCameraInput()
}

// readInput samples the pointer, buttons and movement keys for one step.
func (g *Game) readInput() sim.InputFrame {
	mouse := rl.GetMousePosition()
	pointer := components.Vec2{X: mouse.X, Y: mouse.Y}

	in := sim.InputFrame{
		Pointer:   pointer,
		PointerOK: rl.IsCursorOnScreen(),
		Press:     rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Release:   rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Spawn:     rl.IsMouseButtonPressed(rl.MouseButtonRight),
	}

	// Clicks on the debug panel belong to the panel. Releases always pass
	// through so held cards are never stranded.
	if g.debugMode && debugPanelRect(g.screenWidth).Contains(pointer) {
		in.Press = false
		in.Spawn = false
	}

	if rl.IsKeyDown(rl.KeyD) {
		in.Move.X++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Move.X--
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Move.Y++
	}
	if rl.IsKeyDown(rl.KeyW) {
		in.Move.Y--
	}

	return in
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.perfPanel.SetPosition(int32(w)-240, 10)
	g.inspector.SetPosition(int32(w)-230, 200)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	panSpeed := float32(g.cfg.Camera.PanSpeed)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		g.camera.ZoomBy(1.0 + wheelMove*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// togglePolicy switches the selection policy between all and topmost.
func (g *Game) togglePolicy() {
	sel := g.table.Selection()
	if sel.Policy() == config.SelectTopmost {
		sel.SetPolicy(config.SelectAll)
	} else {
		sel.SetPolicy(config.SelectTopmost)
	}
}
