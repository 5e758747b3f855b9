package game

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/sim"
	"github.com/pthm-cable/cardpile/ui"
)

const feltTileSize = 256

var (
	feltColor    = color.RGBA{R: 22, G: 92, B: 54, A: 255}
	tableColor   = rl.Color{R: 22, G: 92, B: 54, A: 255}
	gridColor    = rl.Color{R: 255, G: 255, B: 255, A: 30}
	previewColor = rl.Color{R: 255, G: 230, B: 120, A: 200}
	cursorColor  = rl.Color{R: 255, G: 255, B: 255, A: 160}
)

const controlsLegend = "LMB grab/drop | RMB spawn | WASD move | Arrows pan | Wheel zoom | Home reset | Space pause | F1 debug"

// Draw renders the table.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(tableColor)

	if g.hints != nil {
		rl.BeginMode2D(g.camera2D())
		g.drawWorld(g.hints)
		rl.EndMode2D()
	}

	g.drawUI()

	rl.EndDrawing()
}

// camera2D maps the table camera onto raylib's 2D camera.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	}
}

// drawWorld renders everything in table coordinates.
func (g *Game) drawWorld(h *sim.RenderHints) {
	g.felt.Draw(g.camera.VisibleWorldBounds())

	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.drawGrid()
	}

	if h.HasPreview && g.overlays.IsEnabled(ui.OverlayPreview) {
		rl.DrawRectangleLinesEx(toRectangle(h.Preview), 2/g.camera.Zoom, previewColor)
	}

	// Cards are ordered by depth
	for i := range h.Cards {
		g.drawCard(&h.Cards[i])
	}

	if g.overlays.IsEnabled(ui.OverlayPileCounts) {
		for _, m := range h.PileMarkers {
			text := fmt.Sprintf("x%d", m.Count)
			x := int32(m.Anchor.X + g.cfg.Derived.CellSize32/2 - 22)
			y := int32(m.Anchor.Y - g.cfg.Derived.CellSize32/2 + 2)
			rl.DrawText(text, x, y, 14, rl.Yellow)
		}
	}

	if h.HasPlayer {
		drawPlayer(h.Player)
	}

	if g.overlays.IsEnabled(ui.OverlayCursor) {
		rl.DrawCircleLines(int32(h.Cursor.X), int32(h.Cursor.Y), 10, cursorColor)
	}
}

// drawCard renders one card with its overlays.
func (g *Game) drawCard(c *sim.CardView) {
	if !g.camera.IsVisible(c.Position.X, c.Position.Y, c.Bounds.Size.X+c.Bounds.Size.Y) {
		return
	}

	tex, ok := g.textures.Texture(c.Variant)
	if ok {
		w := float32(tex.Width) * c.Scale.X
		h := float32(tex.Height) * c.Scale.Y
		src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
		dst := rl.Rectangle{X: c.Position.X, Y: c.Position.Y, Width: w, Height: h}
		origin := rl.Vector2{X: w / 2, Y: h / 2}

		if c.Selected {
			shadow := dst
			shadow.X += 4
			shadow.Y += 6
			rl.DrawRectanglePro(shadow, origin, 0, rl.Color{A: 80})
		}
		rl.DrawTexturePro(tex, src, dst, origin, 0, rl.White)
	}

	if g.overlays.IsEnabled(ui.OverlayBounds) {
		color := rl.SkyBlue
		if c.Selected {
			color = rl.Orange
		}
		rl.DrawRectangleLinesEx(toRectangle(c.Bounds), 1/g.camera.Zoom, color)
	}

	if g.overlays.IsEnabled(ui.OverlayTargets) && c.Dragging && !c.Selected {
		if info, ok := g.table.Inspect(c.Entity); ok {
			t := info.Card.Motion.Target
			rl.DrawLineV(toVector2(c.Position), toVector2(t), rl.Magenta)
			rl.DrawCircleV(toVector2(t), 3, rl.Magenta)
		}
	}
}

// drawGrid draws pile slot boundaries over the visible area.
func (g *Game) drawGrid() {
	cell := g.cfg.Derived.CellSize32
	minX, minY, maxX, maxY := g.camera.VisibleWorldBounds()

	x0 := float32(math.Floor(float64(minX/cell))) * cell
	y0 := float32(math.Floor(float64(minY/cell))) * cell
	for x := x0; x <= maxX; x += cell {
		rl.DrawLineV(rl.Vector2{X: x, Y: minY}, rl.Vector2{X: x, Y: maxY}, gridColor)
	}
	for y := y0; y <= maxY; y += cell {
		rl.DrawLineV(rl.Vector2{X: minX, Y: y}, rl.Vector2{X: maxX, Y: y}, gridColor)
	}
}

// drawPlayer renders the player as a frame-animated block facing its last direction.
func drawPlayer(p sim.PlayerView) {
	bob := float32(0)
	if p.Frame%2 == 1 {
		bob = -p.Size * 0.08
	}
	half := p.Size / 2
	body := rl.Rectangle{X: p.Position.X - half, Y: p.Position.Y - half + bob, Width: p.Size, Height: p.Size}
	rl.DrawRectangleRec(body, rl.Color{R: 230, G: 200, B: 90, A: 255})
	rl.DrawRectangleLinesEx(body, 2, rl.Color{R: 80, G: 60, B: 20, A: 255})

	// Eye on the facing side
	eyeX := p.Position.X + p.Facing*half*0.45
	rl.DrawCircleV(rl.Vector2{X: eyeX, Y: p.Position.Y - half*0.3 + bob}, p.Size*0.08, rl.Black)
}

// drawUI renders screen-space panels.
func (g *Game) drawUI() {
	counts := g.table.Summary()
	cursor := g.table.Cursor()

	g.hud.Draw(ui.HUDData{
		Title:   "Card Table",
		Counts:  counts,
		Tick:    g.table.Tick(),
		FPS:     rl.GetFPS(),
		Zoom:    g.camera.Zoom,
		Policy:  g.table.Selection().Policy(),
		Paused:  g.paused,
		Cursor:  [2]float32{cursor.X, cursor.Y},
		Pointer: g.lastInput.PointerOK,
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	g.drawInspector()

	if g.debugMode {
		g.tablePanel.Draw(ui.TablePanelData{Counts: counts, Drag: *g.table.Drag()})
		g.perfPanel.Draw(g.perfCollector.Stats(), g.registry)
		g.drawDebugPanel()
	}
}

// drawInspector shows the topmost card under the cursor.
func (g *Game) drawInspector() {
	g.hasHovered = false
	if g.hints == nil {
		return
	}

	cursor := g.hints.Cursor
	for i := len(g.hints.Cards) - 1; i >= 0; i-- {
		c := &g.hints.Cards[i]
		if c.Bounds.Contains(cursor) {
			g.hovered = c.Entity
			g.hasHovered = true
			break
		}
	}
	if !g.hasHovered {
		return
	}

	info, ok := g.table.Inspect(g.hovered)
	if !ok {
		return
	}
	data := ui.InspectorData{
		Info:        info,
		VariantName: g.textures.Name(info.Variant),
	}
	if info.Card.HasPile {
		data.Occupancy = g.table.Occupancy()[info.Card.Pile]
	}
	g.inspector.Draw(data)
}

func toRectangle(r components.Rect) rl.Rectangle {
	lo := r.Min()
	return rl.Rectangle{X: lo.X, Y: lo.Y, Width: r.Size.X, Height: r.Size.Y}
}

func toVector2(v components.Vec2) rl.Vector2 {
	return rl.Vector2{X: v.X, Y: v.Y}
}
