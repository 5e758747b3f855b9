package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Counts  telemetry.Counts
	Tick    int64
	FPS     int32
	Zoom    float32
	Policy  string
	Paused  bool
	Cursor  [2]float32
	Pointer bool // pointer inside the viewport
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	c := data.Counts
	rl.DrawText(
		fmt.Sprintf("Cards: %d | Held: %d | Moving: %d | Piles: %d (stacked %d, max %d)",
			c.Cards, c.Held, c.Moving, c.Piles, c.Stacked, c.MaxOccupancy),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Zoom: %.2fx | Select: %s", data.Tick, data.FPS, data.Zoom, data.Policy),
		10, 55, 16, rl.LightGray,
	)

	cursorText := fmt.Sprintf("Cursor: (%.0f, %.0f)", data.Cursor[0], data.Cursor[1])
	if !data.Pointer {
		cursorText += " [outside]"
	}
	rl.DrawText(cursorText, 10, 75, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the pipeline stage timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders per-stage timing in pipeline order, labelled from the registry.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x := p.x
	y := p.y

	rl.DrawText("Pipeline", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range telemetry.Phases {
		avg, ok := stats.PhaseAvg[id]
		if !ok {
			continue
		}
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		name := id
		if registry != nil {
			name = registry.GetName(id)
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
