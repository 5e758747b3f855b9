// Package game wires the card table pipeline to raylib input, rendering and telemetry.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/camera"
	"github.com/pthm-cable/cardpile/config"
	"github.com/pthm-cable/cardpile/renderer"
	"github.com/pthm-cable/cardpile/replay"
	"github.com/pthm-cable/cardpile/sim"
	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
	"github.com/pthm-cable/cardpile/ui"
)

// Options configures game construction.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	RunID          string
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Script         *replay.Script // headless input; nil uses the built-in demo
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete table state and its presentation.
type Game struct {
	cfg      *config.Config
	table    *sim.Table
	camera   *camera.Camera
	registry *systems.SystemRegistry

	// Assets (nil in headless mode)
	textures *TextureSet
	felt     *renderer.FeltRenderer

	// UI
	overlays   *ui.OverlayRegistry
	hud        *ui.HUD
	tablePanel *ui.TablePanel
	perfPanel  *ui.PerfPanel
	inspector  *ui.Inspector

	// Telemetry
	runID         string
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	arrivalBuf    []telemetry.ArrivalRecord

	// Headless input
	headless bool
	script   *replay.Script

	// State
	hints        *sim.RenderHints
	lastInput    sim.InputFrame
	paused       bool
	debugMode    bool
	hovered      ecs.Entity
	hasHovered   bool
	screenWidth  float32
	screenHeight float32
}

// NewGameWithOptions creates a new game. In graphical mode the raylib
// window must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:           cfg,
		registry:      systems.NewSystemRegistry(),
		runID:         opts.RunID,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		headless:      opts.Headless,
		script:        opts.Script,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
	}

	g.camera = camera.New(g.screenWidth, g.screenHeight, float32(cfg.Camera.MinZoom), float32(cfg.Camera.MaxZoom))

	var sizes systems.AssetSizer
	if opts.Headless {
		sizes = systems.SizesFromVariants(cfg.Cards.Variants)
		if g.script == nil {
			g.script = replay.Demo(g.screenWidth/2, g.screenHeight/2)
		}
	} else {
		g.textures = LoadTextures(cfg.Cards.Variants)
		sizes = g.textures
		g.felt = renderer.NewFeltRenderer(feltTileSize, feltColor, 1)

		g.overlays = ui.NewOverlayRegistry()
		g.hud = ui.NewHUD()
		g.tablePanel = ui.NewTablePanel(10, 120, 220, g.overlays)
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-240, 10)
		g.inspector = ui.NewInspector(int32(g.screenWidth)-230, 200, 220)
	}

	g.table = sim.NewTable(cfg, sizes, g.camera)

	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.table.SetPerf(g.perfCollector)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(g.runID, statsWindow, cfg.Derived.DT32)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g
}

// Update reads input and runs one pipeline step, unless paused.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	g.step(g.readInput())
}

// UpdateHeadless runs one pipeline step driven by the script.
func (g *Game) UpdateHeadless() {
	g.step(g.script.Frame(g.table.Tick()))
}

// step runs the pipeline once with perf timing and telemetry.
func (g *Game) step(in sim.InputFrame) {
	g.lastInput = in

	g.perfCollector.StartTick()
	g.hints = g.table.Step(in)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordTelemetry(g.hints)
	g.perfCollector.EndTick()
}

// Table exposes the pipeline, for inspection.
func (g *Game) Table() *sim.Table {
	return g.table
}

// Tick returns the number of completed pipeline steps.
func (g *Game) Tick() int64 {
	return g.table.Tick()
}

// ScriptLen returns the scripted frame count in headless mode.
func (g *Game) ScriptLen() int64 {
	if g.script == nil {
		return 0
	}
	return g.script.Len()
}

// Summary returns table-wide counts as of the last step.
func (g *Game) Summary() telemetry.Counts {
	return g.table.Summary()
}

// Unload releases all resources and closes output files.
func (g *Game) Unload() {
	if g.textures != nil {
		g.textures.Unload()
	}
	if g.felt != nil {
		g.felt.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
