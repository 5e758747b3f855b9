package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/cardpile/config"
	"github.com/pthm-cable/cardpile/game"
	"github.com/pthm-cable/cardpile/replay"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by a script")
	scriptPath := flag.String("script", "", "Input script CSV for headless runs (empty = built-in demo)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited, or script length when headless)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(newLogger(os.Stdout, *logStats))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	runID := uuid.NewString()

	opts := game.Options{
		Config:         cfg,
		RunID:          runID,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
	}

	if *headless {
		if *scriptPath != "" {
			script, err := replay.Load(*scriptPath)
			if err != nil {
				slog.Error("failed to load script", "error", err)
				os.Exit(1)
			}
			opts.Script = script
		}

		// Headless mode - no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		limit := int64(*maxTicks)
		if limit <= 0 {
			limit = g.ScriptLen()
		}

		slog.Info("starting headless run",
			"run_id", runID,
			"script", *scriptPath,
			"max_ticks", limit,
		)

		for g.Tick() < limit {
			g.UpdateHeadless()
		}

		summary := g.Summary()
		slog.Info("run complete",
			"tick", g.Tick(),
			"cards", summary.Cards,
			"held", summary.Held,
			"moving", summary.Moving,
			"resting", summary.Resting,
			"piles", summary.Piles,
			"stacked_piles", summary.Stacked,
		)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Card Table")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting table", "run_id", runID)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// newLogger builds the JSON logger. --log-stats lowers the level to debug so
// per-arrival records are emitted.
func newLogger(w io.Writer, logStats bool) *slog.Logger {
	level := slog.LevelInfo
	if logStats {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
