package game

import (
	"log/slog"

	"github.com/pthm-cable/cardpile/sim"
	"github.com/pthm-cable/cardpile/telemetry"
)

// recordTelemetry feeds one step's events to the collector and the arrival log.
func (g *Game) recordTelemetry(h *sim.RenderHints) {
	ev := &h.Events
	g.collector.RecordFrame(ev.Spawned, ev.Grabbed, ev.Released, ev.ArrivalFrames)

	if len(ev.Arrivals) > 0 {
		occupancy := g.table.Occupancy()
		g.arrivalBuf = g.arrivalBuf[:0]
		for _, a := range ev.Arrivals {
			rec := telemetry.ArrivalRecord{
				RunID:     g.runID,
				Tick:      h.Tick,
				PileX:     a.Pile.X,
				PileY:     a.Pile.Y,
				Frames:    a.Frames,
				Occupancy: occupancy[a.Pile],
			}
			g.arrivalBuf = append(g.arrivalBuf, rec)
			if g.logStats {
				slog.Debug("arrival", "tick", rec.Tick, "pile_x", rec.PileX, "pile_y", rec.PileY, "frames", rec.Frames, "occupancy", rec.Occupancy)
			}
		}
		if err := g.outputManager.WriteArrivals(g.arrivalBuf); err != nil {
			slog.Error("failed to write arrivals", "error", err)
		}
	}

	g.flushTelemetry()
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	tick := g.table.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.table.Summary())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.runID, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
