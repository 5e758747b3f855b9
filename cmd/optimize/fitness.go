package main

import (
	"sync"

	"github.com/pthm-cable/cardpile/camera"
	"github.com/pthm-cable/cardpile/config"
	"github.com/pthm-cable/cardpile/replay"
	"github.com/pthm-cable/cardpile/sim"
	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
)

// Trial is one scripted drag-and-drop, as a screen-space drop offset from
// the viewport center.
type Trial struct {
	DX, DY float32
}

// DefaultTrials covers short and long drops in each direction.
var DefaultTrials = []Trial{
	{DX: 50, DY: 50},
	{DX: -160, DY: 40},
	{DX: 240, DY: -120},
	{DX: 20, DY: 300},
}

// Fitness weights.
const (
	lagWeight   = 0.5  // per cell of mean held-card lag
	missPenalty = 10.0 // per released card that never arrived
)

// runResult holds the measurements from a single trial.
type runResult struct {
	stats    telemetry.WindowStats
	released int
	lag      float64 // mean distance from top held card to cursor, in cells
}

// FitnessEvaluator runs headless drag trials and computes fitness.
type FitnessEvaluator struct {
	params        *ParamVector
	trials        []Trial
	baseConfig    *config.Config
	targetArrival float64 // frames from release to arrival

	mu          sync.Mutex
	lastArrival float64
	lastLag     float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, trials []Trial, targetArrival float64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		trials:        trials,
		baseConfig:    baseCfg,
		targetArrival: targetArrival,
	}
}

// LastMetrics returns the mean arrival frames and lag from the most recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() (arrival, lag float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastArrival, fe.lastLag
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]*runResult, len(fe.trials))
	var wg sync.WaitGroup
	for i, trial := range fe.trials {
		wg.Add(1)
		go func(idx int, tr Trial) {
			defer wg.Done()
			results[idx] = runTrial(cfg, tr)
		}(i, trial)
	}
	wg.Wait()

	var total, arrival, lag float64
	for _, r := range results {
		total += fe.computeFitness(r)
		arrival += r.stats.ArrivalMean
		lag += r.lag
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastArrival = arrival / n
	fe.lastLag = lag / n
	fe.mu.Unlock()

	return total / n
}

// runTrial drives a fresh table with one drag-and-drop script and returns
// a single stats window spanning the whole run.
func runTrial(cfg *config.Config, tr Trial) *runResult {
	cx, cy := cfg.Derived.ScreenW32/2, cfg.Derived.ScreenH32/2
	cam := camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, float32(cfg.Camera.MinZoom), float32(cfg.Camera.MaxZoom))
	table := sim.NewTable(cfg, systems.SizesFromVariants(cfg.Cards.Variants), cam)
	script := replay.DragAndDrop(cx, cy, tr.DX, tr.DY)
	collector := telemetry.NewCollector("tune", float64(script.Len())*float64(cfg.Derived.DT32), cfg.Derived.DT32)

	result := &runResult{}
	var lagSum float64
	var lagFrames int

	for tick := int64(0); tick < script.Len(); tick++ {
		h := table.Step(script.Frame(tick))
		ev := h.Events
		collector.RecordFrame(ev.Spawned, ev.Grabbed, ev.Released, ev.ArrivalFrames)
		result.released += ev.Released

		if d, ok := topHeldLag(h); ok {
			lagSum += d / float64(cfg.Derived.CellSize32)
			lagFrames++
		}
	}

	result.stats = collector.Flush(table.Tick(), table.Summary())
	if lagFrames > 0 {
		result.lag = lagSum / float64(lagFrames)
	}
	return result
}

// topHeldLag returns the distance from the lowest-index held card to the cursor.
func topHeldLag(h *sim.RenderHints) (float64, bool) {
	found := false
	var top sim.CardView
	for _, c := range h.Cards {
		if c.Selected && (!found || c.Z < top.Z) {
			top = c
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return float64(top.Position.Sub(h.Cursor).Len()), true
}

// copyConfig returns a copy of the base config safe to mutate card rates on.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Cards.Variants = append([]config.VariantConfig(nil), fe.baseConfig.Cards.Variants...)
	cfg.Player.Start = append([]float64(nil), fe.baseConfig.Player.Start...)
	return &cfg
}

// computeFitness scores one trial (lower = better).
// Squared relative arrival error, plus held-card lag, plus a penalty for
// cards still travelling when the script ends.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	missed := r.released - r.stats.Arrivals
	if missed < 0 {
		missed = 0
	}
	if r.stats.Arrivals == 0 {
		return missPenalty*float64(max(missed, 1)) + lagWeight*r.lag
	}

	relErr := (r.stats.ArrivalMean - fe.targetArrival) / fe.targetArrival
	return relErr*relErr + lagWeight*r.lag + missPenalty*float64(missed)
}

