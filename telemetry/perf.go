package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for the pipeline stages. They match the system registry IDs.
const (
	PhaseCursor    = "cursor"
	PhaseSpawn     = "spawn"
	PhasePlayer    = "player"
	PhaseBounds    = "bounds"
	PhaseSelection = "selection"
	PhaseDrag      = "drag"
	PhaseSettle    = "settle"
	PhasePiles     = "piles"
	PhaseTelemetry = "telemetry"
)

// Phases lists every phase in pipeline order.
var Phases = []string{
	PhaseCursor, PhaseSpawn, PhasePlayer, PhaseBounds,
	PhaseSelection, PhaseDrag, PhaseSettle, PhasePiles, PhaseTelemetry,
}

const phaseCount = 9

var phaseIndex = func() map[string]int {
	m := make(map[string]int, len(Phases))
	for i, name := range Phases {
		m[name] = i
	}
	return m
}()

// tickSample is one frame: total time plus time per known phase.
type tickSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
}

// PerfCollector times pipeline phases over a ring of the last N frames.
// Phase names outside Phases count toward the frame total only.
type PerfCollector struct {
	ring []tickSample
	next int
	full bool

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      int // index into Phases, -1 when untracked

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over window frames (60 if < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]tickSample, window), phase: -1}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.cur = tickSample{}
	p.phase = -1
	p.phaseStart = p.tickStart
}

// StartPhase closes the running phase and opens the named one.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	if i, ok := phaseIndex[name]; ok {
		p.phase = i
	} else {
		p.phase = -1
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the frame and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.tickStart)

	p.ring[p.next] = p.cur
	p.next++
	if p.next == len(p.ring) {
		p.next = 0
		p.full = true
	}
}

// RecordFrame marks a presented frame (graphical mode).
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

func (p *PerfCollector) samples() []tickSample {
	if p.full {
		return p.ring
	}
	return p.ring[:p.next]
}

// PerfStats summarizes the frames currently in the ring.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P99TickDuration time.Duration

	PhaseAvg map[string]time.Duration // mean time per phase
	PhasePct map[string]float64       // share of the mean frame, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration // graphical mode only
	FPS           float64
}

// Stats computes aggregates over the ring. Maps are never nil.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}

	samples := p.samples()
	if len(samples) == 0 {
		return s
	}

	totals := make([]float64, len(samples))
	var phaseSum [phaseCount]time.Duration
	for i, smp := range samples {
		totals[i] = float64(smp.total)
		for j, d := range smp.phases {
			phaseSum[j] += d
		}
	}
	sort.Float64s(totals)

	mean := stat.Mean(totals, nil)
	s.AvgTickDuration = time.Duration(mean)
	s.MinTickDuration = time.Duration(totals[0])
	s.MaxTickDuration = time.Duration(totals[len(totals)-1])
	s.P99TickDuration = time.Duration(stat.Quantile(0.99, stat.Empirical, totals, nil))
	if mean > 0 {
		s.TicksPerSecond = float64(time.Second) / mean
	}

	n := time.Duration(len(samples))
	for j, sum := range phaseSum {
		if sum == 0 {
			continue
		}
		avg := sum / n
		s.PhaseAvg[Phases[j]] = avg
		if mean > 0 {
			s.PhasePct[Phases[j]] = float64(avg) / mean * 100
		}
	}
	return s
}

// attrs returns the flat key/value pairs shared by LogStats and LogValue.
func (s PerfStats) attrs() []slog.Attr {
	out := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("p99_tick_us", s.P99TickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		out = append(out, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			out = append(out, slog.Float64(phase+"_pct", pct))
		}
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := s.attrs()
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	slog.Info("perf", args...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	return slog.GroupValue(s.attrs()...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	RunID        string  `csv:"run_id"`
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	P99TickUS    int64   `csv:"p99_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	CursorPct    float64 `csv:"cursor_pct"`
	SpawnPct     float64 `csv:"spawn_pct"`
	PlayerPct    float64 `csv:"player_pct"`
	BoundsPct    float64 `csv:"bounds_pct"`
	SelectionPct float64 `csv:"selection_pct"`
	DragPct      float64 `csv:"drag_pct"`
	SettlePct    float64 `csv:"settle_pct"`
	PilesPct     float64 `csv:"piles_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(runID string, windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:        runID,
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		P99TickUS:    s.P99TickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		CursorPct:    s.PhasePct[PhaseCursor],
		SpawnPct:     s.PhasePct[PhaseSpawn],
		PlayerPct:    s.PhasePct[PhasePlayer],
		BoundsPct:    s.PhasePct[PhaseBounds],
		SelectionPct: s.PhasePct[PhaseSelection],
		DragPct:      s.PhasePct[PhaseDrag],
		SettlePct:    s.PhasePct[PhaseSettle],
		PilesPct:     s.PhasePct[PhasePiles],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
