package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Counts is a snapshot of table-wide card and pile counts.
type Counts struct {
	Cards        int
	Held         int
	Moving       int
	Resting      int
	Piles        int // occupied slots
	Stacked      int // slots with more than one card
	MaxOccupancy int
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during window
	Frames   int `csv:"frames"`
	Spawns   int `csv:"spawns"`
	Grabs    int `csv:"grabs"`
	Releases int `csv:"releases"`
	Arrivals int `csv:"arrivals"`

	// Table state at window end
	Cards        int `csv:"cards"`
	Held         int `csv:"held"`
	Moving       int `csv:"moving"`
	Resting      int `csv:"resting"`
	Piles        int `csv:"piles"`
	StackedPiles int `csv:"stacked_piles"`
	MaxOccupancy int `csv:"max_occupancy"`

	// Frames from release to arrival
	ArrivalMean float64 `csv:"arrival_frames_mean"`
	ArrivalStd  float64 `csv:"arrival_frames_std"`
	ArrivalP50  float64 `csv:"arrival_frames_p50"`
	ArrivalP90  float64 `csv:"arrival_frames_p90"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean float64
	Std  float64
	P50  float64
	P90  float64
}

// Summarize computes mean, sample standard deviation and empirical
// quantiles. Empty input yields zeros; a single value has zero spread.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		Mean: stat.Mean(sorted, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if n > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("spawns", s.Spawns),
		slog.Int("grabs", s.Grabs),
		slog.Int("releases", s.Releases),
		slog.Int("arrivals", s.Arrivals),
		slog.Int("cards", s.Cards),
		slog.Int("held", s.Held),
		slog.Int("moving", s.Moving),
		slog.Int("resting", s.Resting),
		slog.Int("piles", s.Piles),
		slog.Int("stacked_piles", s.StackedPiles),
		slog.Int("max_occupancy", s.MaxOccupancy),
		slog.Float64("arrival_frames_mean", s.ArrivalMean),
		slog.Float64("arrival_frames_std", s.ArrivalStd),
		slog.Float64("arrival_frames_p50", s.ArrivalP50),
		slog.Float64("arrival_frames_p90", s.ArrivalP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
