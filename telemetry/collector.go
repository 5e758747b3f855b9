package telemetry

import "math"

// Collector accumulates frame events within time windows and produces WindowStats.
type Collector struct {
	runID               string
	windowDurationTicks int64
	dt                  float32

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	frames        int
	spawns        int
	grabs         int
	releases      int
	arrivals      int
	arrivalFrames []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per frame (used for tick-to-time conversion)
func NewCollector(runID string, windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int64(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		runID:               runID,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFrame records one pipeline step's transitions.
// arrivalFrames holds release-to-arrival frame counts for cards that settled this frame.
func (c *Collector) RecordFrame(spawned, grabbed, released int, arrivalFrames []int) {
	c.frames++
	c.spawns += spawned
	c.grabs += grabbed
	c.releases += released
	c.arrivals += len(arrivalFrames)
	for _, f := range arrivalFrames {
		c.arrivalFrames = append(c.arrivalFrames, float64(f))
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, counts Counts) WindowStats {
	arrival := Summarize(c.arrivalFrames)

	stats := WindowStats{
		RunID:           c.runID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Frames:   c.frames,
		Spawns:   c.spawns,
		Grabs:    c.grabs,
		Releases: c.releases,
		Arrivals: c.arrivals,

		Cards:        counts.Cards,
		Held:         counts.Held,
		Moving:       counts.Moving,
		Resting:      counts.Resting,
		Piles:        counts.Piles,
		StackedPiles: counts.Stacked,
		MaxOccupancy: counts.MaxOccupancy,

		ArrivalMean: arrival.Mean,
		ArrivalStd:  arrival.Std,
		ArrivalP50:  arrival.P50,
		ArrivalP90:  arrival.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.frames = 0
	c.spawns = 0
	c.grabs = 0
	c.releases = 0
	c.arrivals = 0
	c.arrivalFrames = c.arrivalFrames[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
