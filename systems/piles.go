package systems

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
)

// PileMarker is a stacking indicator for a slot holding more than one card.
type PileMarker struct {
	Pile   components.PileID
	Anchor components.Vec2
	Count  int
}

// PileAggregator rebuilds pile occupancy from scratch every frame.
// TODO: keep a PileID -> occupants index updated from Select/Arrive
// once tables grow past a few hundred cards.
type PileAggregator struct {
	filter    *ecs.Filter1[components.Card]
	cellSize  float32
	occupancy map[components.PileID]int
	markers   []PileMarker
}

// NewPileAggregator creates a new pile aggregator.
func NewPileAggregator(w *ecs.World, cellSize float32) *PileAggregator {
	return &PileAggregator{
		filter:    ecs.NewFilter1[components.Card](w),
		cellSize:  cellSize,
		occupancy: make(map[components.PileID]int),
	}
}

// Update counts cards per pile and returns markers for piles with more
// than one occupant, ordered by pile id. The returned slice is reused.
func (a *PileAggregator) Update() []PileMarker {
	clear(a.occupancy)

	query := a.filter.Query()
	for query.Next() {
		card := query.Get()
		if card.HasPile {
			a.occupancy[card.Pile]++
		}
	}

	a.markers = a.markers[:0]
	for id, n := range a.occupancy {
		if n > 1 {
			a.markers = append(a.markers, PileMarker{Pile: id, Anchor: id.Anchor(a.cellSize), Count: n})
		}
	}
	sort.Slice(a.markers, func(i, j int) bool {
		pi, pj := a.markers[i].Pile, a.markers[j].Pile
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return pi.X < pj.X
	})

	return a.markers
}

// Count returns the occupancy of a pile as of the last Update. Unknown piles count 0.
func (a *PileAggregator) Count(id components.PileID) int {
	return a.occupancy[id]
}

// Occupancy returns the last computed occupancy map. Callers must not modify it.
func (a *PileAggregator) Occupancy() map[components.PileID]int {
	return a.occupancy
}
