package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/telemetry"
)

// CardInfo is a copy of one card's state.
type CardInfo struct {
	Position components.Vec2
	Scale    components.Vec2
	Z        float32
	Bounds   components.Bounds
	Variant  int
	Card     components.Card
}

// Inspect returns a copy of a card's components. ok is false for
// entities that are not cards.
func (t *Table) Inspect(e ecs.Entity) (CardInfo, bool) {
	posMap := ecs.NewMap[components.Position](t.world)
	cardMap := ecs.NewMap[components.Card](t.world)
	if !t.world.Alive(e) || !cardMap.Has(e) {
		return CardInfo{}, false
	}

	scaleMap := ecs.NewMap[components.Scale](t.world)
	depthMap := ecs.NewMap[components.Depth](t.world)
	spriteMap := ecs.NewMap[components.Sprite](t.world)

	return CardInfo{
		Position: posMap.Get(e).Vec2,
		Scale:    scaleMap.Get(e).Vec2,
		Z:        depthMap.Get(e).Z,
		Bounds:   *t.boundsMap.Get(e),
		Variant:  spriteMap.Get(e).Variant,
		Card:     *cardMap.Get(e),
	}, true
}

// Summary counts cards by state and piles by occupancy as of the last Step.
func (t *Table) Summary() telemetry.Counts {
	var s telemetry.Counts

	query := t.viewFilter.Query()
	for query.Next() {
		_, _, _, _, card := query.Get()
		s.Cards++
		switch {
		case card.IsSelected():
			s.Held++
		case card.IsDragging():
			s.Moving++
		default:
			s.Resting++
		}
	}

	for _, n := range t.piles.Occupancy() {
		s.Piles++
		if n > 1 {
			s.Stacked++
		}
		if n > s.MaxOccupancy {
			s.MaxOccupancy = n
		}
	}
	return s
}

// Occupancy returns the pile occupancy computed by the last Step.
func (t *Table) Occupancy() map[components.PileID]int {
	return t.piles.Occupancy()
}
