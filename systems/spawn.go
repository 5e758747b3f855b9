package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
)

// VariantRotator cycles through a fixed number of sprite variants.
// Next increments before indexing, so a fresh rotator over 3 variants
// yields 1, 2, 0, 1, ...
type VariantRotator struct {
	counter int
	n       int
}

// NewVariantRotator creates a rotator over n variants.
func NewVariantRotator(n int) *VariantRotator {
	if n < 1 {
		n = 1
	}
	return &VariantRotator{n: n}
}

// Next advances and returns the variant index.
func (r *VariantRotator) Next() int {
	r.counter = (r.counter + 1) % r.n
	return r.counter
}

// SpawnSystem creates card entities.
type SpawnSystem struct {
	mapper  *ecs.Map6[components.Position, components.Scale, components.Depth, components.Bounds, components.Sprite, components.Card]
	rotator *VariantRotator
	resting float32
	seq     int64
}

// NewSpawnSystem creates a new spawn system for the given number of variants.
func NewSpawnSystem(w *ecs.World, variants int, resting float32) *SpawnSystem {
	return &SpawnSystem{
		mapper:  ecs.NewMap6[components.Position, components.Scale, components.Depth, components.Bounds, components.Sprite, components.Card](w),
		rotator: NewVariantRotator(variants),
		resting: resting,
	}
}

// Update spawns one card at the cursor when requested, with the next variant.
func (s *SpawnSystem) Update(cursor components.Vec2, requested bool) (ecs.Entity, bool) {
	if !requested {
		return ecs.Entity{}, false
	}
	return s.Spawn(cursor, s.rotator.Next()), true
}

// Spawn creates a resting, unselected card without a pile.
func (s *SpawnSystem) Spawn(at components.Vec2, variant int) ecs.Entity {
	s.seq++
	pos := components.Position{Vec2: at}
	scale := components.Scale{Vec2: components.Splat(s.resting)}
	depth := components.Depth{}
	bounds := components.Bounds{}
	sprite := components.Sprite{Variant: variant}
	card := components.Card{Spawned: s.seq}
	return s.mapper.NewEntity(&pos, &scale, &depth, &bounds, &sprite, &card)
}
