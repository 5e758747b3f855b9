package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
)

// SettleSystem relaxes idle cards back to their resting scale.
type SettleSystem struct {
	filter  *ecs.Filter2[components.Scale, components.Card]
	resting float32
	rate    float32
}

// NewSettleSystem creates a new settle system.
func NewSettleSystem(w *ecs.World, resting, rate float32) *SettleSystem {
	return &SettleSystem{
		filter:  ecs.NewFilter2[components.Scale, components.Card](w),
		resting: resting,
		rate:    clamp01(rate),
	}
}

// Update runs the settle system.
func (s *SettleSystem) Update() {
	target := components.Splat(s.resting)

	query := s.filter.Query()
	for query.Next() {
		scale, card := query.Get()
		if card.IsSelected() || card.IsDragging() {
			continue
		}
		scale.Vec2 = scale.Lerp(target, s.rate)
	}
}
