package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
)

// SelectionSystem toggles the Selected state on pointer press/release edges.
type SelectionSystem struct {
	filter *ecs.Filter4[components.Position, components.Depth, components.Bounds, components.Card]
	policy string
}

// NewSelectionSystem creates a new selection system with the given hit policy.
func NewSelectionSystem(w *ecs.World, policy string) *SelectionSystem {
	s := &SelectionSystem{
		filter: ecs.NewFilter4[components.Position, components.Depth, components.Bounds, components.Card](w),
	}
	s.SetPolicy(policy)
	return s
}

// Policy returns the active hit policy.
func (s *SelectionSystem) Policy() string {
	return s.policy
}

// SetPolicy switches between config.SelectAll and config.SelectTopmost.
// Unknown values fall back to config.SelectAll.
func (s *SelectionSystem) SetPolicy(policy string) {
	if policy != config.SelectTopmost {
		policy = config.SelectAll
	}
	s.policy = policy
}

// Update applies this frame's edges. A press grabs every unselected card whose
// bounds contain the cursor (or only the topmost one, depending on policy) and
// clears its pile. A release lets go of every selected card.
func (s *SelectionSystem) Update(cursor components.Vec2, press, release bool) (grabbed, released int) {
	if !press && !release {
		return 0, 0
	}

	var top ecs.Entity
	hasTop := false
	if press && s.policy == config.SelectTopmost {
		top, hasTop = s.topmost(cursor)
	}

	query := s.filter.Query()
	for query.Next() {
		pos, _, bounds, card := query.Get()

		// Covered cards are not pickable under the topmost policy
		pickable := s.policy == config.SelectAll || (hasTop && query.Entity() == top)

		if press && pickable && hit(bounds, cursor) {
			if !card.IsSelected() {
				card.Select(pos.Vec2)
				grabbed++
			}
			continue
		}

		if release && card.IsSelected() {
			card.Release()
			released++
		}
	}

	return grabbed, released
}

// topmost finds the hit card with the highest depth. Ties go to the later spawn.
func (s *SelectionSystem) topmost(cursor components.Vec2) (ecs.Entity, bool) {
	var best ecs.Entity
	var bestZ float32
	var bestSeq int64
	found := false

	query := s.filter.Query()
	for query.Next() {
		_, depth, bounds, card := query.Get()
		if !hit(bounds, cursor) {
			continue
		}
		if !found || depth.Z > bestZ || (depth.Z == bestZ && card.Spawned > bestSeq) {
			best = query.Entity()
			bestZ = depth.Z
			bestSeq = card.Spawned
			found = true
		}
	}

	return best, found
}

// hit reports whether the cursor lies inside bounds that have been computed at least once.
func hit(bounds *components.Bounds, cursor components.Vec2) bool {
	return bounds.Valid && bounds.Rect.Contains(cursor)
}
