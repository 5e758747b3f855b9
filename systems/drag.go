package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
)

// DragParams holds the easing constants for held and released cards.
type DragParams struct {
	CellSize      float32
	StackStep     float32 // fan offset per stack index, both axes
	BaseRate      float32 // position easing for stack index 0; index i uses BaseRate*(i+1)
	DragScale     float32 // scale target while held
	DragScaleRate float32
	ReleaseRate   float32 // position and scale easing after release
	RestingScale  float32
}

// Placement is the computed drag target for one held card.
type Placement struct {
	Target components.Vec2
	Offset float32
	Z      float32
	Rate   float32
}

// StackPlacement returns the target for the card at stack index i:
// offset i*step on both axes, depth i+1, and position easing rate
// baseRate*(i+1) clamped to 1.
func StackPlacement(i int, cursor components.Vec2, step, baseRate float32) Placement {
	offset := float32(i) * step
	return Placement{
		Target: cursor.Add(components.Splat(offset)),
		Offset: offset,
		Z:      float32(i + 1),
		Rate:   clampFloat(baseRate*float32(i+1), 0, 1),
	}
}

// Arrival records a card settling into a pile.
type Arrival struct {
	Entity ecs.Entity
	Pile   components.PileID
	Frames int // frames between release and arrival
}

// DragResult is what the drag stage exposes to rendering and telemetry.
type DragResult struct {
	Held       int
	Preview    components.Rect // grid cell under the first held card
	HasPreview bool
	Arrivals   []Arrival
}

// DragSystem moves held cards toward the cursor and released cards into grid slots.
type DragSystem struct {
	filter   *ecs.Filter4[components.Position, components.Scale, components.Depth, components.Card]
	params   DragParams
	arrivals []Arrival
}

// NewDragSystem creates a new drag system.
func NewDragSystem(w *ecs.World, params DragParams) *DragSystem {
	return &DragSystem{
		filter: ecs.NewFilter4[components.Position, components.Scale, components.Depth, components.Card](w),
		params: params,
	}
}

// Params returns a pointer to the live tuning, for debug sliders.
func (s *DragSystem) Params() *DragParams {
	return &s.params
}

// Update runs the drag system. Held cards get stack indices in store
// iteration order. The returned Arrivals slice is reused across calls.
func (s *DragSystem) Update(cursor components.Vec2) DragResult {
	p := &s.params
	s.arrivals = s.arrivals[:0]
	var res DragResult

	query := s.filter.Query()
	for query.Next() {
		pos, scale, depth, card := query.Get()

		switch {
		case card.IsSelected():
			pl := StackPlacement(res.Held, cursor, p.StackStep, p.BaseRate)
			if res.Held == 0 {
				res.Preview = SnapRect(pl.Target, p.CellSize)
				res.HasPreview = true
			}
			res.Held++

			card.Motion.State = components.Dragging
			card.Motion.Target = pl.Target
			depth.Z = pl.Z
			pos.Vec2 = pos.Lerp(pl.Target, pl.Rate)
			scale.Vec2 = scale.Lerp(components.Splat(p.DragScale), p.DragScaleRate)

		case card.IsDragging():
			card.Motion.Target = Snap(card.Motion.Target, p.CellSize)
			card.Motion.Frames++

			pos.Vec2 = pos.Lerp(card.Motion.Target, p.ReleaseRate)
			scale.Vec2 = scale.Lerp(components.Splat(p.RestingScale), p.ReleaseRate)
			depth.Z = lerpf(depth.Z, 0, p.ReleaseRate)

			if arrived(pos.Vec2, card.Motion.Target) {
				pile := components.PileAt(card.Motion.Target, p.CellSize)
				s.arrivals = append(s.arrivals, Arrival{
					Entity: query.Entity(),
					Pile:   pile,
					Frames: card.Motion.Frames,
				})
				card.Arrive(pile)
				depth.Z = 0
			}
		}
	}

	res.Arrivals = s.arrivals
	return res
}
