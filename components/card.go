// Package components defines ECS components for the card table.
package components

import "math"

// SelectionState records whether a card is held by the pointer.
type SelectionState uint8

const (
	Unselected SelectionState = iota
	Selected
)

// String returns a short label for logs and the debug panel.
func (s SelectionState) String() string {
	if s == Selected {
		return "selected"
	}
	return "unselected"
}

// MotionState records whether a card has an in-flight target.
type MotionState uint8

const (
	AtRest MotionState = iota
	Dragging
)

// String returns a short label for logs and the debug panel.
func (m MotionState) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "at_rest"
}

// Motion is the card's movement state. Target is meaningful only while Dragging.
type Motion struct {
	State  MotionState
	Target Vec2
	Frames int // frames spent unselected while still dragging
}

// PileID identifies a grid slot: floor(position / cellSize) per axis.
type PileID struct {
	X, Y int32
}

// PileAt returns the slot containing p.
func PileAt(p Vec2, cellSize float32) PileID {
	return PileID{
		X: int32(math.Floor(float64(p.X) / float64(cellSize))),
		Y: int32(math.Floor(float64(p.Y) / float64(cellSize))),
	}
}

// Anchor returns the world-space center of the slot.
func (id PileID) Anchor(cellSize float32) Vec2 {
	c := float64(cellSize)
	return Vec2{
		X: float32(float64(id.X)*c + c/2),
		Y: float32(float64(id.Y)*c + c/2),
	}
}

// Card holds the per-card state machine:
//
//	AtRest(pile?) --press+hit--> Selected, Dragging
//	Selected      --release----> Unselected, Dragging
//	Dragging      --arrival----> AtRest(pile)
//
// Pile is only ever set while AtRest and unselected; the transition
// methods below are the only writers.
type Card struct {
	Selection SelectionState
	Motion    Motion
	Pile      PileID
	HasPile   bool
	Spawned   int64 // spawn sequence number, breaks hit-test ties
}

// IsSelected reports whether the card is held.
func (c *Card) IsSelected() bool {
	return c.Selection == Selected
}

// IsDragging reports whether the card has an in-flight target.
func (c *Card) IsDragging() bool {
	return c.Motion.State == Dragging
}

// Select grabs the card, dropping any pile membership.
// from is the card's current position, used as the initial target.
func (c *Card) Select(from Vec2) {
	c.Selection = Selected
	c.HasPile = false
	c.Pile = PileID{}
	c.Motion = Motion{State: Dragging, Target: from}
}

// Release lets go of the card. It keeps its last target and keeps moving.
func (c *Card) Release() {
	c.Selection = Unselected
	c.Motion.Frames = 0
}

// Arrive settles the card into the given pile.
func (c *Card) Arrive(pile PileID) {
	c.Motion = Motion{State: AtRest}
	c.Pile = pile
	c.HasPile = true
}
