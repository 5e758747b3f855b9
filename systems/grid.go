package systems

import "github.com/pthm-cable/cardpile/components"

// Snap returns the anchor of the grid cell containing p:
// floor(p / cellSize) * cellSize + cellSize/2 per axis.
// Snap(Snap(p)) == Snap(p) because an anchor lies strictly inside its cell.
func Snap(p components.Vec2, cellSize float32) components.Vec2 {
	return components.PileAt(p, cellSize).Anchor(cellSize)
}

// SnapRect returns the cell-sized rectangle around Snap(p).
func SnapRect(p components.Vec2, cellSize float32) components.Rect {
	return components.RectFromCenterSize(Snap(p, cellSize), components.Splat(cellSize))
}

// arrived reports whether pos and target floor to the same integer point.
// This is an exact per-axis test, not a distance threshold.
func arrived(pos, target components.Vec2) bool {
	return floorf(pos.X) == floorf(target.X) && floorf(pos.Y) == floorf(target.Y)
}
