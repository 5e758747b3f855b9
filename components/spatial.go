package components

// Position is an entity's world-space center.
type Position struct {
	Vec2
}

// Scale is the visual scale factor applied to the intrinsic asset size.
type Scale struct {
	Vec2
}

// Depth is the draw order. 0 is the table surface; held cards sit at stack index + 1.
type Depth struct {
	Z float32
}

// Bounds is the hit-test box, recomputed every frame from Position and Scale.
type Bounds struct {
	Rect  Rect
	Valid bool // false until the asset size has been known at least once
}

// Sprite selects the visual asset of an entity.
type Sprite struct {
	Variant int
}
