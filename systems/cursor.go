package systems

import "github.com/pthm-cable/cardpile/components"

// Projector converts screen coordinates into world coordinates.
// camera.Camera satisfies it.
type Projector interface {
	ScreenToWorld(sx, sy float32) (wx, wy float32)
}

// CursorResolver tracks the last known world-space pointer position.
type CursorResolver struct {
	proj   Projector
	cursor components.Vec2
}

// NewCursorResolver creates a resolver whose cursor starts at the world origin.
func NewCursorResolver(proj Projector) *CursorResolver {
	return &CursorResolver{proj: proj}
}

// Update projects the pointer into world space. When the pointer is
// unavailable the previous cursor is kept.
func (r *CursorResolver) Update(pointer components.Vec2, ok bool) components.Vec2 {
	if !ok || r.proj == nil {
		return r.cursor
	}
	wx, wy := r.proj.ScreenToWorld(pointer.X, pointer.Y)
	r.cursor = components.Vec2{X: wx, Y: wy}
	return r.cursor
}

// Cursor returns the last resolved world position.
func (r *CursorResolver) Cursor() components.Vec2 {
	return r.cursor
}

// Reset overwrites the cursor, e.g. with a caller-supplied default.
func (r *CursorResolver) Reset(p components.Vec2) {
	r.cursor = p
}
