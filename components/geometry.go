package components

import "math"

// Vec2 is a 2D vector in world or screen units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled component-wise by o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Lerp moves v toward target by fraction t: v + (target - v) * t.
func (v Vec2) Lerp(target Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (target.X-v.X)*t,
		Y: v.Y + (target.Y-v.Y)*t,
	}
}

// Floor returns v with both components rounded down.
func (v Vec2) Floor() Vec2 {
	return Vec2{
		X: float32(math.Floor(float64(v.X))),
		Y: float32(math.Floor(float64(v.Y))),
	}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Splat returns a vector with both components set to s.
func Splat(s float32) Vec2 {
	return Vec2{s, s}
}

// Rect is an axis-aligned rectangle stored by center and full size,
// so center and size read back exactly as written.
type Rect struct {
	Center Vec2
	Size   Vec2
}

// RectFromCenterSize builds a rectangle centered at c with the given size.
func RectFromCenterSize(c, size Vec2) Rect {
	return Rect{Center: c, Size: size}
}

// Min returns the lower corner.
func (r Rect) Min() Vec2 {
	return Vec2{r.Center.X - r.Size.X/2, r.Center.Y - r.Size.Y/2}
}

// Max returns the upper corner.
func (r Rect) Max() Vec2 {
	return Vec2{r.Center.X + r.Size.X/2, r.Center.Y + r.Size.Y/2}
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}
