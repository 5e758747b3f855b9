package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
)

// AssetSizer reports the intrinsic pixel size of a sprite variant.
// ok is false while the asset is not loaded yet.
type AssetSizer interface {
	IntrinsicSize(variant int) (size components.Vec2, ok bool)
}

// BoundsSystem recomputes hit-test boxes from position and scale.
type BoundsSystem struct {
	filter *ecs.Filter4[components.Position, components.Scale, components.Sprite, components.Bounds]
	sizes  AssetSizer
}

// NewBoundsSystem creates a new bounds system.
func NewBoundsSystem(w *ecs.World, sizes AssetSizer) *BoundsSystem {
	return &BoundsSystem{
		filter: ecs.NewFilter4[components.Position, components.Scale, components.Sprite, components.Bounds](w),
		sizes:  sizes,
	}
}

// Update runs the bounds system. Entities whose asset is not loaded keep
// their previous bounds for this frame.
func (s *BoundsSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, scale, sprite, bounds := query.Get()

		size, ok := s.sizes.IntrinsicSize(sprite.Variant)
		if !ok {
			continue
		}

		bounds.Rect = components.RectFromCenterSize(pos.Vec2, size.Mul(scale.Vec2))
		bounds.Valid = true
	}
}

// StaticSizes serves intrinsic sizes from a fixed table (headless runs and tests).
type StaticSizes []components.Vec2

// IntrinsicSize implements AssetSizer.
func (s StaticSizes) IntrinsicSize(variant int) (components.Vec2, bool) {
	if variant < 0 || variant >= len(s) {
		return components.Vec2{}, false
	}
	return s[variant], true
}

// SizesFromVariants builds a static size table from the configured variants.
func SizesFromVariants(variants []config.VariantConfig) StaticSizes {
	sizes := make(StaticSizes, len(variants))
	for i, v := range variants {
		sizes[i] = components.Vec2{X: float32(v.Width), Y: float32(v.Height)}
	}
	return sizes
}
