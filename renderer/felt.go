// Package renderer draws the table surface.
package renderer

import (
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"
)

// Felt noise parameters.
const (
	feltScale     = 1.6  // noise radius on the tiling torus
	feltFineScale = 9.0  // fibre detail radius
	feltAmplitude = 18.0 // max brightness swing per channel
)

// FeltImage builds a seamlessly tiling felt texture around base. Noise is
// sampled on a 4D torus so opposite edges match.
func FeltImage(size int, base color.RGBA, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	coarse := opensimplex.NewNormalized(seed)
	fine := opensimplex.NewNormalized(seed + 1)

	for y := 0; y < size; y++ {
		b := 2 * math.Pi * float64(y) / float64(size)
		for x := 0; x < size; x++ {
			a := 2 * math.Pi * float64(x) / float64(size)

			n := 0.7*torus(coarse, a, b, feltScale) + 0.3*torus(fine, a, b, feltFineScale)
			shift := (n - 0.5) * 2 * feltAmplitude

			img.SetRGBA(x, y, color.RGBA{
				R: shade(base.R, shift),
				G: shade(base.G, shift),
				B: shade(base.B, shift),
				A: 255,
			})
		}
	}
	return img
}

func torus(n opensimplex.Noise, a, b, r float64) float64 {
	return n.Eval4(math.Cos(a)*r, math.Sin(a)*r, math.Cos(b)*r, math.Sin(b)*r)
}

func shade(c uint8, shift float64) uint8 {
	v := float64(c) + shift
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// FeltRenderer tiles a generated felt texture over the visible table.
type FeltRenderer struct {
	tex  rl.Texture2D
	size int
	base color.RGBA
	seed int64

	initialized bool
}

// NewFeltRenderer creates a felt renderer with size-pixel tiles.
func NewFeltRenderer(size int, base color.RGBA, seed int64) *FeltRenderer {
	return &FeltRenderer{size: size, base: base, seed: seed}
}

// Init uploads the texture (must be called after raylib window is created).
func (f *FeltRenderer) Init() {
	if f.initialized {
		return
	}

	img := rl.NewImageFromImage(FeltImage(f.size, f.base, f.seed))
	f.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureWrap(f.tex, rl.WrapRepeat)

	f.initialized = true
}

// Draw covers the given world rectangle with felt. Call inside 2D camera mode.
func (f *FeltRenderer) Draw(minX, minY, maxX, maxY float32) {
	if !f.initialized {
		f.Init()
	}

	// Anchor tiles to world multiples so the surface does not swim while panning
	s := float32(f.size)
	x0 := float32(math.Floor(float64(minX/s))) * s
	y0 := float32(math.Floor(float64(minY/s))) * s
	w := maxX - x0
	h := maxY - y0

	src := rl.Rectangle{Width: w, Height: h}
	dst := rl.Rectangle{X: x0, Y: y0, Width: w, Height: h}
	rl.DrawTexturePro(f.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (f *FeltRenderer) Unload() {
	if f.initialized {
		rl.UnloadTexture(f.tex)
		f.initialized = false
	}
}
