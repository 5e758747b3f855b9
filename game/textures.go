package game

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
)

// placeholderColors tint generated stand-ins for missing card images.
var placeholderColors = []rl.Color{
	{R: 40, G: 70, B: 140, A: 255},
	{R: 190, G: 40, B: 50, A: 255},
	{R: 30, G: 30, B: 35, A: 255},
}

// TextureSet holds one texture per card variant.
type TextureSet struct {
	textures []rl.Texture2D
	names    []string
}

// LoadTextures loads each variant's image. Missing files get a generated
// placeholder of the configured size.
func LoadTextures(variants []config.VariantConfig) *TextureSet {
	ts := &TextureSet{
		textures: make([]rl.Texture2D, len(variants)),
		names:    make([]string, len(variants)),
	}

	for i, v := range variants {
		ts.names[i] = v.Name

		if v.Texture != "" {
			if _, err := os.Stat(v.Texture); err == nil {
				ts.textures[i] = rl.LoadTexture(v.Texture)
				continue
			}
			slog.Warn("card texture missing, using placeholder", "variant", v.Name, "path", v.Texture)
		}

		color := placeholderColors[i%len(placeholderColors)]
		img := rl.GenImageColor(int(v.Width), int(v.Height), color)
		rl.ImageDrawRectangleLines(img, rl.Rectangle{X: 2, Y: 2, Width: float32(v.Width) - 4, Height: float32(v.Height) - 4}, 2, rl.RayWhite)
		ts.textures[i] = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}

	return ts
}

// IntrinsicSize implements systems.AssetSizer. ok is false until the
// variant's texture is on the GPU.
func (ts *TextureSet) IntrinsicSize(variant int) (components.Vec2, bool) {
	if variant < 0 || variant >= len(ts.textures) {
		return components.Vec2{}, false
	}
	tex := ts.textures[variant]
	if tex.ID == 0 {
		return components.Vec2{}, false
	}
	return components.Vec2{X: float32(tex.Width), Y: float32(tex.Height)}, true
}

// Texture returns the texture for a variant.
func (ts *TextureSet) Texture(variant int) (rl.Texture2D, bool) {
	if variant < 0 || variant >= len(ts.textures) {
		return rl.Texture2D{}, false
	}
	return ts.textures[variant], ts.textures[variant].ID != 0
}

// Name returns the configured variant name.
func (ts *TextureSet) Name(variant int) string {
	if variant < 0 || variant >= len(ts.names) {
		return ""
	}
	return ts.names[variant]
}

// Unload releases all textures.
func (ts *TextureSet) Unload() {
	for _, tex := range ts.textures {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
	}
}
