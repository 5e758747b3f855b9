// Package config provides configuration loading and access for the card table.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Selection policies for overlapping cards under the pointer.
const (
	SelectAll     = "all"     // every hit card is grabbed
	SelectTopmost = "topmost" // only the highest card is grabbed
)

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Grid      GridConfig      `yaml:"grid"`
	Cards     CardsConfig     `yaml:"cards"`
	Selection SelectionConfig `yaml:"selection"`
	Player    PlayerConfig    `yaml:"player"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds frame timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// GridConfig holds pile grid parameters.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"` // world units per pile slot
}

// VariantConfig describes one card face/back.
// Width and Height are the intrinsic pixel size used when no texture is loaded (headless).
type VariantConfig struct {
	Name    string  `yaml:"name"`
	Texture string  `yaml:"texture"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
}

// CardsConfig holds drag, release and settle tuning.
type CardsConfig struct {
	RestingScale  float64         `yaml:"resting_scale"`
	DragScale     float64         `yaml:"drag_scale"`      // magnification while held
	StackStep     float64         `yaml:"stack_step"`      // diagonal fan offset per stack index
	BaseRate      float64         `yaml:"base_rate"`       // position easing, multiplied by (index+1)
	DragScaleRate float64         `yaml:"drag_scale_rate"` // scale easing while held
	ReleaseRate   float64         `yaml:"release_rate"`    // position and scale easing after release
	SettleRate    float64         `yaml:"settle_rate"`     // scale easing at rest
	InitialCards  int             `yaml:"initial_cards"`
	Variants      []VariantConfig `yaml:"variants"`
}

// SelectionConfig holds hit-test policy.
type SelectionConfig struct {
	Policy string `yaml:"policy"` // "all" or "topmost"
}

// PlayerConfig holds the player sprite parameters.
type PlayerConfig struct {
	Speed     float64   `yaml:"speed"` // world units per second
	Size      float64   `yaml:"size"`
	Frames    int       `yaml:"frames"`
	FrameTime float64   `yaml:"frame_time"` // seconds per animation frame
	Start     []float64 `yaml:"start"`      // [x, y]
}

// CameraConfig holds viewport constraints.
type CameraConfig struct {
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	PanSpeed float64 `yaml:"pan_speed"` // screen pixels per frame
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	PerfWindow  int     `yaml:"perf_window"`  // ticks
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32
	CellSize32 float32
	ScreenW32  float32
	ScreenH32  float32
	PlayerX    float32
	PlayerY    float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the pipeline cannot run with.
func (c *Config) validate() error {
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("grid.cell_size must be positive, got %v", c.Grid.CellSize)
	}
	if len(c.Cards.Variants) == 0 {
		return fmt.Errorf("cards.variants must not be empty")
	}
	switch c.Selection.Policy {
	case "":
		c.Selection.Policy = SelectAll
	case SelectAll, SelectTopmost:
	default:
		return fmt.Errorf("selection.policy: unknown policy %q", c.Selection.Policy)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.CellSize32 = float32(c.Grid.CellSize)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if len(c.Player.Start) >= 2 {
		c.Derived.PlayerX = float32(c.Player.Start[0])
		c.Derived.PlayerY = float32(c.Player.Start[1])
	}
	if c.Player.Frames < 1 {
		c.Player.Frames = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
