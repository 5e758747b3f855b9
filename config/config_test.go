package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Grid.CellSize != 75 {
		t.Errorf("expected cell size 75, got %v", cfg.Grid.CellSize)
	}
	if len(cfg.Cards.Variants) != 3 {
		t.Errorf("expected 3 variants, got %d", len(cfg.Cards.Variants))
	}
	if cfg.Selection.Policy != SelectAll {
		t.Errorf("expected policy %q, got %q", SelectAll, cfg.Selection.Policy)
	}
	if cfg.Derived.CellSize32 != 75 {
		t.Errorf("expected derived cell size 75, got %v", cfg.Derived.CellSize32)
	}
	if cfg.Derived.PlayerX != -300 || cfg.Derived.PlayerY != 200 {
		t.Errorf("expected player start (-300, 200), got (%v, %v)", cfg.Derived.PlayerX, cfg.Derived.PlayerY)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "grid:\n  cell_size: 40\nselection:\n  policy: topmost\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Grid.CellSize != 40 {
		t.Errorf("expected overlay cell size 40, got %v", cfg.Grid.CellSize)
	}
	if cfg.Selection.Policy != SelectTopmost {
		t.Errorf("expected policy %q, got %q", SelectTopmost, cfg.Selection.Policy)
	}
	// Untouched sections keep defaults
	if cfg.Cards.StackStep != 10 {
		t.Errorf("expected default stack step 10, got %v", cfg.Cards.StackStep)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"zero cell size", "grid:\n  cell_size: 0\n"},
		{"negative cell size", "grid:\n  cell_size: -5\n"},
		{"unknown policy", "selection:\n  policy: nearest\n"},
		{"no variants", "cards:\n  variants: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Cards.StackStep = 14

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Cards.StackStep != 14 {
		t.Errorf("expected stack step 14 after reload, got %v", reloaded.Cards.StackStep)
	}
}
