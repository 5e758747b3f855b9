package ui

import (
	"testing"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/sim"
	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayPreview) || !reg.IsEnabled(OverlayPileCounts) || !reg.IsEnabled(OverlayCursor) {
		t.Error("table overlays should start enabled")
	}
	if reg.IsEnabled(OverlayGrid) || reg.IsEnabled(OverlayBounds) || reg.IsEnabled(OverlayTargets) {
		t.Error("debug overlays should start disabled")
	}

	cats := reg.Categories()
	if len(cats) != 2 || cats[0] != "table" || cats[1] != "debug" {
		t.Errorf("unexpected categories %v", cats)
	}
}

func TestOverlayToggleExclusive(t *testing.T) {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: "a", Exclusive: []OverlayID{"b"}})
	reg.Register(OverlayDescriptor{ID: "b", Exclusive: []OverlayID{"a"}})

	reg.SetEnabled("b", true)
	if !reg.Toggle("a") {
		t.Fatal("expected a enabled after toggle")
	}
	if reg.IsEnabled("b") {
		t.Error("enabling a should disable b")
	}
	if reg.Toggle("missing") {
		t.Error("toggling an unknown overlay should report false")
	}

	enabled := reg.EnabledOverlays()
	if len(enabled) != 1 || enabled[0] != "a" {
		t.Errorf("unexpected enabled overlays %v", enabled)
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()
	desc, _ := reg.Get(OverlayGrid)

	id, state, ok := reg.HandleKeyPress(desc.Key)
	if !ok || id != OverlayGrid || !state {
		t.Errorf("HandleKeyPress = (%v, %v, %v), want (grid, true, true)", id, state, ok)
	}
	if _, _, ok := reg.HandleKeyPress(0x7fff); ok {
		t.Error("unbound key should not toggle")
	}
}

func TestBarFraction(t *testing.T) {
	tests := []struct {
		value float32
		rng   FieldRange
		want  float32
	}{
		{0.5, DefaultRange(), 0.5},
		{-1, DefaultRange(), 0},
		{3, DefaultRange(), 1},
		{1.2, FieldRange{Min: 0, Max: 2}, 0.6},
		{1, FieldRange{Min: 1, Max: 1}, 0},
	}
	for _, tt := range tests {
		got := BarFraction(tt.value, tt.rng)
		if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("BarFraction(%v, %v) = %v, want %v", tt.value, tt.rng, got, tt.want)
		}
	}
}

func TestFieldText(t *testing.T) {
	fd := FieldDescriptor{Getter: func(any) float32 { return 1.5 }}
	if got := FieldText(fd, nil); got != "1.50" {
		t.Errorf("default format: got %q", got)
	}
	fd.Format = "%.0f"
	if got := FieldText(fd, nil); got != "2" {
		t.Errorf("custom format: got %q", got)
	}
	fd.TextGetter = func(any) string { return "text" }
	if got := FieldText(fd, nil); got != "text" {
		t.Errorf("text getter: got %q", got)
	}
}

func TestCardSectionsVisibility(t *testing.T) {
	theme := DefaultTheme()
	sections := CardSections()
	byID := make(map[string]SectionDescriptor)
	for _, sd := range sections {
		byID[sd.ID] = sd
	}

	resting := InspectorData{Info: sim.CardInfo{Card: components.Card{
		HasPile: true,
		Pile:    components.PileID{X: 1, Y: 2},
	}}, Occupancy: 3}

	if sectionHeight(theme, byID["motion"], resting) != 0 {
		t.Error("motion section should be hidden for a resting card")
	}
	if sectionHeight(theme, byID["pile"], resting) == 0 {
		t.Error("pile section should be visible for a piled card")
	}

	var held components.Card
	held.Select(components.Vec2{})
	moving := InspectorData{Info: sim.CardInfo{Card: held}}

	if sectionHeight(theme, byID["pile"], moving) != 0 {
		t.Error("pile section should be hidden for a held card")
	}
	// Held cards hide the frame counter
	withFrames := sectionHeight(theme, byID["motion"], InspectorData{Info: sim.CardInfo{Card: components.Card{
		Motion: components.Motion{State: components.Dragging},
	}}})
	if got := sectionHeight(theme, byID["motion"], moving); got != withFrames-theme.LineHeight {
		t.Errorf("held motion height %d, want %d", got, withFrames-theme.LineHeight)
	}
}

func TestOverlayStatus(t *testing.T) {
	tests := []struct {
		name    string
		desc    OverlayDescriptor
		enabled bool
		want    string
	}{
		{"enabled with key", OverlayDescriptor{KeyLabel: "V"}, true, "on [V]"},
		{"disabled with key", OverlayDescriptor{KeyLabel: "G"}, false, "off [G]"},
		{"no key", OverlayDescriptor{}, true, "on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlayStatus(tt.desc, tt.enabled); got != tt.want {
				t.Errorf("OverlayStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableSections(t *testing.T) {
	reg := NewOverlayRegistry()
	sections := TableSections(reg)

	byID := make(map[string]SectionDescriptor)
	for _, sd := range sections {
		byID[sd.ID] = sd
	}
	for _, id := range []string{"piles", "drag", "overlays_table", "overlays_debug"} {
		if _, ok := byID[id]; !ok {
			t.Fatalf("missing section %q in %v", id, sections)
		}
	}

	field := func(section, id string) FieldDescriptor {
		t.Helper()
		for _, fd := range byID[section].Fields {
			if fd.ID == id {
				return fd
			}
		}
		t.Fatalf("section %q has no field %q", section, id)
		return FieldDescriptor{}
	}

	// Overlay rows read the registry live
	grid := field("overlays_debug", string(OverlayGrid))
	if got := FieldText(grid, TablePanelData{}); got != "off [G]" {
		t.Errorf("grid row = %q before toggle", got)
	}
	reg.Toggle(OverlayGrid)
	if got := FieldText(grid, TablePanelData{}); got != "on [G]" {
		t.Errorf("grid row = %q after toggle", got)
	}

	data := TablePanelData{
		Counts: telemetry.Counts{Piles: 4, Stacked: 1, MaxOccupancy: 3},
		Drag:   systems.DragParams{CellSize: 75, BaseRate: 0.1},
	}
	if got := field("piles", "stacked").Getter(data); got != 0.25 {
		t.Errorf("stacked fraction = %v, want 0.25", got)
	}
	if got := FieldText(field("piles", "tallest"), data); got != "3" {
		t.Errorf("tallest = %q", got)
	}
	if got := FieldText(field("drag", "cell"), data); got != "75" {
		t.Errorf("cell = %q", got)
	}

	// The stacked bar hides on an empty table
	theme := DefaultTheme()
	empty := TablePanelData{}
	if sectionHeight(theme, byID["piles"], empty) != sectionHeight(theme, byID["piles"], data)-theme.LineHeight-2 {
		t.Error("stacked bar should be hidden with no piles")
	}

	if len(TableSections(nil)) != 2 {
		t.Error("nil registry should yield only the piles and drag sections")
	}
}
