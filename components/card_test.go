package components

import "testing"

func TestPileAt(t *testing.T) {
	tests := []struct {
		name string
		p    Vec2
		cell float32
		want PileID
	}{
		{"origin", Vec2{0, 0}, 75, PileID{0, 0}},
		{"inside first cell", Vec2{74.9, 10}, 75, PileID{0, 0}},
		{"cell edge", Vec2{75, 150}, 75, PileID{1, 2}},
		{"negative floors down", Vec2{-0.5, -75}, 75, PileID{-1, -1}},
		{"negative interior", Vec2{-80, -1}, 75, PileID{-2, -1}},
		{"interior point", Vec2{100, 200}, 64, PileID{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PileAt(tt.p, tt.cell)
			if got != tt.want {
				t.Errorf("PileAt(%v, %v) = %v, want %v", tt.p, tt.cell, got, tt.want)
			}
		})
	}
}

func TestPileAnchorInsideOwnCell(t *testing.T) {
	for _, id := range []PileID{{0, 0}, {3, -2}, {-1, -1}, {10, 7}} {
		anchor := id.Anchor(75)
		if got := PileAt(anchor, 75); got != id {
			t.Errorf("anchor %v of %v maps back to %v", anchor, id, got)
		}
	}
}

func TestCardTransitions(t *testing.T) {
	var c Card

	if c.IsSelected() || c.IsDragging() || c.HasPile {
		t.Fatalf("zero card should be unselected, at rest, without pile: %+v", c)
	}

	c.Arrive(PileID{2, 3})
	if !c.HasPile || c.Pile != (PileID{2, 3}) {
		t.Fatalf("expected pile (2,3) after arrive, got %+v", c)
	}

	c.Select(Vec2{10, 20})
	if !c.IsSelected() || !c.IsDragging() {
		t.Errorf("expected selected and dragging, got %+v", c)
	}
	if c.HasPile {
		t.Error("selecting a card must clear its pile")
	}
	if c.Motion.Target != (Vec2{10, 20}) {
		t.Errorf("expected initial target (10,20), got %v", c.Motion.Target)
	}

	c.Motion.Target = Vec2{50, 60}
	c.Release()
	if c.IsSelected() {
		t.Error("expected unselected after release")
	}
	if !c.IsDragging() || c.Motion.Target != (Vec2{50, 60}) {
		t.Errorf("release must keep the in-flight target, got %+v", c.Motion)
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromCenterSize(Vec2{0, 0}, Vec2{64, 90})

	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{32, 45}, true}, // edge is inclusive
		{Vec2{-32, -45}, true},
		{Vec2{32.1, 0}, false},
		{Vec2{0, -45.1}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestVec2Lerp(t *testing.T) {
	got := Vec2{0, 10}.Lerp(Vec2{10, 20}, 0.5)
	if got != (Vec2{5, 15}) {
		t.Errorf("expected (5,15), got %v", got)
	}
	if got := (Vec2{3, 4}).Lerp(Vec2{7, 8}, 1); got != (Vec2{7, 8}) {
		t.Errorf("lerp with t=1 should land on target, got %v", got)
	}
}
