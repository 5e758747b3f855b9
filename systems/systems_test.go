package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
)

var testSizes = StaticSizes{{X: 64, Y: 90}}

func testParams() DragParams {
	return DragParams{
		CellSize:      75,
		StackStep:     10,
		BaseRate:      0.1,
		DragScale:     1.2,
		DragScaleRate: 0.1,
		ReleaseRate:   0.15,
		RestingScale:  1,
	}
}

// newTestTable spawns one card per position and computes their bounds.
func newTestTable(t *testing.T, at ...components.Vec2) (*ecs.World, []ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	spawn := NewSpawnSystem(w, 1, 1)
	entities := make([]ecs.Entity, len(at))
	for i, p := range at {
		entities[i] = spawn.Spawn(p, 0)
	}
	NewBoundsSystem(w, testSizes).Update()
	return w, entities
}

func TestBoundsSystem(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{X: 10, Y: 20})
	bounds := ecs.NewMap[components.Bounds](w).Get(es[0])

	if !bounds.Valid {
		t.Fatal("bounds not valid after update")
	}
	if bounds.Rect.Center != (components.Vec2{X: 10, Y: 20}) {
		t.Errorf("center = %v", bounds.Rect.Center)
	}
	if bounds.Rect.Size != (components.Vec2{X: 64, Y: 90}) {
		t.Errorf("size = %v", bounds.Rect.Size)
	}

	// Scale feeds into the box
	ecs.NewMap[components.Scale](w).Get(es[0]).Vec2 = components.Splat(2)
	NewBoundsSystem(w, testSizes).Update()
	if bounds.Rect.Size != (components.Vec2{X: 128, Y: 180}) {
		t.Errorf("scaled size = %v", bounds.Rect.Size)
	}
}

func TestBoundsSystemSkipsUnknownAsset(t *testing.T) {
	w := ecs.NewWorld()
	e := NewSpawnSystem(w, 1, 1).Spawn(components.Vec2{}, 0)

	NewBoundsSystem(w, StaticSizes{}).Update()

	if ecs.NewMap[components.Bounds](w).Get(e).Valid {
		t.Error("bounds became valid without an asset size")
	}
}

func TestSelectionAllPolicy(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{}, components.Vec2{X: 10})
	cards := ecs.NewMap[components.Card](w)
	cards.Get(es[0]).Arrive(components.PileID{})

	sel := NewSelectionSystem(w, config.SelectAll)
	grabbed, released := sel.Update(components.Vec2{X: 5}, true, false)
	if grabbed != 2 || released != 0 {
		t.Fatalf("grabbed %d released %d, want 2 0", grabbed, released)
	}

	for _, e := range es {
		c := cards.Get(e)
		if !c.IsSelected() || !c.IsDragging() {
			t.Errorf("card %v not selected and dragging", e)
		}
		if c.HasPile {
			t.Errorf("card %v kept its pile while selected", e)
		}
	}

	// A second press over held cards grabs nothing new
	if grabbed, _ := sel.Update(components.Vec2{X: 5}, true, false); grabbed != 0 {
		t.Errorf("re-press grabbed %d", grabbed)
	}
}

func TestSelectionTopmostPolicy(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{}, components.Vec2{X: 10})
	cards := ecs.NewMap[components.Card](w)

	sel := NewSelectionSystem(w, config.SelectTopmost)
	grabbed, _ := sel.Update(components.Vec2{X: 5}, true, false)
	if grabbed != 1 {
		t.Fatalf("grabbed %d, want 1", grabbed)
	}
	// Equal depth: the later spawn wins
	if cards.Get(es[0]).IsSelected() || !cards.Get(es[1]).IsSelected() {
		t.Error("topmost policy grabbed the wrong card")
	}

	// Higher depth beats spawn order
	sel.Update(components.Vec2{}, false, true)
	ecs.NewMap[components.Depth](w).Get(es[0]).Z = 3
	sel.Update(components.Vec2{X: 5}, true, false)
	if !cards.Get(es[0]).IsSelected() {
		t.Error("deeper card not grabbed")
	}
}

func TestSelectionMissAndRelease(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{})
	cards := ecs.NewMap[components.Card](w)
	sel := NewSelectionSystem(w, config.SelectAll)

	if grabbed, _ := sel.Update(components.Vec2{X: 500}, true, false); grabbed != 0 {
		t.Fatalf("miss grabbed %d", grabbed)
	}

	sel.Update(components.Vec2{}, true, false)
	_, released := sel.Update(components.Vec2{X: 500}, false, true)
	if released != 1 {
		t.Fatalf("released %d, want 1", released)
	}
	c := cards.Get(es[0])
	if c.IsSelected() {
		t.Error("card still selected after release")
	}
	if !c.IsDragging() {
		t.Error("released card stopped dragging before arrival")
	}
}

func TestSelectionUnknownPolicyFallsBack(t *testing.T) {
	sel := NewSelectionSystem(ecs.NewWorld(), "bogus")
	if sel.Policy() != config.SelectAll {
		t.Errorf("policy = %q, want %q", sel.Policy(), config.SelectAll)
	}
}

func TestDragHeldCards(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{}, components.Vec2{})
	NewSelectionSystem(w, config.SelectAll).Update(components.Vec2{}, true, false)

	drag := NewDragSystem(w, testParams())
	cursor := components.Vec2{X: 100}
	res := drag.Update(cursor)

	if res.Held != 2 {
		t.Fatalf("held = %d, want 2", res.Held)
	}
	if !res.HasPreview || res.Preview.Center != Snap(cursor, 75) {
		t.Errorf("preview = %v (has %v)", res.Preview, res.HasPreview)
	}

	pos := ecs.NewMap[components.Position](w)
	depth := ecs.NewMap[components.Depth](w)

	// Index 0 eases at BaseRate, index 1 at twice that toward an offset target
	p0 := pos.Get(es[0]).Vec2
	if math.Abs(float64(p0.X-10)) > 1e-4 || p0.Y != 0 {
		t.Errorf("card 0 at %v, want (10, 0)", p0)
	}
	p1 := pos.Get(es[1]).Vec2
	if math.Abs(float64(p1.X-22)) > 1e-4 || math.Abs(float64(p1.Y-2)) > 1e-4 {
		t.Errorf("card 1 at %v, want (22, 2)", p1)
	}
	if depth.Get(es[0]).Z != 1 || depth.Get(es[1]).Z != 2 {
		t.Errorf("depths = %v, %v", depth.Get(es[0]).Z, depth.Get(es[1]).Z)
	}
}

func TestDragReleaseArrives(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{})
	sel := NewSelectionSystem(w, config.SelectAll)
	drag := NewDragSystem(w, testParams())
	cards := ecs.NewMap[components.Card](w)

	cursor := components.Vec2{X: 50, Y: 50}
	sel.Update(components.Vec2{}, true, false)
	for i := 0; i < 60; i++ {
		drag.Update(cursor)
	}
	sel.Update(cursor, false, true)

	want := components.PileAt(Snap(cursor, 75), 75)
	var arrival *Arrival
	for i := 0; i < 500 && arrival == nil; i++ {
		res := drag.Update(cursor)
		if len(res.Arrivals) > 0 {
			a := res.Arrivals[0]
			arrival = &a
		}
	}

	if arrival == nil {
		t.Fatal("card never arrived")
	}
	if arrival.Entity != es[0] || arrival.Pile != want {
		t.Errorf("arrival = %+v, want pile %v", arrival, want)
	}
	if arrival.Frames <= 0 {
		t.Errorf("arrival frames = %d", arrival.Frames)
	}

	c := cards.Get(es[0])
	if c.IsDragging() || !c.HasPile || c.Pile != want {
		t.Errorf("card after arrival = %+v", c)
	}
	if z := ecs.NewMap[components.Depth](w).Get(es[0]).Z; z != 0 {
		t.Errorf("depth after arrival = %v", z)
	}
}

// With an even cell size the anchor is a whole number. The release ease
// stalls a few ulps short of it, so the floors never match.
func TestDragReleaseIntegerAnchorHovers(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{})
	params := testParams()
	params.CellSize = 100
	sel := NewSelectionSystem(w, config.SelectAll)
	drag := NewDragSystem(w, params)

	sel.Update(components.Vec2{}, true, false)
	drag.Update(components.Vec2{})
	sel.Update(components.Vec2{}, false, true)

	for i := 0; i < 5000; i++ {
		if res := drag.Update(components.Vec2{}); len(res.Arrivals) > 0 {
			t.Fatalf("card arrived at frame %d", i)
		}
	}

	c := ecs.NewMap[components.Card](w).Get(es[0])
	if !c.IsDragging() || c.HasPile {
		t.Errorf("card = %+v, want still easing", c)
	}
	if c.Motion.Target != (components.Vec2{X: 50, Y: 50}) {
		t.Errorf("target = %v, want (50, 50)", c.Motion.Target)
	}
	pos := ecs.NewMap[components.Position](w).Get(es[0])
	for _, v := range []float32{pos.X, pos.Y} {
		if v >= 50 || 50-v > 1e-3 {
			t.Errorf("position %v, want just below 50", pos.Vec2)
		}
	}
}

func TestSizesFromVariants(t *testing.T) {
	sizes := SizesFromVariants([]config.VariantConfig{
		{Name: "a", Width: 64, Height: 90},
		{Name: "b", Width: 32.5, Height: 45},
	})

	tests := []struct {
		variant int
		want    components.Vec2
		ok      bool
	}{
		{0, components.Vec2{X: 64, Y: 90}, true},
		{1, components.Vec2{X: 32.5, Y: 45}, true},
		{2, components.Vec2{}, false},
		{-1, components.Vec2{}, false},
	}
	for _, tt := range tests {
		got, ok := sizes.IntrinsicSize(tt.variant)
		if ok != tt.ok || got != tt.want {
			t.Errorf("IntrinsicSize(%d) = %v, %v; want %v, %v", tt.variant, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSettleSystem(t *testing.T) {
	w, es := newTestTable(t, components.Vec2{}, components.Vec2{})
	scale := ecs.NewMap[components.Scale](w)
	cards := ecs.NewMap[components.Card](w)

	scale.Get(es[0]).Vec2 = components.Splat(1.2)
	scale.Get(es[1]).Vec2 = components.Splat(1.2)
	cards.Get(es[1]).Select(components.Vec2{})

	NewSettleSystem(w, 1, 0.2).Update()

	if got := scale.Get(es[0]).X; math.Abs(float64(got-1.16)) > 1e-5 {
		t.Errorf("resting card scale = %v, want 1.16", got)
	}
	if got := scale.Get(es[1]).X; got != 1.2 {
		t.Errorf("held card scale changed to %v", got)
	}
}

func TestPileAggregator(t *testing.T) {
	w, es := newTestTable(t,
		components.Vec2{}, components.Vec2{}, components.Vec2{}, components.Vec2{X: 80},
		components.Vec2{X: 200},
	)
	cards := ecs.NewMap[components.Card](w)
	for _, e := range es[:3] {
		cards.Get(e).Arrive(components.PileID{X: 0, Y: 0})
	}
	cards.Get(es[3]).Arrive(components.PileID{X: 1, Y: 0})
	// es[4] has no pile

	agg := NewPileAggregator(w, 75)
	markers := agg.Update()

	if len(markers) != 1 {
		t.Fatalf("markers = %v, want one", markers)
	}
	m := markers[0]
	if m.Pile != (components.PileID{}) || m.Count != 3 || m.Anchor != (components.Vec2{X: 37.5, Y: 37.5}) {
		t.Errorf("marker = %+v", m)
	}
	if n := agg.Count(components.PileID{X: 1, Y: 0}); n != 1 {
		t.Errorf("count (1,0) = %d, want 1", n)
	}
	if n := agg.Count(components.PileID{X: 9, Y: 9}); n != 0 {
		t.Errorf("count of empty pile = %d", n)
	}
	if len(agg.Occupancy()) != 2 {
		t.Errorf("occupancy = %v", agg.Occupancy())
	}
}

func TestVariantRotator(t *testing.T) {
	r := NewVariantRotator(3)
	want := []int{1, 2, 0, 1}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Errorf("call %d: got %d, want %d", i, got, w)
		}
	}

	single := NewVariantRotator(0)
	if single.Next() != 0 || single.Next() != 0 {
		t.Error("rotator over no variants must stay on 0")
	}
}

func TestSpawnSystem(t *testing.T) {
	w := ecs.NewWorld()
	s := NewSpawnSystem(w, 3, 1)

	if _, ok := s.Update(components.Vec2{}, false); ok {
		t.Fatal("spawned without a request")
	}
	e, ok := s.Update(components.Vec2{X: 5, Y: 6}, true)
	if !ok {
		t.Fatal("spawn request ignored")
	}

	if v := ecs.NewMap[components.Sprite](w).Get(e).Variant; v != 1 {
		t.Errorf("first spawned variant = %d, want 1", v)
	}
	if p := ecs.NewMap[components.Position](w).Get(e).Vec2; p != (components.Vec2{X: 5, Y: 6}) {
		t.Errorf("position = %v", p)
	}
	c := ecs.NewMap[components.Card](w).Get(e)
	if c.IsSelected() || c.IsDragging() || c.HasPile {
		t.Errorf("new card state = %+v", c)
	}
}

func TestPlayerSystem(t *testing.T) {
	w := ecs.NewWorld()
	s := NewPlayerSystem(w, 0.5)
	e := s.Spawn(components.Vec2{},
		components.Player{Speed: 100, Size: 32},
		components.Animation{Frames: 4, FrameTime: 0.5},
	)

	s.Update(components.Vec2{X: -1, Y: 1})

	pos := ecs.NewMap[components.Position](w).Get(e).Vec2
	d := float32(50 / math.Sqrt2)
	if math.Abs(float64(pos.X+d)) > 1e-3 || math.Abs(float64(pos.Y-d)) > 1e-3 {
		t.Errorf("position = %v, want (%v, %v)", pos, -d, d)
	}

	player := ecs.NewMap[components.Player](w).Get(e)
	if player.Facing != -1 {
		t.Errorf("facing = %v, want -1", player.Facing)
	}
	anim := ecs.NewMap[components.Animation](w).Get(e)
	if !anim.Playing || anim.Frame != 1 {
		t.Errorf("animation = %+v, want playing on frame 1", anim)
	}

	s.Update(components.Vec2{})
	if anim.Playing || anim.Frame != 0 {
		t.Errorf("idle animation = %+v, want frame 0", anim)
	}
}

func TestStepAnimationWraps(t *testing.T) {
	anim := components.Animation{Frames: 3, FrameTime: 0.1, Playing: true}
	StepAnimation(&anim, 0.35)
	if anim.Frame != 0 {
		t.Errorf("frame = %d, want 0 after three advances", anim.Frame)
	}
}

func TestSystemRegistry(t *testing.T) {
	reg := NewSystemRegistry()

	if got := reg.GetName("drag"); got != "Drag" {
		t.Errorf("GetName(drag) = %q", got)
	}
	if got := reg.GetName("telemetry"); got != "telemetry" {
		t.Errorf("unknown id should fall back, got %q", got)
	}

	ids := reg.IDs()
	want := []string{"cursor", "spawn", "player", "bounds", "selection", "drag", "settle", "piles"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if len(reg.ByCategory("cards")) != 4 {
		t.Errorf("cards category = %v", reg.ByCategory("cards"))
	}
}
