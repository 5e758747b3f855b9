// Package sim runs the per-frame card table pipeline over an ark world.
package sim

import (
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/config"
	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
)

// InputFrame is everything the pipeline reads from the environment for one frame.
// Pointer is in screen space; PointerOK is false when the pointer left the viewport.
type InputFrame struct {
	Pointer   components.Vec2
	PointerOK bool
	Press     bool // primary button went down this frame
	Release   bool // primary button went up this frame
	Spawn     bool // secondary button went down this frame
	Move      components.Vec2
}

// CardView is the per-card draw submission.
type CardView struct {
	Entity   ecs.Entity
	Variant  int
	Position components.Vec2
	Scale    components.Vec2
	Z        float32
	Bounds   components.Rect
	Selected bool
	Dragging bool
}

// PlayerView is the player draw submission.
type PlayerView struct {
	Position components.Vec2
	Size     float32
	Frame    int
	Facing   float32
}

// FrameEvents counts state transitions that happened during one Step.
type FrameEvents struct {
	Spawned       int
	Grabbed       int
	Released      int
	Arrived       int
	ArrivalFrames []int
	Arrivals      []systems.Arrival
}

// RenderHints is everything the pipeline exposes for one frame. It is purely
// observational; slices are reused by the next Step.
type RenderHints struct {
	Tick        int64
	Cursor      components.Vec2
	Cards       []CardView // ordered by Z, ties in store order
	Preview     components.Rect
	HasPreview  bool
	PileMarkers []systems.PileMarker
	Player      PlayerView
	HasPlayer   bool
	Events      FrameEvents
}

// Table owns the entity store, the cursor and the pipeline stages.
type Table struct {
	world *ecs.World
	cfg   *config.Config

	cursor    *systems.CursorResolver
	spawn     *systems.SpawnSystem
	player    *systems.PlayerSystem
	bounds    *systems.BoundsSystem
	selection *systems.SelectionSystem
	drag      *systems.DragSystem
	settle    *systems.SettleSystem
	piles     *systems.PileAggregator

	viewFilter   *ecs.Filter5[components.Position, components.Scale, components.Depth, components.Sprite, components.Card]
	boundsMap    *ecs.Map1[components.Bounds]
	playerFilter *ecs.Filter3[components.Position, components.Player, components.Animation]

	perf  *telemetry.PerfCollector
	tick  int64
	hints RenderHints
}

// NewTable builds a table from config. sizes provides intrinsic asset sizes and
// proj maps screen to world coordinates. Initial cards and the player are spawned.
func NewTable(cfg *config.Config, sizes systems.AssetSizer, proj systems.Projector) *Table {
	w := ecs.NewWorld()
	cards := cfg.Cards

	t := &Table{
		world:     w,
		cfg:       cfg,
		cursor:    systems.NewCursorResolver(proj),
		spawn:     systems.NewSpawnSystem(w, len(cards.Variants), float32(cards.RestingScale)),
		player:    systems.NewPlayerSystem(w, cfg.Derived.DT32),
		bounds:    systems.NewBoundsSystem(w, sizes),
		selection: systems.NewSelectionSystem(w, cfg.Selection.Policy),
		drag: systems.NewDragSystem(w, systems.DragParams{
			CellSize:      cfg.Derived.CellSize32,
			StackStep:     float32(cards.StackStep),
			BaseRate:      float32(cards.BaseRate),
			DragScale:     float32(cards.DragScale),
			DragScaleRate: float32(cards.DragScaleRate),
			ReleaseRate:   float32(cards.ReleaseRate),
			RestingScale:  float32(cards.RestingScale),
		}),
		settle: systems.NewSettleSystem(w, float32(cards.RestingScale), float32(cards.SettleRate)),
		piles:  systems.NewPileAggregator(w, cfg.Derived.CellSize32),

		viewFilter:   ecs.NewFilter5[components.Position, components.Scale, components.Depth, components.Sprite, components.Card](w),
		boundsMap:    ecs.NewMap1[components.Bounds](w),
		playerFilter: ecs.NewFilter3[components.Position, components.Player, components.Animation](w),
	}

	t.spawnInitial()
	return t
}

// spawnInitial places the configured starting cards in a row from the origin
// and the player at its start position.
func (t *Table) spawnInitial() {
	spacing := t.cfg.Derived.CellSize32
	for i := 0; i < t.cfg.Cards.InitialCards; i++ {
		t.spawn.Spawn(components.Vec2{X: float32(i) * spacing}, 0)
	}

	p := t.cfg.Player
	if p.Speed > 0 {
		t.player.Spawn(
			components.Vec2{X: t.cfg.Derived.PlayerX, Y: t.cfg.Derived.PlayerY},
			components.Player{Speed: float32(p.Speed), Size: float32(p.Size)},
			components.Animation{Frames: p.Frames, FrameTime: float32(p.FrameTime)},
		)
	}
}

// SetPerf attaches a perf collector; phases are timed under the registry IDs.
func (t *Table) SetPerf(p *telemetry.PerfCollector) {
	t.perf = p
}

// World exposes the entity store for inspection.
func (t *Table) World() *ecs.World {
	return t.world
}

// Tick returns the number of completed steps.
func (t *Table) Tick() int64 {
	return t.tick
}

// Cursor returns the last resolved world-space pointer position.
func (t *Table) Cursor() components.Vec2 {
	return t.cursor.Cursor()
}

// Drag exposes the live drag tuning.
func (t *Table) Drag() *systems.DragParams {
	return t.drag.Params()
}

// Selection exposes the selection system, for switching the hit policy.
func (t *Table) Selection() *systems.SelectionSystem {
	return t.selection
}

// SpawnAt creates a card at a world position with an explicit variant.
func (t *Table) SpawnAt(at components.Vec2, variant int) ecs.Entity {
	return t.spawn.Spawn(at, variant)
}

// Step runs one frame of the pipeline and returns what to draw.
func (t *Table) Step(in InputFrame) *RenderHints {
	h := &t.hints
	h.Events = FrameEvents{
		ArrivalFrames: h.Events.ArrivalFrames[:0],
		Arrivals:      h.Events.Arrivals[:0],
	}

	t.phase(telemetry.PhaseCursor)
	cursor := t.cursor.Update(in.Pointer, in.PointerOK)

	t.phase(telemetry.PhaseSpawn)
	if _, ok := t.spawn.Update(cursor, in.Spawn); ok {
		h.Events.Spawned++
	}

	t.phase(telemetry.PhasePlayer)
	t.player.Update(in.Move)

	t.phase(telemetry.PhaseBounds)
	t.bounds.Update()

	t.phase(telemetry.PhaseSelection)
	h.Events.Grabbed, h.Events.Released = t.selection.Update(cursor, in.Press, in.Release)

	t.phase(telemetry.PhaseDrag)
	drag := t.drag.Update(cursor)
	h.Preview = drag.Preview
	h.HasPreview = drag.HasPreview
	h.Events.Arrived = len(drag.Arrivals)
	for _, a := range drag.Arrivals {
		h.Events.ArrivalFrames = append(h.Events.ArrivalFrames, a.Frames)
		h.Events.Arrivals = append(h.Events.Arrivals, a)
	}

	t.phase(telemetry.PhaseSettle)
	t.settle.Update()

	t.phase(telemetry.PhasePiles)
	h.PileMarkers = t.piles.Update()

	h.Cursor = cursor
	t.collectViews(h)

	t.tick++
	h.Tick = t.tick
	return h
}

// phase marks the start of a pipeline stage for perf tracking.
func (t *Table) phase(name string) {
	if t.perf != nil {
		t.perf.StartPhase(name)
	}
}

// collectViews fills the draw submissions for cards and the player.
func (t *Table) collectViews(h *RenderHints) {
	h.Cards = h.Cards[:0]

	query := t.viewFilter.Query()
	for query.Next() {
		pos, scale, depth, sprite, card := query.Get()
		h.Cards = append(h.Cards, CardView{
			Entity:   query.Entity(),
			Variant:  sprite.Variant,
			Position: pos.Vec2,
			Scale:    scale.Vec2,
			Z:        depth.Z,
			Bounds:   t.boundsMap.Get(query.Entity()).Rect,
			Selected: card.IsSelected(),
			Dragging: card.IsDragging(),
		})
	}
	sort.SliceStable(h.Cards, func(i, j int) bool {
		return h.Cards[i].Z < h.Cards[j].Z
	})

	h.HasPlayer = false
	pq := t.playerFilter.Query()
	for pq.Next() {
		pos, player, anim := pq.Get()
		h.Player = PlayerView{
			Position: pos.Vec2,
			Size:     player.Size,
			Frame:    anim.Frame,
			Facing:   player.Facing,
		}
		h.HasPlayer = true
	}
}
