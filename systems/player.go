package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cardpile/components"
)

// PlayerSystem moves the player sprite from the keyboard axis and cycles its animation.
type PlayerSystem struct {
	mapper *ecs.Map3[components.Position, components.Player, components.Animation]
	filter *ecs.Filter3[components.Position, components.Player, components.Animation]
	dt     float32
}

// NewPlayerSystem creates a new player system with a fixed frame time.
func NewPlayerSystem(w *ecs.World, dt float32) *PlayerSystem {
	return &PlayerSystem{
		mapper: ecs.NewMap3[components.Position, components.Player, components.Animation](w),
		filter: ecs.NewFilter3[components.Position, components.Player, components.Animation](w),
		dt:     dt,
	}
}

// Spawn creates the player entity.
func (s *PlayerSystem) Spawn(at components.Vec2, player components.Player, anim components.Animation) ecs.Entity {
	pos := components.Position{Vec2: at}
	if player.Facing == 0 {
		player.Facing = 1
	}
	return s.mapper.NewEntity(&pos, &player, &anim)
}

// Update moves every player by axis * speed * dt. Diagonal input is normalised.
func (s *PlayerSystem) Update(axis components.Vec2) {
	if l := axis.Len(); l > 1 {
		axis = axis.Scale(1 / l)
	}
	moving := axis.X != 0 || axis.Y != 0

	query := s.filter.Query()
	for query.Next() {
		pos, player, anim := query.Get()

		pos.Vec2 = pos.Add(axis.Scale(player.Speed * s.dt))
		if axis.X < 0 {
			player.Facing = -1
		} else if axis.X > 0 {
			player.Facing = 1
		}

		anim.Playing = moving
		StepAnimation(anim, s.dt)
	}
}

// StepAnimation advances a frame cycler by dt. Idle animations rest on frame 0.
func StepAnimation(anim *components.Animation, dt float32) {
	if !anim.Playing || anim.Frames <= 1 || anim.FrameTime <= 0 {
		anim.Frame = 0
		anim.Timer = 0
		return
	}
	anim.Timer += dt
	for anim.Timer >= anim.FrameTime {
		anim.Timer -= anim.FrameTime
		anim.Frame = (anim.Frame + 1) % anim.Frames
	}
}
