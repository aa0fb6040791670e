package system

import (
	"math"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// Animation state names. A roll plays "dodge_" + the sector name.
const (
	AnimIdle      = "idle"
	AnimFront     = "front"
	AnimFrontSide = "front_side"
	AnimSide      = "side"
	AnimBackSide  = "back_side"
	AnimBack      = "back"
	AnimDodge     = "dodge_"
)

// MoveSector names the direction sector of v: front is straight down the
// screen and back straight up. The zero vector is idle.
func MoveSector(v common.Vec2) string {
	if v.IsZero() {
		return AnimIdle
	}
	// 0 points down, π points up; left and right fold together.
	a := math.Atan2(math.Abs(v.X), v.Y)
	switch {
	case a < math.Pi/8:
		return AnimFront
	case a < 3*math.Pi/8:
		return AnimFrontSide
	case a < 5*math.Pi/8:
		return AnimSide
	case a < 7*math.Pi/8:
		return AnimBackSide
	}
	return AnimBack
}

// MovementSystem turns move input into walk velocity and picks the walk
// animation. Rolling owners are left to RollSystem.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.InputComponent.Kind(), component.PlayerComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, in *component.Input, p *component.Player, vel *component.Velocity) {
		if actions, ok := ecs.Get(w, e, component.ActionsComponent.Kind()); ok && actions.Machine.Roll() != nil {
			return
		}

		v := in.Move.ClampLength(1).Scale(p.MoveSpeed)
		vel.X, vel.Y = v.X, v.Y

		anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
		if !ok || anim.Manual {
			return
		}
		state := MoveSector(in.Move)
		if state != anim.State {
			anim.State = state
			anim.Frame = 0
		}
		if in.Move.X != 0 {
			anim.FlipX = in.Move.X < 0
		}
	})
}
