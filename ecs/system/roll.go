package system

import (
	"log/slog"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// RollSystem starts dodge rolls on the roll edge and drives the roll in
// progress: constant velocity, manual animation frames, cleanup at the end.
type RollSystem struct{}

func NewRollSystem() *RollSystem { return &RollSystem{} }

func (s *RollSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.InputComponent.Kind(), component.ActionsComponent.Kind(), component.PlayerComponent.Kind(), func(e ecs.Entity, in *component.Input, actions *component.Actions, p *component.Player) {
		anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())

		if in.RollPressed && actions.Machine.Roll() == nil {
			r := combat.NewRoll(in.Move)
			if actions.Machine.StartRoll(r) {
				if anim != nil {
					anim.Manual = true
					anim.Frame = 0
					anim.State = AnimDodge + MoveSector(r.Direction)
					if r.Direction.X != 0 {
						anim.FlipX = r.Direction.X < 0
					}
				}
				slog.Debug("roll started", "entity", e)
			}
		}

		roll := actions.Machine.Roll()
		if roll == nil {
			return
		}
		advanced, done := roll.Step(dt, p.RollDuration)
		if anim != nil {
			anim.Frame += advanced
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := roll.Velocity(p.RollSpeed)
			vel.X, vel.Y = v.X, v.Y
		}
		if !done {
			return
		}

		actions.Machine.EndRoll()
		if anim != nil {
			anim.Manual = false
			anim.Frame = 0
			anim.State = AnimIdle
		}
		slog.Debug("roll finished", "entity", e)
	})
}
