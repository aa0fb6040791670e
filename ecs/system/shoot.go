package system

import (
	"log/slog"
	"math/rand/v2"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// ShootSystem runs every equipped weapon's shoot strategy and spawns the
// bullets of each flushed shot at the muzzle. Modifiers are asked once per
// shot, at spawn time.
type ShootSystem struct {
	rng       *rand.Rand
	modifiers ModifierSource
}

// NewShootSystem creates the system. A nil rng disables spread; a nil
// source applies no modifiers.
func NewShootSystem(rng *rand.Rand, modifiers ModifierSource) *ShootSystem {
	return &ShootSystem{rng: rng, modifiers: modifiers}
}

func (s *ShootSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.InputComponent.Kind(), component.ActionsComponent.Kind(), func(e ecs.Entity, in *component.Input, actions *component.Actions) {
		we, weapon, ok := entity.WeaponOf(w, e)
		if !ok {
			return
		}
		trig := combat.Trigger{Pressed: in.Shoot, JustPressed: in.ShootPressed}
		shot, fired := combat.StepWeapon(&actions.Machine, &weapon.Profile, trig, dt)
		if !fired {
			return
		}

		shot = s.modify(w, e, shot)
		aim, ok := ecs.Get(w, we, component.AimComponent.Kind())
		if !ok {
			return
		}
		for _, b := range shot.Bullets(aim.Angle, s.rng) {
			if _, err := entity.SpawnBullet(w, e, aim.Muzzle, b); err != nil {
				slog.Warn("bullet spawn failed", "entity", e, "err", err)
				return
			}
		}
	})
}

// modify applies the owner's modifiers in order. A failing modifier is
// skipped and the shot it was given carries on.
func (s *ShootSystem) modify(w *ecs.World, owner ecs.Entity, shot combat.Shot) combat.Shot {
	if s.modifiers == nil {
		return shot
	}
	for _, m := range s.modifiers.Modifiers(w, owner) {
		next, err := m.ModifyShot(shot)
		if err != nil {
			slog.Warn("shot modifier failed", "entity", owner, "err", err)
			continue
		}
		shot = next
	}
	return shot
}
