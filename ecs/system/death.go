package system

import (
	"log/slog"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// DeathSystem removes combatants whose health ran out, together with their
// weapon and the bullets they still have in flight. When the last player
// falls it asks for an arena reset.
type DeathSystem struct{}

func NewDeathSystem() *DeathSystem { return &DeathSystem{} }

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	playerDied := false
	ecs.ForEach(w, component.CombatantComponent.Kind(), func(e ecs.Entity, c *combat.Combatant) {
		if c.Alive() {
			return
		}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			playerDied = true
		}
		ecs.ForEach(w, component.BulletComponent.Kind(), func(b ecs.Entity, bullet *component.Bullet) {
			if ecs.Entity(bullet.Owner) == e {
				ecs.DestroyEntity(w, b)
			}
		})
		entity.DestroyWithWeapon(w, e)
		slog.Info("combatant died", "entity", e)
	})

	if !playerDied {
		return
	}
	if _, ok := w.First(component.PlayerTagComponent.Kind()); !ok {
		entity.RequestArenaReset(w, "all players down")
	}
}
