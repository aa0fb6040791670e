package system

import (
	"log/slog"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// CollisionSystem consumes the tick's contact-started events and applies
// the bullet rules: walls stop bullets, combatants other than the shooter
// take damage and stop them. A bullet is consumed at most once.
type CollisionSystem struct{}

func NewCollisionSystem() *CollisionSystem { return &CollisionSystem{} }

func (s *CollisionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventContactStarted) {
		c, ok := evt.Data.(ecs.ContactEvent)
		if !ok {
			continue
		}
		a, okA := classify(w, c.A)
		b, okB := classify(w, c.B)
		if !okA || !okB {
			continue
		}

		res := combat.Resolve(a, b)
		switch res.Outcome {
		case combat.OutcomeDespawn:
			ecs.DestroyEntity(w, res.Bullet)
		case combat.OutcomeDamage:
			if t, ok := ecs.Get(w, res.Target, component.TransformComponent.Kind()); ok {
				if _, err := entity.SpawnHitMarker(w, t.X, t.Y, res.Damage); err != nil {
					slog.Warn("hit marker spawn failed", "err", err)
				}
			}
			slog.Debug("hit", "bullet", res.Bullet, "target", res.Target, "damage", res.Damage)
			ecs.DestroyEntity(w, res.Bullet)
		}
	}
}

// classify describes one side of a contact. Dead entities do not take part,
// which is how a bullet removed earlier in the batch is skipped.
func classify(w *ecs.World, e ecs.Entity) (combat.Body[ecs.Entity], bool) {
	if !w.IsAlive(e) {
		return combat.Body[ecs.Entity]{}, false
	}
	body := combat.Body[ecs.Entity]{Handle: e}
	if b, ok := ecs.Get(w, e, component.BulletComponent.Kind()); ok {
		body.Kind = combat.BodyBullet
		body.Bullet = &b.Bullet
		body.Owner = ecs.Entity(b.Owner)
		return body, true
	}
	if ecs.Has(w, e, component.WallComponent.Kind()) {
		body.Kind = combat.BodyWall
		return body, true
	}
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		body.Kind = combat.BodyCombatant
		body.Combatant = c
		return body, true
	}
	return body, true
}
