package system

import (
	"log/slog"
	"math"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/prefabs"
)

// PickupRange is how far from its center a player reaches for pickups.
const PickupRange = 25 * 1.5

// ArmorySystem handles weapon switching, dropping and picking things up.
// One request is served per owner and tick, in that order: pickup, drop,
// next, last.
type ArmorySystem struct{}

func NewArmorySystem() *ArmorySystem { return &ArmorySystem{} }

func (s *ArmorySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.ArmoryComponent.Kind(), func(e ecs.Entity, in *component.Input, _ *component.Armory) {
		switch {
		case in.PickupPressed:
			s.pickup(w, e)
		case in.DropWeaponPressed:
			entity.DropWeapon(w, e)
		case in.NextWeaponPressed:
			entity.CycleWeapon(w, e, 1)
		case in.LastWeaponPressed:
			entity.CycleWeapon(w, e, -1)
		}
	})
}

func (s *ArmorySystem) pickup(w *ecs.World, owner ecs.Entity) {
	t, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, pickup, ok := nearestPickup(w, t.X, t.Y)
	if !ok {
		return
	}

	switch pickup.Kind {
	case component.PickupWeapon:
		if pickup.Weapon == nil || !entity.AddWeapon(w, owner, *pickup.Weapon) {
			return
		}
		slog.Debug("weapon picked up", "entity", owner, "weapon", pickup.Weapon.Profile.Name, "weapon_id", pickup.Weapon.ID)
	case component.PickupItem:
		if !applyItem(w, owner, pickup.Name) {
			return
		}
	default:
		return
	}
	ecs.DestroyEntity(w, target)
}

func nearestPickup(w *ecs.World, x, y float64) (ecs.Entity, *component.Pickup, bool) {
	var (
		best     ecs.Entity
		bestP    *component.Pickup
		bestDist = math.Inf(1)
	)
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
		d := math.Hypot(t.X-x, t.Y-y)
		if d > PickupRange || d >= bestDist {
			return
		}
		best, bestP, bestDist = e, p, d
	})
	return best, bestP, bestP != nil
}

// applyItem applies an instant item on the spot or stores a lasting one in
// the inventory.
func applyItem(w *ecs.World, owner ecs.Entity, name string) bool {
	spec, err := prefabs.LoadItemSpec(name)
	if err != nil {
		slog.Warn("item pickup failed", "entity", owner, "item", name, "err", err)
		return false
	}

	if spec.Instant != nil {
		if c, ok := ecs.Get(w, owner, component.CombatantComponent.Kind()); ok {
			c.GrowMax(spec.Instant.MaxHealth)
		}
		slog.Debug("item used", "entity", owner, "item", name)
		return true
	}

	inv, ok := ecs.Get(w, owner, component.InventoryComponent.Kind())
	if !ok {
		inv = &component.Inventory{}
		if err := ecs.Add(w, owner, component.InventoryComponent.Kind(), inv); err != nil {
			return false
		}
	}
	inv.Items = append(inv.Items, name)
	slog.Debug("item picked up", "entity", owner, "item", name)
	return true
}
