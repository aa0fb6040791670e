package entity

import (
	"log/slog"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// CycleWeapon equips the slot step places away from the current one,
// wrapping around. It does nothing with fewer than two slots.
func CycleWeapon(w *ecs.World, owner ecs.Entity, step int) bool {
	armory, ok := ecs.Get(w, owner, component.ArmoryComponent.Kind())
	if !ok || len(armory.Slots) < 2 {
		return false
	}
	n := len(armory.Slots)
	next := ((armory.Current+step)%n + n) % n
	if next == armory.Current {
		return false
	}
	if _, err := EquipWeapon(w, owner, next); err != nil {
		slog.Warn("weapon switch failed", "entity", owner, "err", err)
		return false
	}
	return true
}

// DropWeapon removes the current slot from owner's armory, leaves it on the
// floor at the owner's feet and equips the slot that took its place.
func DropWeapon(w *ecs.World, owner ecs.Entity) (component.WeaponSlot, bool) {
	armory, ok := ecs.Get(w, owner, component.ArmoryComponent.Kind())
	if !ok || len(armory.Slots) == 0 {
		return component.WeaponSlot{}, false
	}

	UnequipWeapon(w, owner)
	i := armory.Current
	dropped := armory.Slots[i]
	armory.Slots = append(armory.Slots[:i], armory.Slots[i+1:]...)

	x, y := 0.0, 0.0
	if t, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	if _, err := SpawnWeaponPickup(w, x, y, dropped); err != nil {
		slog.Warn("weapon drop failed", "entity", owner, "err", err)
	}
	slog.Debug("weapon dropped", "entity", owner, "weapon", dropped.Profile.Name, "weapon_id", dropped.ID)

	if len(armory.Slots) == 0 {
		armory.Current = 0
		return dropped, true
	}
	if i >= len(armory.Slots) {
		i = len(armory.Slots) - 1
	}
	if _, err := EquipWeapon(w, owner, i); err != nil {
		slog.Warn("weapon switch failed", "entity", owner, "err", err)
	}
	return dropped, true
}

// AddWeapon puts slot into owner's armory and equips it.
func AddWeapon(w *ecs.World, owner ecs.Entity, slot component.WeaponSlot) bool {
	armory, ok := ecs.Get(w, owner, component.ArmoryComponent.Kind())
	if !ok {
		armory = &component.Armory{}
		if err := ecs.Add(w, owner, component.ArmoryComponent.Kind(), armory); err != nil {
			return false
		}
	}
	armory.Slots = append(armory.Slots, slot)
	if _, err := EquipWeapon(w, owner, len(armory.Slots)-1); err != nil {
		slog.Warn("weapon pickup failed", "entity", owner, "err", err)
		return false
	}
	return true
}
