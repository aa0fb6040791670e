package entity

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// ProfileFromSpec turns a weapon archetype into a primed, validated profile.
func ProfileFromSpec(spec prefabs.WeaponSpec) (combat.Profile, error) {
	shoot, err := combat.ParseShootMode(spec.Shoot)
	if err != nil {
		return combat.Profile{}, fmt.Errorf("build weapon %q: %w", spec.Name, err)
	}
	reload, err := combat.ParseReloadMode(spec.Reload)
	if err != nil {
		return combat.Profile{}, fmt.Errorf("build weapon %q: %w", spec.Name, err)
	}

	p := combat.Profile{
		Name:         spec.Name,
		Mode:         shoot,
		Reload:       reload,
		Spread:       spec.Spread(),
		Speed:        spec.Speed,
		SpeedSpread:  spec.SpeedSpread,
		Distance:     spec.Distance,
		Damage:       spec.Damage,
		Salve:        spec.Salve,
		MinShot:      spec.MinShot,
		Ammo:         spec.Ammo,
		MaxAmmo:      spec.MaxAmmo,
		Infinite:     spec.Infinite,
		MagAmmo:      spec.MagAmmo,
		MagSize:      spec.MagSize,
		ReloadTime:   spec.ReloadTime,
		FireRate:     spec.FireRate,
		SubFireRate:  spec.SubFireRate,
		MinHeat:      spec.MinHeat,
		MaxHeat:      spec.MaxHeat,
		HeatDecay:    spec.HeatDecay,
		HandleX:      spec.Handle.X,
		HandleY:      spec.Handle.Y,
		BarrelLength: spec.Barrel.Length,
		BarrelHeight: spec.Barrel.Height,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return combat.Profile{}, fmt.Errorf("build weapon %q: %w", spec.Name, err)
	}
	return p, nil
}

// NewWeaponSlot loads an archetype by name and gives it a fresh identity.
func NewWeaponSlot(name string) (component.WeaponSlot, error) {
	spec, err := prefabs.LoadWeaponSpec(name)
	if err != nil {
		return component.WeaponSlot{}, fmt.Errorf("build weapon %q: %w", name, err)
	}
	p, err := ProfileFromSpec(spec)
	if err != nil {
		return component.WeaponSlot{}, err
	}
	return component.WeaponSlot{ID: uuid.New(), Profile: p}, nil
}

// SetArmory replaces owner's armory with fresh weapons of the named
// archetypes and equips the first one.
func SetArmory(w *ecs.World, owner ecs.Entity, names []string) error {
	UnequipWeapon(w, owner)

	armory := &component.Armory{Slots: make([]component.WeaponSlot, 0, len(names))}
	for _, name := range names {
		slot, err := NewWeaponSlot(name)
		if err != nil {
			return err
		}
		armory.Slots = append(armory.Slots, slot)
	}
	if err := ecs.Add(w, owner, component.ArmoryComponent.Kind(), armory); err != nil {
		return err
	}
	if len(armory.Slots) == 0 {
		return nil
	}
	_, err := EquipWeapon(w, owner, 0)
	return err
}

// WeaponOf resolves owner's equipped weapon. Holders pointing at dead
// entities or at weapons owned by someone else resolve to nothing.
func WeaponOf(w *ecs.World, owner ecs.Entity) (ecs.Entity, *component.Weapon, bool) {
	holder, ok := ecs.Get(w, owner, component.WeaponHolderComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	we := ecs.Entity(holder.Weapon)
	weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind())
	if !ok || ecs.Entity(weapon.Owner) != owner {
		return 0, nil, false
	}
	return we, weapon, true
}

// EquipWeapon makes armory slot index the live weapon of owner. The weapon
// that was live is stashed back into its slot first.
func EquipWeapon(w *ecs.World, owner ecs.Entity, index int) (ecs.Entity, error) {
	armory, ok := ecs.Get(w, owner, component.ArmoryComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("equip weapon on %s: no armory", owner)
	}
	if index < 0 || index >= len(armory.Slots) {
		return 0, fmt.Errorf("equip weapon on %s: slot %d out of range [0, %d)", owner, index, len(armory.Slots))
	}

	UnequipWeapon(w, owner)
	armory.Current = index
	slot := armory.Slots[index]

	we := ecs.CreateEntity(w)
	x, y := 0.0, 0.0
	if t, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	if err := ecs.Add(w, we, component.WeaponComponent.Kind(), &component.Weapon{
		ID:      slot.ID,
		Profile: slot.Profile,
		Owner:   uint64(owner),
	}); err != nil {
		ecs.DestroyEntity(w, we)
		return 0, fmt.Errorf("equip weapon on %s: %w", owner, err)
	}
	if err := ecs.Add(w, we, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		ecs.DestroyEntity(w, we)
		return 0, fmt.Errorf("equip weapon on %s: %w", owner, err)
	}
	if err := ecs.Add(w, we, component.AimComponent.Kind(), &component.Aim{}); err != nil {
		ecs.DestroyEntity(w, we)
		return 0, fmt.Errorf("equip weapon on %s: %w", owner, err)
	}
	if err := ecs.Add(w, owner, component.WeaponHolderComponent.Kind(), &component.WeaponHolder{Weapon: uint64(we)}); err != nil {
		ecs.DestroyEntity(w, we)
		return 0, fmt.Errorf("equip weapon on %s: %w", owner, err)
	}

	slog.Debug("weapon equipped", "entity", owner, "weapon", slot.Profile.Name, "weapon_id", slot.ID)
	return we, nil
}

// UnequipWeapon stashes the live weapon's profile into its armory slot and
// destroys the weapon entity. A reload bound to that weapon is cancelled
// and so is a burst.
func UnequipWeapon(w *ecs.World, owner ecs.Entity) bool {
	holder, ok := ecs.Get(w, owner, component.WeaponHolderComponent.Kind())
	if !ok {
		return false
	}
	we := ecs.Entity(holder.Weapon)
	ecs.Remove(w, owner, component.WeaponHolderComponent.Kind())

	weapon, ok := ecs.Get(w, we, component.WeaponComponent.Kind())
	if !ok || ecs.Entity(weapon.Owner) != owner {
		return false
	}
	weapon.Profile.Holster()

	if armory, ok := ecs.Get(w, owner, component.ArmoryComponent.Kind()); ok {
		for i := range armory.Slots {
			if armory.Slots[i].ID == weapon.ID {
				armory.Slots[i].Profile = weapon.Profile
				break
			}
		}
	}
	if actions, ok := ecs.Get(w, owner, component.ActionsComponent.Kind()); ok {
		if actions.ReloadWeapon == uint64(we) {
			actions.Machine.EndReload()
			actions.ReloadWeapon = 0
		}
		actions.Machine.EndBurst()
	}

	ecs.DestroyEntity(w, we)
	return true
}

// DestroyWithWeapon destroys e together with its equipped weapon. The
// physics system drops their bodies on its next step.
func DestroyWithWeapon(w *ecs.World, e ecs.Entity) {
	if we, _, ok := WeaponOf(w, e); ok {
		ecs.DestroyEntity(w, we)
	}
	ecs.DestroyEntity(w, e)
}
