package entity

import (
	"fmt"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

const (
	BulletRadius    = 1.5
	PickupRadius    = 4.0
	HitMarkerFrames = 20
)

// SpawnBullet creates a bullet at pos flying along b.Angle.
func SpawnBullet(w *ecs.World, owner ecs.Entity, pos common.Vec2, b combat.Bullet) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	vel := common.FromAngle(b.Angle).Scale(b.Speed)
	if err := addAll(w, e,
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, Rotation: b.Angle})
		},
		func() error {
			return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vel.X, Y: vel.Y})
		},
		func() error {
			return ecs.Add(w, e, component.BulletComponent.Kind(), &component.Bullet{Bullet: b, Owner: uint64(owner), From: pos})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Radius: BulletRadius,
				Mass:   0.01,
				Sensor: true,
			})
		},
	); err != nil {
		return 0, fmt.Errorf("spawn bullet: %w", err)
	}
	return e, nil
}

// SpawnWall creates a static wall segment.
func SpawnWall(w *ecs.World, spec prefabs.WallSpec) (ecs.Entity, error) {
	thickness := spec.Thickness
	if thickness <= 0 {
		thickness = 1
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallComponent.Kind(), &component.Wall{
		AX: spec.AX, AY: spec.AY,
		BX: spec.BX, BY: spec.BY,
		Thickness: thickness,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("spawn wall: %w", err)
	}
	return e, nil
}

// SpawnWeaponPickup lays slot on the floor, keeping its counters.
func SpawnWeaponPickup(w *ecs.World, x, y float64, slot component.WeaponSlot) (ecs.Entity, error) {
	kept := slot
	return spawnPickup(w, x, y, component.Pickup{
		Kind:   component.PickupWeapon,
		Name:   slot.Profile.Name,
		Weapon: &kept,
	})
}

// SpawnItemPickup lays the named item on the floor.
func SpawnItemPickup(w *ecs.World, x, y float64, name string) (ecs.Entity, error) {
	if _, err := prefabs.LoadItemSpec(name); err != nil {
		return 0, fmt.Errorf("spawn pickup: %w", err)
	}
	return spawnPickup(w, x, y, component.Pickup{Kind: component.PickupItem, Name: name})
}

func spawnPickup(w *ecs.World, x, y float64, p component.Pickup) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addAll(w, e,
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
		},
		func() error { return ecs.Add(w, e, component.PickupComponent.Kind(), &p) },
	); err != nil {
		return 0, fmt.Errorf("spawn pickup: %w", err)
	}
	return e, nil
}

// SpawnHitMarker shows the damage dealt at x, y for a few frames.
func SpawnHitMarker(w *ecs.World, x, y, damage float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addAll(w, e,
		func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
		},
		func() error {
			return ecs.Add(w, e, component.HitMarkerComponent.Kind(), &component.HitMarker{Damage: damage})
		},
		func() error {
			return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: HitMarkerFrames})
		},
	); err != nil {
		return 0, fmt.Errorf("spawn hit marker: %w", err)
	}
	return e, nil
}

// RequestArenaReset asks the game loop to rebuild the arena.
func RequestArenaReset(w *ecs.World, reason string) {
	if _, ok := w.First(component.ArenaResetRequestComponent.Kind()); ok {
		return
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ArenaResetRequestComponent.Kind(), &component.ArenaResetRequest{Reason: reason})
}

// addAll runs the adders in order and destroys e on the first failure.
func addAll(w *ecs.World, e ecs.Entity, adders ...func() error) error {
	for _, add := range adders {
		if err := add(); err != nil {
			ecs.DestroyEntity(w, e)
			return err
		}
	}
	return nil
}
