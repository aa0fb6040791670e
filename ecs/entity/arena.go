package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

const (
	playerPrefab = "player.yaml"
	targetPrefab = "target.yaml"
)

// Arena lists what BuildArena spawned.
type Arena struct {
	Name    string
	Width   float64
	Height  float64
	Players []ecs.Entity
	Targets []ecs.Entity
}

// BuildArena loads the named arena layout and spawns its walls, up to
// maxPlayers players, target dummies and floor pickups into w.
func BuildArena(w *ecs.World, name string, maxPlayers int) (Arena, error) {
	spec, err := prefabs.LoadArenaSpec(name)
	if err != nil {
		return Arena{}, fmt.Errorf("build arena %q: %w", name, err)
	}
	if len(spec.Players) == 0 {
		return Arena{}, fmt.Errorf("build arena %q: no player spawns", name)
	}

	arena := Arena{Name: spec.Name, Width: spec.Width, Height: spec.Height}
	for _, ws := range spec.Walls {
		if _, err := SpawnWall(w, ws); err != nil {
			return arena, fmt.Errorf("build arena %q: %w", name, err)
		}
	}

	for i, ps := range spec.Players {
		if maxPlayers > 0 && i >= maxPlayers {
			break
		}
		e, err := NewPlayerAt(w, i, ps.X, ps.Y)
		if err != nil {
			return arena, fmt.Errorf("build arena %q: %w", name, err)
		}
		if len(ps.Weapons) > 0 {
			if err := SetArmory(w, e, ps.Weapons); err != nil {
				return arena, fmt.Errorf("build arena %q: player %d: %w", name, i, err)
			}
		}
		arena.Players = append(arena.Players, e)
	}

	for i, ts := range spec.Targets {
		e, err := NewTargetAt(w, ts)
		if err != nil {
			return arena, fmt.Errorf("build arena %q: target %d: %w", name, i, err)
		}
		arena.Targets = append(arena.Targets, e)
	}

	for i, ps := range spec.Pickups {
		switch {
		case ps.Weapon != "":
			slot, err := NewWeaponSlot(ps.Weapon)
			if err != nil {
				return arena, fmt.Errorf("build arena %q: pickup %d: %w", name, i, err)
			}
			if _, err := SpawnWeaponPickup(w, ps.X, ps.Y, slot); err != nil {
				return arena, fmt.Errorf("build arena %q: pickup %d: %w", name, i, err)
			}
		case ps.Item != "":
			if _, err := SpawnItemPickup(w, ps.X, ps.Y, ps.Item); err != nil {
				return arena, fmt.Errorf("build arena %q: pickup %d: %w", name, i, err)
			}
		default:
			return arena, fmt.Errorf("build arena %q: pickup %d names neither weapon nor item", name, i)
		}
	}

	slog.Info("arena built", "arena", arena.Name, "players", len(arena.Players), "targets", len(arena.Targets))
	return arena, nil
}

// NewPlayerAt builds player index at x, y.
func NewPlayerAt(w *ecs.World, index int, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, playerPrefab)
	if err != nil {
		return 0, err
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		p.Index = index
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		DestroyWithWeapon(w, e)
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return e, nil
}

// NewTargetAt builds a target dummy with the spawn's damage overrides.
func NewTargetAt(w *ecs.World, spec prefabs.TargetSpawnSpec) (ecs.Entity, error) {
	prefab := spec.Prefab
	if prefab == "" {
		prefab = targetPrefab
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, spec.X, spec.Y); err != nil {
		DestroyWithWeapon(w, e)
		return 0, fmt.Errorf("target: override transform: %w", err)
	}
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		if spec.DamagesAdded != nil {
			c.DamagesAdded = *spec.DamagesAdded
		}
		if spec.DamagesMultiplier != nil {
			c.DamagesMultiplier = *spec.DamagesMultiplier
		}
	}
	return e, nil
}
