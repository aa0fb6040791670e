package entity

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"target_tag":   addTargetTag,
	"player":       addPlayer,
	"transform":    addTransform,
	"input":        addInput,
	"velocity":     addVelocity,
	"actions":      addActions,
	"animator":     addAnimator,
	"combatant":    addCombatant,
	"physics_body": addPhysicsBody,
	"armory":       addArmory,
	"inventory":    addInventory,
}

// Armory comes after transform so the equipped weapon starts at its owner.
var componentBuildOrder = []string{
	"player_tag",
	"target_tag",
	"player",
	"transform",
	"input",
	"velocity",
	"actions",
	"animator",
	"combatant",
	"physics_body",
	"armory",
	"inventory",
}

// BuildEntity creates an entity from a prefab listing components by name.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	names := make([]string, 0, len(spec.Components))
	for _, name := range componentBuildOrder {
		if _, ok := spec.Components[name]; ok {
			names = append(names, name)
		}
	}
	var unknown []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}
	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			DestroyWithWeapon(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	slog.Debug("entity built", "prefab", prefabPath, "entity", e)
	return e, nil
}

// SetEntityTransform moves e, and its physics body if one exists, to x, y.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.SetPosition(cp.Vector{X: x, Y: y})
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTargetTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		RollSpeed:    spec.RollSpeed,
		RollDuration: spec.RollDuration,
		Radius:       spec.Radius,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addActions(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ActionsComponent.Kind(), &component.Actions{})
}

type animatorSpec = prefabs.AnimatorComponentSpec

func addAnimator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animator spec: %w", err)
	}
	state := spec.State
	if state == "" {
		state = "idle"
	}
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{State: state})
}

type combatantSpec = prefabs.CombatantComponentSpec

func addCombatant(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[combatantSpec](raw)
	if err != nil {
		return fmt.Errorf("decode combatant spec: %w", err)
	}
	if spec.Health <= 0 {
		return fmt.Errorf("combatant health must be positive, got %v", spec.Health)
	}
	c := combat.NewCombatant(spec.Health)
	c.DamagesAdded = spec.DamagesAdded
	if spec.DamagesMultiplier != nil {
		c.DamagesMultiplier = *spec.DamagesMultiplier
	}
	return ecs.Add(w, e, component.CombatantComponent.Kind(), &c)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("physics body radius must be positive, got %v", spec.Radius)
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:    spec.Radius,
		Mass:      mass,
		Friction:  spec.Friction,
		Kinematic: spec.Kinematic,
		Sensor:    spec.Sensor,
	})
}

type armorySpec = prefabs.ArmoryComponentSpec

func addArmory(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[armorySpec](raw)
	if err != nil {
		return fmt.Errorf("decode armory spec: %w", err)
	}
	return SetArmory(w, e, spec.Weapons)
}

type inventorySpec = prefabs.InventoryComponentSpec

func addInventory(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[inventorySpec](raw)
	if err != nil {
		return fmt.Errorf("decode inventory spec: %w", err)
	}
	for _, name := range spec.Items {
		if _, err := prefabs.LoadItemSpec(name); err != nil {
			return err
		}
	}
	items := append([]string(nil), spec.Items...)
	return ecs.Add(w, e, component.InventoryComponent.Kind(), &component.Inventory{Items: items})
}
