package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

const dt = 1.0 / 60

func ticks(seconds float64) int {
	return int(math.Round(seconds / dt))
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatal(err)
	}
}

// newShooter creates a bare armed owner at x, y aiming along +x.
func newShooter(t *testing.T, w *ecs.World, x, y float64, weapons ...string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{Aim: common.Vec2{X: x + 100, Y: y}})
	mustAdd(t, w, e, component.ActionsComponent.Kind(), &component.Actions{})
	if err := entity.SetArmory(w, e, weapons); err != nil {
		t.Fatal(err)
	}
	return e
}

// newDummy creates a combatant with a collider, the way arena targets are.
func newDummy(t *testing.T, w *ecs.World, x, y, health float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	c := combat.NewCombatant(health)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.CombatantComponent.Kind(), &c)
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 6, Mass: 1, Kinematic: true})
	return e
}

func input(t *testing.T, w *ecs.World, e ecs.Entity) *component.Input {
	t.Helper()
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok {
		t.Fatalf("%s has no input", e)
	}
	return in
}

func actions(t *testing.T, w *ecs.World, e ecs.Entity) *component.Actions {
	t.Helper()
	a, ok := ecs.Get(w, e, component.ActionsComponent.Kind())
	if !ok {
		t.Fatalf("%s has no actions", e)
	}
	return a
}

func weapon(t *testing.T, w *ecs.World, owner ecs.Entity) (ecs.Entity, *combat.Profile) {
	t.Helper()
	we, wc, ok := entity.WeaponOf(w, owner)
	if !ok {
		t.Fatalf("%s holds no weapon", owner)
	}
	return we, &wc.Profile
}

func bullets(w *ecs.World) []ecs.Entity {
	return w.Query(component.BulletComponent.Kind())
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
