package system

import (
	"testing"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestScriptModifiers(t *testing.T) {
	base := combat.Shot{Salve: 1, Speed: 90, SpeedSpread: 1, Spread: 0.1, Distance: 80, Damage: 10}
	cases := []struct {
		item string
		want combat.Shot
	}{
		{"molasses", combat.Shot{Salve: 2, Speed: 45, SpeedSpread: 1, Spread: 0.1, Distance: 80, Damage: 10}},
		{"hollow_point", combat.Shot{Salve: 1, Speed: 90, SpeedSpread: 1, Spread: 0.1, Distance: 80, Damage: 15}},
	}
	mods := NewScriptModifiers()
	for _, c := range cases {
		t.Run(c.item, func(t *testing.T) {
			m, err := mods.Modifier(c.item)
			if err != nil {
				t.Fatal(err)
			}
			got, err := m.ModifyShot(base)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Fatalf("ModifyShot = %+v, want %+v", got, c.want)
			}
			// Compiled scripts are reused and start from the new input.
			again, err := m.ModifyShot(base)
			if err != nil || again != c.want {
				t.Fatalf("second run = %+v, %v", again, err)
			}
		})
	}

	if m, err := mods.Modifier("health_apple"); err != nil || m != nil {
		t.Fatalf("instant item modifier = %v, %v", m, err)
	}
	if _, err := mods.Modifier("no_such_item"); err == nil {
		t.Fatal("expected error for unknown item")
	}
}

func TestScriptModifiersFromInventory(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.InventoryComponent.Kind(), &component.Inventory{
		Items: []string{"molasses", "no_such_item", "health_apple", "hollow_point"},
	})

	mods := NewScriptModifiers()
	got := mods.Modifiers(w, e)
	if len(got) != 2 {
		t.Fatalf("%d modifiers, want 2", len(got))
	}

	shot := combat.Shot{Salve: 3, Speed: 100, Damage: 1}
	for _, m := range got {
		var err error
		if shot, err = m.ModifyShot(shot); err != nil {
			t.Fatal(err)
		}
	}
	if shot.Salve != 6 || shot.Speed != 50 || shot.Damage != 6 {
		t.Fatalf("shot = %+v", shot)
	}

	if n := len(mods.Modifiers(w, ecs.CreateEntity(w))); n != 0 {
		t.Fatalf("%d modifiers without inventory", n)
	}

	mods.Invalidate()
	if len(mods.cache) != 0 || len(mods.failed) != 0 {
		t.Fatal("Invalidate kept compiled scripts")
	}
}
