package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// ModifierSource lists the shot modifiers that apply to owner's shots.
type ModifierSource interface {
	Modifiers(w *ecs.World, owner ecs.Entity) []combat.ShotModifier
}

// ModifierSourceFunc adapts a function to ModifierSource.
type ModifierSourceFunc func(w *ecs.World, owner ecs.Entity) []combat.ShotModifier

func (f ModifierSourceFunc) Modifiers(w *ecs.World, owner ecs.Entity) []combat.ShotModifier {
	return f(w, owner)
}

// Script variables a modifier may read and reassign.
var shotScriptVars = []string{"salve", "speed", "speed_spread", "spread", "distance", "damage"}

// ScriptModifiers runs inventory item scripts as shot modifiers. Scripts are
// compiled on first use and kept until Invalidate.
type ScriptModifiers struct {
	cache map[string]*scriptModifier
	// items whose prefab or script failed to load; logged once
	failed map[string]bool
}

func NewScriptModifiers() *ScriptModifiers {
	return &ScriptModifiers{
		cache:  map[string]*scriptModifier{},
		failed: map[string]bool{},
	}
}

// Invalidate drops every compiled script so edited files are picked up.
func (m *ScriptModifiers) Invalidate() {
	if m == nil {
		return
	}
	clear(m.cache)
	clear(m.failed)
}

// Modifiers implements ModifierSource over the owner's inventory.
func (m *ScriptModifiers) Modifiers(w *ecs.World, owner ecs.Entity) []combat.ShotModifier {
	if m == nil {
		return nil
	}
	inv, ok := ecs.Get(w, owner, component.InventoryComponent.Kind())
	if !ok || len(inv.Items) == 0 {
		return nil
	}
	out := make([]combat.ShotModifier, 0, len(inv.Items))
	for _, item := range inv.Items {
		mod, err := m.Modifier(item)
		if err != nil {
			if !m.failed[item] {
				m.failed[item] = true
				slog.Warn("item modifier unavailable", "entity", owner, "item", item, "err", err)
			}
			continue
		}
		if mod != nil {
			out = append(out, mod)
		}
	}
	return out
}

// Modifier returns the compiled modifier of an item, or nil for items
// without a script.
func (m *ScriptModifiers) Modifier(item string) (combat.ShotModifier, error) {
	if m.cache == nil {
		m.cache = map[string]*scriptModifier{}
		m.failed = map[string]bool{}
	}
	if mod, ok := m.cache[item]; ok {
		if mod == nil {
			return nil, nil
		}
		return mod, nil
	}

	spec, err := prefabs.LoadItemSpec(item)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(spec.Script) == "" {
		m.cache[item] = nil
		return nil, nil
	}
	mod, err := compileShotScript(item, spec.Script)
	if err != nil {
		return nil, err
	}
	m.cache[item] = mod
	return mod, nil
}

type scriptModifier struct {
	name     string
	compiled *tengo.Compiled
}

func compileShotScript(name, path string) (*scriptModifier, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("item %q: load script: %w", name, err)
	}

	script := tengo.NewScript(src)
	for _, v := range shotScriptVars {
		if err := script.Add(v, 0); err != nil {
			return nil, fmt.Errorf("item %q: declare %s: %w", name, v, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("item %q: compile: %w", name, err)
	}
	return &scriptModifier{name: name, compiled: compiled}, nil
}

func (s *scriptModifier) ModifyShot(shot combat.Shot) (combat.Shot, error) {
	if s == nil || s.compiled == nil {
		return shot, fmt.Errorf("nil script modifier")
	}
	in := map[string]any{
		"salve":        shot.Salve,
		"speed":        shot.Speed,
		"speed_spread": shot.SpeedSpread,
		"spread":       shot.Spread,
		"distance":     shot.Distance,
		"damage":       shot.Damage,
	}
	for _, v := range shotScriptVars {
		if err := s.compiled.Set(v, in[v]); err != nil {
			return shot, fmt.Errorf("item %q: set %s: %w", s.name, v, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return shot, fmt.Errorf("item %q: run: %w", s.name, err)
	}

	out := combat.Shot{
		Salve:       s.compiled.Get("salve").Int(),
		Speed:       s.compiled.Get("speed").Float(),
		SpeedSpread: s.compiled.Get("speed_spread").Float(),
		Spread:      s.compiled.Get("spread").Float(),
		Distance:    s.compiled.Get("distance").Float(),
		Damage:      s.compiled.Get("damage").Float(),
	}
	if out.Salve < 0 {
		out.Salve = 0
	}
	return out, nil
}
