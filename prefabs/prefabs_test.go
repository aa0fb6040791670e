package prefabs

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWeaponArchetypesLoad(t *testing.T) {
	names := WeaponNames()
	want := []string{"automatic", "charged", "flamethrower", "kalachnikov", "laser", "revolver", "shotgun", "sniper"}
	if len(names) != len(want) {
		t.Fatalf("WeaponNames() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("WeaponNames()[%d] = %q, want %q", i, names[i], name)
		}
		spec, err := LoadWeaponSpec(name)
		if err != nil {
			t.Fatalf("LoadWeaponSpec(%q): %v", name, err)
		}
		if spec.Name != name {
			t.Fatalf("spec name %q, want %q", spec.Name, name)
		}
		if spec.FireRate <= 0 || spec.MagSize <= 0 {
			t.Fatalf("%s: missing fire_rate or mag_size", name)
		}
	}
}

func TestWeaponSpecValues(t *testing.T) {
	cases := []struct {
		name    string
		check   func(s WeaponSpec) bool
		explain string
	}{
		{"revolver", func(s WeaponSpec) bool { return s.Infinite && s.MagSize == 6 && s.Shoot == "manual" }, "infinite 6 round manual"},
		{"shotgun", func(s WeaponSpec) bool { return s.Salve == 8 && s.Reload == "per_round" }, "salve 8 per-round"},
		{"kalachnikov", func(s WeaponSpec) bool { return s.MinShot == 3 && s.SubFireRate == 10 }, "3 shot burst"},
		{"charged", func(s WeaponSpec) bool { return math.IsInf(s.MaxHeat, 1) && s.MinHeat == 0.5 }, "unbounded charge"},
		{"flamethrower", func(s WeaponSpec) bool { return s.Shoot == "overheat" && s.MaxHeat == 20 && s.Salve == 3 }, "overheat salve 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := LoadWeaponSpec(c.name)
			if err != nil {
				t.Fatal(err)
			}
			if !c.check(s) {
				t.Fatalf("%s: expected %s, got %+v", c.name, c.explain, s)
			}
		})
	}

	s, _ := LoadWeaponSpec("revolver")
	if got := s.Spread(); math.Abs(got-5*math.Pi/180) > 1e-12 {
		t.Fatalf("Spread() = %v", got)
	}
	if s.Color == nil {
		t.Fatal("expected revolver color")
	}
}

func TestUnknownArchetype(t *testing.T) {
	if _, err := LoadWeaponSpec("banana"); !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
	if _, err := LoadItemSpec(""); !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
}

func TestItemsAndScripts(t *testing.T) {
	for _, name := range ItemNames() {
		spec, err := LoadItemSpec(name)
		if err != nil {
			t.Fatalf("LoadItemSpec(%q): %v", name, err)
		}
		if spec.Script == "" && spec.Instant == nil {
			t.Fatalf("%s: item has no effect", name)
		}
		if spec.Script != "" {
			if _, err := LoadScript(spec.Script); err != nil {
				t.Fatalf("%s: script %q: %v", name, spec.Script, err)
			}
		}
	}
	apple, err := LoadItemSpec("health_apple")
	if err != nil || apple.Instant == nil || apple.Instant.MaxHealth != 50 {
		t.Fatalf("health_apple = %+v, %v", apple, err)
	}
}

func TestArenaSpec(t *testing.T) {
	arena, err := LoadArenaSpec("arena")
	if err != nil {
		t.Fatal(err)
	}
	if len(arena.Walls) < 4 || len(arena.Players) == 0 || len(arena.Targets) == 0 {
		t.Fatalf("arena incomplete: %+v", arena)
	}
	for _, p := range arena.Pickups {
		if (p.Weapon == "") == (p.Item == "") {
			t.Fatalf("pickup must name exactly one of weapon or item: %+v", p)
		}
	}
}

func TestEntityBuildSpecs(t *testing.T) {
	for _, name := range []string{"player.yaml", "target.yaml"} {
		spec, err := LoadEntityBuildSpec(name)
		if err != nil {
			t.Fatal(err)
		}
		if len(spec.Components) == 0 {
			t.Fatalf("%s: no components", name)
		}
	}

	spec, _ := LoadEntityBuildSpec("player.yaml")
	pc, err := DecodeComponentSpec[PlayerComponentSpec](spec.Components["player"])
	if err != nil {
		t.Fatal(err)
	}
	if pc.RollDuration <= 0 || pc.RollSpeed <= 0 {
		t.Fatalf("player roll tuning missing: %+v", pc)
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "weapons"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "weapons", "revolver.yaml"), []byte("name: revolver\nfire_rate: 9\nmag_size: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	old := DiskRoot()
	SetDiskRoot(dir)
	t.Cleanup(func() { SetDiskRoot(old) })

	s, err := LoadWeaponSpec("revolver")
	if err != nil {
		t.Fatal(err)
	}
	if s.FireRate != 9 {
		t.Fatalf("disk override ignored, fire_rate = %v", s.FireRate)
	}
	if s.MagSize != 1 {
		t.Fatalf("disk override ignored, mag_size = %v", s.MagSize)
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"prefabs/player.yaml", "player.yaml", "scripts/player.yaml"},
		{"weapons/laser.yaml", "weapons/laser.yaml", "scripts/weapons/laser.yaml"},
		{"prefabs/scripts/molasses.tengo", "scripts/molasses.tengo", "scripts/molasses.tengo"},
		{"molasses.tengo", "molasses.tengo", "scripts/molasses.tengo"},
	}
	for _, c := range cases {
		if got := cleanPrefabPath(c.in); got != c.prefab {
			t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.prefab)
		}
		if got := cleanScriptPath(c.in); got != c.script {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "weapons")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(sub, "laser.yaml")
	if err := os.WriteFile(target, []byte("name: laser\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changes:
		if got.Path != target || got.Kind != ChangeSpec {
			t.Fatalf("change %+v, want spec %q", got, target)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for changed prefab")
	}
}

func TestClassifyEvent(t *testing.T) {
	cases := []struct {
		name string
		ev   fsnotify.Event
		want Change
		ok   bool
	}{
		{"yaml write", fsnotify.Event{Name: "weapons/laser.yaml", Op: fsnotify.Write}, Change{Path: "weapons/laser.yaml", Kind: ChangeSpec}, true},
		{"yml create", fsnotify.Event{Name: "arena.YML", Op: fsnotify.Create}, Change{Path: "arena.YML", Kind: ChangeSpec}, true},
		{"script remove", fsnotify.Event{Name: "scripts/molasses.tengo", Op: fsnotify.Remove}, Change{Path: "scripts/molasses.tengo", Kind: ChangeScript}, true},
		{"chmod only", fsnotify.Event{Name: "arena.yaml", Op: fsnotify.Chmod}, Change{}, false},
		{"other file", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, Change{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := classifyEvent(c.ev)
			if ok != c.ok || got != c.want {
				t.Fatalf("classifyEvent = %+v, %v; want %+v, %v", got, ok, c.want, c.ok)
			}
		})
	}
}

func TestNewWatcherMissingRoot(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected an error for a missing root")
	}
}

func TestDebouncerWaitsForQuiet(t *testing.T) {
	t0 := time.Unix(0, 0)
	ms := func(n int) time.Time { return t0.Add(time.Duration(n) * time.Millisecond) }
	d := newDebouncer(100 * time.Millisecond)
	arena := Change{Path: "arena.yaml", Kind: ChangeSpec}
	script := Change{Path: "scripts/molasses.tengo", Kind: ChangeScript}

	d.add(arena, ms(0))
	d.add(arena, ms(50))
	d.add(script, ms(60))

	if at, ok := d.next(); !ok || !at.Equal(ms(150)) {
		t.Fatalf("next = %v, %v; want %v", at, ok, ms(150))
	}
	if got := d.due(ms(120)); len(got) != 0 {
		t.Fatalf("due before the window closed: %+v", got)
	}
	if got := d.due(ms(150)); len(got) != 1 || got[0] != arena {
		t.Fatalf("due at 150ms = %+v, want only %+v", got, arena)
	}
	if got := d.due(ms(160)); len(got) != 1 || got[0] != script {
		t.Fatalf("due at 160ms = %+v, want only %+v", got, script)
	}
	if _, ok := d.next(); ok {
		t.Fatal("debouncer still has pending changes")
	}
}

func TestWatcherReportsBurstOnceWithFinalContent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	target := filepath.Join(dir, "arena.yaml")
	for _, body := range []string{"name: tr", "name: training\n"} {
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case got := <-w.Changes:
		if got.Path != target {
			t.Fatalf("change for %q, want %q", got.Path, target)
		}
		data, err := os.ReadFile(got.Path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "name: training\n" {
			t.Fatalf("read %q after the change", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change for the written file")
	}

	select {
	case got := <-w.Changes:
		t.Fatalf("burst reported twice, extra %+v", got)
	case <-time.After(300 * time.Millisecond):
	}
}
