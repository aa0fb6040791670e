package system

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/combat/mocks"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/mock/gomock"
)

func reloadScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(NewRollSystem(), NewReloadTriggerSystem(), NewAimSystem(), NewShootSystem(nil, nil), NewReloadSystem())
}

func TestReloadRefills(t *testing.T) {
	cases := []struct {
		name     string
		weapon   string
		ammo     int
		mag      int
		hold     bool
		run      int
		wantMag  int
		wantAmmo int
	}{
		// basic: the whole magazine in one go
		{"basic", "automatic", 50, 2, false, ticks(2), 6, 46},
		// per round: one round, then the reload is gone
		{"per_round", "shotgun", 18, 0, false, ticks(0.5) * 2, 1, 17},
		// per round held: a fresh reload per round
		{"per_round_held", "shotgun", 18, 0, true, ticks(0.5) * 3, 3, 15},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newShooter(t, w, 0, 0, c.weapon)
			_, p := weapon(t, w, e)
			p.Ammo, p.MaxAmmo, p.MagAmmo, p.MagSize = c.ammo, 200, c.mag, 6

			in := input(t, w, e)
			in.Reload = true
			sched := reloadScheduler()
			for i := range c.run {
				sched.Step(w, dt)
				if i == 0 && !c.hold {
					in.Reload = false
				}
			}

			if p.MagAmmo != c.wantMag || p.Ammo != c.wantAmmo {
				t.Fatalf("mag %d ammo %d, want mag %d ammo %d", p.MagAmmo, p.Ammo, c.wantMag, c.wantAmmo)
			}
			act := actions(t, w, e)
			if !c.hold && (act.Machine.Reload() != nil || act.ReloadWeapon != 0) {
				t.Fatal("reload state left behind")
			}
		})
	}
}

func TestEmptyTriggerStartsReload(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "revolver")
	we, p := weapon(t, w, e)
	p.MagAmmo = 0
	in := input(t, w, e)
	in.Shoot, in.ShootPressed = true, true

	reloadScheduler().Step(w, dt)

	act := actions(t, w, e)
	if act.Machine.Reload() == nil || act.ReloadWeapon != uint64(we) {
		t.Fatal("pulling the trigger on an empty magazine did not reload")
	}
	if n := len(bullets(w)); n != 0 {
		t.Fatalf("%d bullets from an empty magazine", n)
	}
	if p.LeftToFire != 0 {
		t.Fatalf("left to fire = %d", p.LeftToFire)
	}
}

func TestReloadInputIgnoredWithoutReload(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "flamethrower")
	_, p := weapon(t, w, e)
	p.MagAmmo = 100

	in := input(t, w, e)
	in.Reload = true
	in.Shoot, in.ShootPressed = true, true
	sched := reloadScheduler()
	for range ticks(0.5) {
		sched.Step(w, dt)
		in.ShootPressed = false
		if actions(t, w, e).Machine.Reload() != nil {
			t.Fatal("a weapon without reload started one")
		}
	}
	if len(bullets(w)) == 0 || p.MagAmmo >= 100 {
		t.Fatalf("holding reload blocked fire: %d bullets, mag %d", len(bullets(w)), p.MagAmmo)
	}
}

func TestRollPausesReload(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "automatic")
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{RollSpeed: 160, RollDuration: 0.4})
	_, p := weapon(t, w, e)
	p.MagAmmo = 0

	in := input(t, w, e)
	sched := reloadScheduler()
	in.Reload = true
	sched.Step(w, dt)
	in.Reload = false
	for range 9 {
		sched.Step(w, dt)
	}
	in.RollPressed = true
	sched.Step(w, dt)
	in.RollPressed = false

	// 2s of reload plus the paused roll.
	for range ticks(2) {
		sched.Step(w, dt)
	}
	act := actions(t, w, e)
	if act.Machine.Reload() == nil || p.MagAmmo != 0 {
		t.Fatal("reload finished although the roll paused it")
	}
	for range ticks(0.4) {
		sched.Step(w, dt)
	}
	if act.Machine.Reload() != nil || p.MagAmmo != p.MagSize {
		t.Fatalf("reload not resumed: mag %d", p.MagAmmo)
	}
}

func TestRollCancelsBurst(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "kalachnikov")
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{RollSpeed: 160, RollDuration: 0.4})
	_, p := weapon(t, w, e)
	sched := ecs.NewScheduler(NewRollSystem(), NewReloadTriggerSystem(), NewAimSystem(), NewShootSystem(nil, nil), NewBulletSystem())

	in := input(t, w, e)
	in.Shoot, in.ShootPressed = true, true
	sched.Step(w, dt)
	in.ShootPressed = false
	if n := len(bullets(w)); n != 1 || p.LeftToFire != 2 {
		t.Fatalf("first tick: %d bullets, left to fire %d", n, p.LeftToFire)
	}

	in.RollPressed = true
	sched.Step(w, dt)
	in.RollPressed = false
	if p.LeftToFire != 0 {
		t.Fatalf("left to fire = %d after roll", p.LeftToFire)
	}
	for range 30 {
		sched.Step(w, dt)
	}
	if n := len(bullets(w)); n != 1 {
		t.Fatalf("%d bullets, want the one fired before the roll", n)
	}
	if p.MagAmmo != 19 {
		t.Fatalf("mag = %d, want 19", p.MagAmmo)
	}
}

func TestShootSystemAppliesModifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	double := mocks.NewMockShotModifier(ctrl)
	broken := mocks.NewMockShotModifier(ctrl)
	double.EXPECT().ModifyShot(gomock.Any()).DoAndReturn(func(s combat.Shot) (combat.Shot, error) {
		s.Salve = 2
		s.Damage++
		return s, nil
	})
	broken.EXPECT().ModifyShot(gomock.Any()).Return(combat.Shot{}, errors.New("script failed"))
	source := ModifierSourceFunc(func(*ecs.World, ecs.Entity) []combat.ShotModifier {
		return []combat.ShotModifier{double, broken}
	})

	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "shotgun")
	in := input(t, w, e)
	in.Shoot, in.ShootPressed = true, true
	ecs.NewScheduler(NewAimSystem(), NewShootSystem(nil, source)).Step(w, dt)

	got := bullets(w)
	if len(got) != 2 {
		t.Fatalf("%d bullets, want 2", len(got))
	}
	for _, b := range got {
		bc, _ := ecs.Get(w, b, component.BulletComponent.Kind())
		tr, _ := ecs.Get(w, b, component.TransformComponent.Kind())
		if bc.Damage != 7 || ecs.Entity(bc.Owner) != e {
			t.Fatalf("bullet = %+v", bc)
		}
		// shotgun muzzle: handle (6, 3) plus barrel (12, -1)
		if !near(tr.X, 18) || !near(tr.Y, 2) || !near(bc.From.X, 18) {
			t.Fatalf("bullet spawned at %+v", *tr)
		}
	}
}

func TestShootSystemSkipsModifiersWithoutShot(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockShotModifier(ctrl)
	source := ModifierSourceFunc(func(*ecs.World, ecs.Entity) []combat.ShotModifier {
		return []combat.ShotModifier{m}
	})

	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "revolver")
	_, p := weapon(t, w, e)
	p.MagAmmo = 0
	in := input(t, w, e)
	in.Shoot, in.ShootPressed = true, true
	ecs.NewScheduler(NewAimSystem(), NewShootSystem(nil, source)).Step(w, dt)

	if n := len(bullets(w)); n != 0 {
		t.Fatalf("%d bullets from an empty magazine", n)
	}
}

func TestShootSystemSpread(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "shotgun")
	_, p := weapon(t, w, e)
	in := input(t, w, e)
	in.Shoot, in.ShootPressed = true, true
	rng := rand.New(rand.NewPCG(7, 11))
	ecs.NewScheduler(NewAimSystem(), NewShootSystem(rng, nil)).Step(w, dt)

	got := bullets(w)
	if len(got) != p.Salve {
		t.Fatalf("%d bullets, want %d", len(got), p.Salve)
	}
	angles := map[float64]bool{}
	for _, b := range got {
		bc, _ := ecs.Get(w, b, component.BulletComponent.Kind())
		if math.Abs(bc.Angle) > p.Spread+1e-9 {
			t.Fatalf("angle %v outside spread %v", bc.Angle, p.Spread)
		}
		if bc.Speed < p.Speed-p.SpeedSpread-1e-9 || bc.Speed > p.Speed+p.SpeedSpread+1e-9 {
			t.Fatalf("speed %v outside %v±%v", bc.Speed, p.Speed, p.SpeedSpread)
		}
		angles[bc.Angle] = true
	}
	if len(angles) < 2 {
		t.Fatal("spread produced identical angles")
	}
	if p.MagAmmo != 5 {
		t.Fatalf("mag = %d, want 5", p.MagAmmo)
	}
}
