package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestAimSystem(t *testing.T) {
	// revolver: handle (6, 2), barrel length 8, height -1
	cases := []struct {
		name   string
		target common.Vec2
		angle  float64
		flip   bool
		handle common.Vec2
		muzzle common.Vec2
	}{
		{"right", common.Vec2{X: 10}, 0, false, common.Vec2{X: 6, Y: 2}, common.Vec2{X: 14, Y: 1}},
		{"left", common.Vec2{X: -10}, math.Pi, true, common.Vec2{X: -6, Y: 2}, common.Vec2{X: -14, Y: 1}},
		{"down", common.Vec2{Y: 10}, math.Pi / 2, false, common.Vec2{X: 6, Y: 2}, common.Vec2{X: 7, Y: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newShooter(t, w, 0, 0, "revolver")
			input(t, w, e).Aim = c.target

			ecs.NewScheduler(NewAimSystem()).Step(w, dt)

			we, _ := weapon(t, w, e)
			aim, _ := ecs.Get(w, we, component.AimComponent.Kind())
			if !near(aim.Angle, c.angle) || aim.Flip != c.flip {
				t.Fatalf("angle = %v flip = %v", aim.Angle, aim.Flip)
			}
			if !near(aim.Handle.X, c.handle.X) || !near(aim.Handle.Y, c.handle.Y) {
				t.Fatalf("handle = %+v, want %+v", aim.Handle, c.handle)
			}
			if !near(aim.Muzzle.X, c.muzzle.X) || !near(aim.Muzzle.Y, c.muzzle.Y) {
				t.Fatalf("muzzle = %+v, want %+v", aim.Muzzle, c.muzzle)
			}
			wt, _ := ecs.Get(w, we, component.TransformComponent.Kind())
			if !near(wt.X, c.handle.X) || !near(wt.Rotation, c.angle) {
				t.Fatalf("weapon transform = %+v", *wt)
			}
		})
	}
}

func TestAimKeepsAngleOnZeroOffset(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "revolver")
	sched := ecs.NewScheduler(NewAimSystem())
	input(t, w, e).Aim = common.Vec2{Y: -5}
	sched.Step(w, dt)

	input(t, w, e).Aim = common.Vec2{}
	sched.Step(w, dt)

	we, _ := weapon(t, w, e)
	aim, _ := ecs.Get(w, we, component.AimComponent.Kind())
	if !near(aim.Angle, -math.Pi/2) {
		t.Fatalf("angle = %v, want %v", aim.Angle, -math.Pi/2)
	}
}

func TestAimSwayDuringReload(t *testing.T) {
	w := ecs.NewWorld()
	e := newShooter(t, w, 0, 0, "revolver")
	_, p := weapon(t, w, e)
	p.MagAmmo = 0
	input(t, w, e).Reload = true

	sched := ecs.NewScheduler(NewReloadTriggerSystem(), NewAimSystem(), NewReloadSystem())
	for range 30 {
		sched.Step(w, dt)
	}

	we, _ := weapon(t, w, e)
	aim, _ := ecs.Get(w, we, component.AimComponent.Kind())
	if aim.Sway <= 0 {
		t.Fatalf("sway = %v during reload", aim.Sway)
	}
	if !near(aim.Angle, 0) {
		t.Fatalf("sway leaked into angle: %v", aim.Angle)
	}
	wt, _ := ecs.Get(w, we, component.TransformComponent.Kind())
	if !near(wt.Rotation, aim.Angle+aim.Sway) {
		t.Fatalf("weapon rotation = %v, want %v", wt.Rotation, aim.Angle+aim.Sway)
	}
}
