package system

import (
	"math"
	"testing"

	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func TestMoveSector(t *testing.T) {
	cases := []struct {
		name string
		v    common.Vec2
		want string
	}{
		{"still", common.Vec2{}, AnimIdle},
		{"down", common.Vec2{Y: 1}, AnimFront},
		{"down_right", common.Vec2{X: 1, Y: 1}, AnimFrontSide},
		{"down_left", common.Vec2{X: -1, Y: 1}, AnimFrontSide},
		{"right", common.Vec2{X: 1}, AnimSide},
		{"left", common.Vec2{X: -1}, AnimSide},
		{"up_left", common.Vec2{X: -1, Y: -1}, AnimBackSide},
		{"up", common.Vec2{Y: -1}, AnimBack},
		{"mostly_down", common.Vec2{X: 0.1, Y: 1}, AnimFront},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveSector(c.v); got != c.want {
				t.Fatalf("MoveSector(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func newWalker(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.ActionsComponent.Kind(), &component.Actions{})
	mustAdd(t, w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), &component.Animator{State: AnimIdle})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    70,
		RollSpeed:    160,
		RollDuration: 0.4,
	})
	return e
}

func TestMovementSystem(t *testing.T) {
	cases := []struct {
		name  string
		move  common.Vec2
		vel   common.Vec2
		state string
		flip  bool
	}{
		{"idle", common.Vec2{}, common.Vec2{}, AnimIdle, false},
		{"right", common.Vec2{X: 1}, common.Vec2{X: 70}, AnimSide, false},
		{"left", common.Vec2{X: -0.5}, common.Vec2{X: -35}, AnimSide, true},
		{"clamped", common.Vec2{X: 3, Y: 4}, common.Vec2{X: 42, Y: 56}, AnimFrontSide, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := newWalker(t, w)
			input(t, w, e).Move = c.move

			ecs.NewScheduler(NewMovementSystem()).Step(w, dt)

			vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
			if !near(vel.X, c.vel.X) || !near(vel.Y, c.vel.Y) {
				t.Fatalf("velocity = %+v, want %+v", *vel, c.vel)
			}
			anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
			if anim.State != c.state || anim.FlipX != c.flip {
				t.Fatalf("animator = %+v", *anim)
			}
		})
	}
}

func TestRollSystem(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w)
	sched := ecs.NewScheduler(NewRollSystem(), NewMovementSystem())
	in := input(t, w, e)
	in.RollPressed = true

	sched.Step(w, dt)
	in.RollPressed = false
	// Walking input is ignored while rolling.
	in.Move = common.Vec2{X: 1}

	act := actions(t, w, e)
	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if act.Machine.Roll() == nil {
		t.Fatal("roll did not start")
	}
	if !anim.Manual || anim.State != AnimDodge+AnimFront {
		t.Fatalf("animator = %+v", *anim)
	}
	if !near(vel.X, 0) || !near(vel.Y, 160) {
		t.Fatalf("roll velocity = %+v", *vel)
	}

	n := 1
	lastFrame := anim.Frame
	for act.Machine.Roll() != nil && n < 100 {
		sched.Step(w, dt)
		n++
		if act.Machine.Roll() == nil {
			break
		}
		if anim.Frame < lastFrame || anim.Frame > 9 {
			t.Fatalf("frame went from %d to %d", lastFrame, anim.Frame)
		}
		lastFrame = anim.Frame
		if !near(vel.X, 0) || !near(vel.Y, 160) {
			t.Fatalf("tick %d: velocity = %+v", n, *vel)
		}
	}
	if n != ticks(0.4) {
		t.Fatalf("roll lasted %d ticks, want %d", n, ticks(0.4))
	}
	if lastFrame < 8 {
		t.Fatalf("roll reached frame %d before ending", lastFrame)
	}
	// Walking takes over in the tick the roll ends.
	if anim.Manual || anim.State != AnimSide {
		t.Fatalf("animator after roll = %+v", *anim)
	}
	if !near(vel.X, 70) || !near(vel.Y, 0) {
		t.Fatalf("velocity after roll = %+v", *vel)
	}
}

func TestRollDirectionFollowsMovement(t *testing.T) {
	w := ecs.NewWorld()
	e := newWalker(t, w)
	in := input(t, w, e)
	in.Move = common.Vec2{X: -3, Y: 0}
	in.RollPressed = true

	ecs.NewScheduler(NewRollSystem()).Step(w, dt)

	anim, _ := ecs.Get(w, e, component.AnimatorComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if anim.State != AnimDodge+AnimSide || !anim.FlipX {
		t.Fatalf("animator = %+v", *anim)
	}
	if !near(vel.X, -160) || math.Abs(vel.Y) > 1e-9 {
		t.Fatalf("velocity = %+v", *vel)
	}
}
