package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

const (
	stickDeadzone = 0.2
	// how far ahead of a gamepad player the stick aim point sits
	stickAimReach = 50
)

// Input polls the devices once per tick and writes every player's
// component.Input. Player 0 plays keyboard and mouse, player 1 the first
// gamepad. A lone player gets the gamepad as well.
type Input struct {
	// last stick direction per player, kept while the stick rests
	stickAim map[int]common.Vec2
}

func NewInput() *Input {
	return &Input{stickAim: map[int]common.Vec2{}}
}

func (i *Input) Update(w *ecs.World, cam camera, players int) {
	if w == nil {
		return
	}
	pads := ebiten.GamepadIDs()

	ecs.ForEach3(w, component.InputComponent.Kind(), component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, in *component.Input, p *component.Player, t *component.Transform) {
		pos := t.Pos()
		var next component.Input
		switch p.Index {
		case 0:
			next = keyboardInput(cam)
			if players < 2 && len(pads) > 0 {
				i.mergeGamepad(&next, pads[0], p.Index, pos, false)
			}
		case 1:
			next.Aim = in.Aim
			if len(pads) > 0 {
				i.mergeGamepad(&next, pads[0], p.Index, pos, true)
			}
		default:
			next.Aim = in.Aim
		}
		*in = next
	})
}

func keyboardInput(cam camera) component.Input {
	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Move.Y++
	}

	mx, my := ebiten.CursorPosition()
	in.Aim = cam.toWorld(float64(mx), float64(my))

	in.Shoot = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.ShootPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Reload = ebiten.IsKeyPressed(ebiten.KeyR)
	in.ReloadPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Roll = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.RollPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	in.PickupPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)
	in.DropWeaponPressed = inpututil.IsKeyJustPressed(ebiten.KeyQ)
	_, wheel := ebiten.Wheel()
	in.NextWeaponPressed = inpututil.IsKeyJustPressed(ebiten.KeyX) || wheel < 0
	in.LastWeaponPressed = inpututil.IsKeyJustPressed(ebiten.KeyZ) || wheel > 0
	return in
}

// mergeGamepad ORs the pad's buttons into in. The sticks replace the
// keyboard move and, when ownAim is set, the aim point.
func (i *Input) mergeGamepad(in *component.Input, id ebiten.GamepadID, player int, pos common.Vec2, ownAim bool) {
	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > stickDeadzone {
		in.Move = common.Vec2{X: lx, Y: ly}
	}

	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone {
		i.stickAim[player] = common.Vec2{X: rx, Y: ry}.Normalize()
		ownAim = true
	}
	if dir, ok := i.stickAim[player]; ok && ownAim {
		in.Aim = pos.Add(dir.Scale(stickAimReach))
	}

	held := func(b ebiten.StandardGamepadButton) bool { return ebiten.IsStandardGamepadButtonPressed(id, b) }
	pressed := func(b ebiten.StandardGamepadButton) bool { return inpututil.IsStandardGamepadButtonJustPressed(id, b) }

	in.Shoot = in.Shoot || held(ebiten.StandardGamepadButtonFrontBottomRight)
	in.ShootPressed = in.ShootPressed || pressed(ebiten.StandardGamepadButtonFrontBottomRight)
	in.Reload = in.Reload || held(ebiten.StandardGamepadButtonRightLeft)
	in.ReloadPressed = in.ReloadPressed || pressed(ebiten.StandardGamepadButtonRightLeft)
	in.Roll = in.Roll || held(ebiten.StandardGamepadButtonRightBottom)
	in.RollPressed = in.RollPressed || pressed(ebiten.StandardGamepadButtonRightBottom)

	in.PickupPressed = in.PickupPressed || pressed(ebiten.StandardGamepadButtonRightRight)
	in.DropWeaponPressed = in.DropWeaponPressed || pressed(ebiten.StandardGamepadButtonRightTop)
	in.NextWeaponPressed = in.NextWeaponPressed || pressed(ebiten.StandardGamepadButtonFrontTopRight)
	in.LastWeaponPressed = in.LastWeaponPressed || pressed(ebiten.StandardGamepadButtonFrontTopLeft)
}
