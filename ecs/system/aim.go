package system

import (
	"math"

	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// AimSystem points each equipped weapon from its owner toward the owner's
// aim target and publishes the pose: flip, handle, muzzle and reload sway.
type AimSystem struct{}

func NewAimSystem() *AimSystem { return &AimSystem{} }

func (s *AimSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, in *component.Input, t *component.Transform) {
		we, weapon, ok := entity.WeaponOf(w, e)
		if !ok {
			return
		}
		aim, ok := ecs.Get(w, we, component.AimComponent.Kind())
		if !ok {
			return
		}

		owner := t.Pos()
		if dir := in.Aim.Sub(owner); !dir.IsZero() {
			aim.Angle = dir.Angle()
		}
		aim.Flip = math.Abs(aim.Angle) > math.Pi/2

		aim.Sway = 0
		if actions, ok := ecs.Get(w, e, component.ActionsComponent.Kind()); ok && actions.ReloadWeapon == uint64(we) {
			aim.Sway = weapon.Profile.Sway(actions.Machine.Reload())
		}

		aim.Handle, aim.Muzzle = weaponPose(owner, &weapon.Profile, aim.Angle, aim.Flip)

		if wt, ok := ecs.Get(w, we, component.TransformComponent.Kind()); ok {
			wt.X, wt.Y = aim.Handle.X, aim.Handle.Y
			wt.Rotation = aim.Angle + aim.Sway
		}
	})
}

// weaponPose returns where owner holds a weapon aimed at angle and where
// its barrel ends. Flipping mirrors the handle and barrel heights.
func weaponPose(owner common.Vec2, p *combat.Profile, angle float64, flip bool) (handle, muzzle common.Vec2) {
	hx, bh := p.HandleX, p.BarrelHeight
	if flip {
		hx, bh = -hx, -bh
	}
	handle = owner.Add(common.Vec2{X: hx, Y: p.HandleY})
	muzzle = handle.Add(common.Vec2{X: p.BarrelLength, Y: bh}.Rotate(angle))
	return handle, muzzle
}
