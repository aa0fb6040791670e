package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/combat"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/prefabs"
	"golang.org/x/image/colornames"
)

var (
	floorColor  = color.NRGBA{R: 0x1d, G: 0x1f, B: 0x24, A: 0xff}
	playerColor = []color.Color{colornames.Cornflowerblue, colornames.Orange}
)

// prefab colors, keyed "weapon:<name>" and "item:<name>"
var colorCache = map[string]color.Color{}

func weaponColor(name string) color.Color {
	if c, ok := colorCache["weapon:"+name]; ok {
		return c
	}
	var c color.Color = colornames.Lightgrey
	if spec, err := prefabs.LoadWeaponSpec(name); err == nil && spec.Color != nil {
		c = spec.Color.Color
	}
	colorCache["weapon:"+name] = c
	return c
}

func itemColor(name string) color.Color {
	if c, ok := colorCache["item:"+name]; ok {
		return c
	}
	var c color.Color = colornames.Plum
	if spec, err := prefabs.LoadItemSpec(name); err == nil && spec.Color != nil {
		c = spec.Color.Color
	}
	colorCache["item:"+name] = c
	return c
}

func drawWorld(screen *ebiten.Image, w *ecs.World, cam camera) {
	if screen == nil || w == nil {
		return
	}
	screen.Fill(floorColor)
	zoom := float32(cam.zoom)

	ecs.ForEach(w, component.WallComponent.Kind(), func(_ ecs.Entity, wall *component.Wall) {
		ax, ay := cam.toScreen(common.Vec2{X: wall.AX, Y: wall.AY})
		bx, by := cam.toScreen(common.Vec2{X: wall.BX, Y: wall.BY})
		vector.StrokeLine(screen, ax, ay, bx, by, float32(wall.Thickness)*zoom, colornames.Slategray, true)
	})

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
		x, y := cam.toScreen(t.Pos())
		size := float32(entity.PickupRadius) * zoom
		clr := itemColor(p.Name)
		if p.Kind == component.PickupWeapon {
			clr = weaponColor(p.Name)
		}
		vector.FillRect(screen, x-size, y-size, size*2, size*2, clr, false)
		vector.StrokeRect(screen, x-size, y-size, size*2, size*2, 1, colornames.White, false)
	})

	ecs.ForEach3(w, component.CombatantComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, c *combat.Combatant, t *component.Transform, body *component.PhysicsBody) {
		drawCombatant(screen, w, cam, e, c, t, body)
	})

	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.AimComponent.Kind(), func(_ ecs.Entity, wc *component.Weapon, aim *component.Aim) {
		drawWeapon(screen, cam, wc, aim)
	})

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, _ *component.Bullet, t *component.Transform) {
		x, y := cam.toScreen(t.Pos())
		vector.StrokeCircle(screen, x, y, float32(entity.BulletRadius)*zoom, 1.5, colornames.Gold, true)
	})

	ecs.ForEach3(w, component.HitMarkerComponent.Kind(), component.TransformComponent.Kind(), component.TTLComponent.Kind(), func(_ ecs.Entity, hm *component.HitMarker, t *component.Transform, ttl *component.TTL) {
		x, y := cam.toScreen(t.Pos())
		rise := common.Lerp(12, 0, float64(ttl.Frames)/entity.HitMarkerFrames)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f", hm.Damage), int(x)+6, int(y)-16-int(rise))
	})
}

func drawCombatant(screen *ebiten.Image, w *ecs.World, cam camera, e ecs.Entity, c *combat.Combatant, t *component.Transform, body *component.PhysicsBody) {
	x, y := cam.toScreen(t.Pos())
	r := float32(body.Radius * cam.zoom)

	var clr color.Color = colornames.Crimson
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		clr = playerColor[p.Index%len(playerColor)]
	}
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok && anim.Manual {
		// rolling
		clr = colornames.Lightgrey
	}
	vector.StrokeCircle(screen, x, y, r, 2, clr, true)

	if c.MaxHealth <= 0 {
		return
	}
	frac := float32(common.Clamp(c.CurrentHealth/c.MaxHealth, 0, 1))
	barW := r * 2
	vector.FillRect(screen, x-r, y-r-6, barW, 3, colornames.Darkred, false)
	vector.FillRect(screen, x-r, y-r-6, barW*frac, 3, colornames.Limegreen, false)
}

// drawWeapon draws the barrel from the handle, rotated by aim and reload
// sway.
func drawWeapon(screen *ebiten.Image, cam camera, wc *component.Weapon, aim *component.Aim) {
	p := &wc.Profile
	bh := p.BarrelHeight
	if aim.Flip {
		bh = -bh
	}
	angle := aim.Angle + aim.Sway
	tip := aim.Handle.Add(common.Vec2{X: p.BarrelLength, Y: bh}.Rotate(angle))
	base := aim.Handle.Add(common.Vec2{Y: bh}.Rotate(angle))

	hx, hy := cam.toScreen(base)
	tx, ty := cam.toScreen(tip)
	clr := weaponColor(p.Name)
	if p.Broken {
		clr = colornames.Red
	}
	vector.StrokeLine(screen, hx, hy, tx, ty, float32(math.Max(2, cam.zoom*1.5)), clr, true)
}

func drawCrosshair(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	x, y := float32(mx), float32(my)
	vector.StrokeLine(screen, x-5, y, x-2, y, 1, colornames.White, false)
	vector.StrokeLine(screen, x+2, y, x+5, y, 1, colornames.White, false)
	vector.StrokeLine(screen, x, y-5, x, y-2, 1, colornames.White, false)
	vector.StrokeLine(screen, x, y+2, x, y+5, 1, colornames.White, false)
}
