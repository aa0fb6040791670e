package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/topdown/common"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"golang.org/x/image/colornames"
)

const (
	hudLineHeight = 14
	hudPanelWidth = 150
	hudBarHeight  = 3
)

// drawHUD prints one panel per player: health, weapon, magazine and
// reserve, heat, the reload bar and the items carried.
func drawHUD(screen *ebiten.Image, w *ecs.World, face ebtext.Face, frames int) {
	if screen == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		x := 8.0
		if p.Index%2 == 1 {
			x = common.BaseWidth - hudPanelWidth - 8
		}
		lines := hudLines(w, e, p)
		for i, line := range lines {
			op := &ebtext.DrawOptions{}
			op.GeoM.Translate(x, 6+float64(i*hudLineHeight))
			op.ColorScale.ScaleWithColor(playerColor[p.Index%len(playerColor)])
			ebtext.Draw(screen, line, face, op)
		}

		actions, ok := ecs.Get(w, e, component.ActionsComponent.Kind())
		if !ok {
			return
		}
		we, weapon, ok := entity.WeaponOf(w, e)
		if !ok || actions.ReloadWeapon != uint64(we) {
			return
		}
		st := actions.Machine.Reload()
		if st == nil || weapon.Profile.ReloadTime <= 0 {
			return
		}
		frac := float32(common.Clamp(st.Elapsed/weapon.Profile.ReloadTime, 0, 1))
		y := float32(6 + len(lines)*hudLineHeight + 2)
		vector.FillRect(screen, float32(x), y, hudPanelWidth, hudBarHeight, colornames.Dimgray, false)
		vector.FillRect(screen, float32(x), y, hudPanelWidth*frac, hudBarHeight, colornames.Gold, false)
	})

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", frames, ebiten.ActualFPS()), 8, common.BaseHeight-18)
}

func hudLines(w *ecs.World, e ecs.Entity, p *component.Player) []string {
	lines := []string{fmt.Sprintf("P%d", p.Index+1)}
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		lines[0] += fmt.Sprintf("  HP %.0f/%.0f", math.Max(0, c.CurrentHealth), c.MaxHealth)
	}

	_, weapon, ok := entity.WeaponOf(w, e)
	if !ok {
		return append(lines, "unarmed")
	}
	prof := &weapon.Profile
	reserve := "inf"
	if !prof.Infinite {
		reserve = fmt.Sprint(prof.Ammo)
	}
	lines = append(lines, fmt.Sprintf("%s  %d/%d  %s", prof.Name, prof.MagAmmo, prof.MagSize, reserve))

	if prof.Heat > 0 || prof.Broken {
		heat := fmt.Sprintf("heat %.2f", prof.Heat)
		if !math.IsInf(prof.MaxHeat, 1) {
			heat += fmt.Sprintf("/%.2f", prof.MaxHeat)
		}
		if prof.Broken {
			heat += "  BROKEN"
		}
		lines = append(lines, heat)
	}

	if inv, ok := ecs.Get(w, e, component.InventoryComponent.Kind()); ok && len(inv.Items) > 0 {
		lines = append(lines, strings.Join(inv.Items, ", "))
	}
	return lines
}
