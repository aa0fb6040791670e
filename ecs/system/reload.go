package system

import (
	"log/slog"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
)

// ReloadTriggerSystem starts reloads. A reload starts while the reload
// input is held, or when the trigger is pulled on an empty magazine, as
// long as the weapon has room and rounds to load and no reload exists.
// Reloads bound to a weapon the owner no longer holds are dropped.
type ReloadTriggerSystem struct{}

func NewReloadTriggerSystem() *ReloadTriggerSystem { return &ReloadTriggerSystem{} }

func (s *ReloadTriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.InputComponent.Kind(), component.ActionsComponent.Kind(), func(e ecs.Entity, in *component.Input, actions *component.Actions) {
		we, weapon, ok := entity.WeaponOf(w, e)
		if actions.Machine.Reload() != nil {
			if !ok || uint64(we) != actions.ReloadWeapon {
				actions.Machine.EndReload()
				actions.ReloadWeapon = 0
			}
			return
		}
		if !ok {
			return
		}

		p := &weapon.Profile
		wants := in.Reload || (in.ShootPressed && p.MagAmmo == 0)
		if !wants || !p.CanStartReload() {
			return
		}
		if !actions.Machine.StartReload() {
			return
		}
		actions.ReloadWeapon = uint64(we)
		slog.Debug("reload started", "entity", e, "weapon", p.Name, "weapon_id", weapon.ID)
	})
}

// ReloadSystem advances running reloads and refills magazines. The reload
// clock stands still while the owner rolls.
type ReloadSystem struct{}

func NewReloadSystem() *ReloadSystem { return &ReloadSystem{} }

func (s *ReloadSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.ActionsComponent.Kind(), func(e ecs.Entity, actions *component.Actions) {
		st := actions.Machine.Reload()
		if st == nil {
			return
		}
		we, weapon, ok := entity.WeaponOf(w, e)
		if !ok || uint64(we) != actions.ReloadWeapon {
			actions.Machine.EndReload()
			actions.ReloadWeapon = 0
			return
		}

		p := &weapon.Profile
		if !p.StepReload(st, dt, actions.Machine.ReloadPaused()) {
			return
		}
		actions.Machine.EndReload()
		actions.ReloadWeapon = 0
		slog.Debug("reload finished", "entity", e, "weapon", p.Name, "mag_ammo", p.MagAmmo, "ammo", p.Ammo)
	})
}
