package component

import "github.com/milk9111/topdown/combat"

// Actions is a combatant's roll/reload/burst state machine. ReloadWeapon is
// the weapon entity the running reload belongs to.
type Actions struct {
	Machine      combat.ActionMachine
	ReloadWeapon uint64
}

var ActionsComponent = NewComponent[Actions]()
