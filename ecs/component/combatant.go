package component

import "github.com/milk9111/topdown/combat"

// Combatant is anything bullets can damage.
var CombatantComponent = NewComponent[combat.Combatant]()
