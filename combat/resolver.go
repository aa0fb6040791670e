package combat

// BodyKind classifies one side of a contact.
type BodyKind int

const (
	BodyOther BodyKind = iota
	BodyBullet
	BodyWall
	BodyCombatant
)

func (k BodyKind) String() string {
	switch k {
	case BodyBullet:
		return "bullet"
	case BodyWall:
		return "wall"
	case BodyCombatant:
		return "combatant"
	}
	return "other"
}

// Body is one side of a contact. Bullet and Owner are set for bullets,
// Combatant for combatants.
type Body[H comparable] struct {
	Handle    H
	Kind      BodyKind
	Bullet    *Bullet
	Owner     H
	Combatant *Combatant
}

// Outcome is what a contact did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDespawn
	OutcomeDamage
)

// Resolution reports the effect of one contact. Bullet is the bullet to
// despawn for OutcomeDespawn and OutcomeDamage.
type Resolution[H comparable] struct {
	Outcome Outcome
	Bullet  H
	Target  H
	Damage  float64
}

// Resolve applies the contact rules to a pair of bodies. Damage is applied
// to the combatant in place.
func Resolve[H comparable](a, b Body[H]) Resolution[H] {
	if a.Kind != BodyBullet {
		a, b = b, a
	}
	if a.Kind != BodyBullet || a.Bullet == nil {
		return Resolution[H]{}
	}

	switch b.Kind {
	case BodyWall:
		return Resolution[H]{Outcome: OutcomeDespawn, Bullet: a.Handle, Target: b.Handle}
	case BodyCombatant:
		if b.Combatant == nil || b.Handle == a.Owner {
			return Resolution[H]{}
		}
		dmg := b.Combatant.TakeHit(a.Bullet.Damage)
		return Resolution[H]{Outcome: OutcomeDamage, Bullet: a.Handle, Target: b.Handle, Damage: dmg}
	}
	return Resolution[H]{}
}
