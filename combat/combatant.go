package combat

// Combatant is anything bullets can hurt.
type Combatant struct {
	CurrentHealth     float64
	MaxHealth         float64
	DamagesAdded      float64
	DamagesMultiplier float64
}

func NewCombatant(maxHealth float64) Combatant {
	return Combatant{CurrentHealth: maxHealth, MaxHealth: maxHealth, DamagesMultiplier: 1}
}

// DamageFrom is what a hit of the given base damage costs this combatant.
func (c *Combatant) DamageFrom(base float64) float64 {
	if c == nil {
		return 0
	}
	return (base + c.DamagesAdded) * c.DamagesMultiplier
}

// TakeHit subtracts the damage of one hit and returns it.
func (c *Combatant) TakeHit(base float64) float64 {
	if c == nil {
		return 0
	}
	d := c.DamageFrom(base)
	c.CurrentHealth -= d
	return d
}

func (c *Combatant) Alive() bool {
	return c != nil && c.CurrentHealth > 0
}

// GrowMax raises both the maximum and the current health.
func (c *Combatant) GrowMax(amount float64) {
	if c == nil || amount <= 0 {
		return
	}
	c.MaxHealth += amount
	c.CurrentHealth += amount
}
