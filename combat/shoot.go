package combat

import (
	"math"
	"math/rand/v2"
)

// Trigger is the debounced fire input for one tick.
type Trigger struct {
	Pressed     bool // held this tick
	JustPressed bool // went down this tick
}

// Shot is one flush of a burst. The caller turns it into Salve bullets,
// after letting inventory modifiers adjust it.
type Shot struct {
	Salve       int
	Speed       float64
	SpeedSpread float64
	Spread      float64
	Distance    float64
	Damage      float64
}

//go:generate go tool mockgen -source=shoot.go -destination=mocks/mock_shot_modifier.go -package=mocks

// ShotModifier adjusts a shot before its bullets are spawned.
type ShotModifier interface {
	ModifyShot(Shot) (Shot, error)
}

// Shoot advances the weapon by dt and reports the shot flushed this tick,
// if any. suppressed is true while the owner rolls or reloads; it cancels
// any burst in progress and blocks new ones.
func (p *Profile) Shoot(trig Trigger, suppressed bool, dt float64) (Shot, bool) {
	if p == nil {
		return Shot{}, false
	}
	p.SinceBurst += dt
	p.SinceShot += dt

	if suppressed {
		p.cancelBurst()
	}

	switch p.Mode {
	case ShootManual:
		if trig.JustPressed && p.burstReady(suppressed) {
			p.startBurst()
		}
	case ShootAuto:
		if trig.Pressed && p.burstReady(suppressed) {
			p.startBurst()
		}
	case ShootCharging:
		p.charge(trig, suppressed, dt)
	case ShootOverheat:
		p.overheat(trig, suppressed, dt)
	}

	return p.flush()
}

func (p *Profile) burstReady(suppressed bool) bool {
	return !suppressed &&
		!p.Broken &&
		p.LeftToFire == 0 &&
		p.MagAmmo > 0 &&
		p.SinceBurst+gateEpsilon >= p.BurstInterval()
}

func (p *Profile) startBurst() {
	n := min(p.MinShot, p.MagAmmo)
	if n <= 0 {
		return
	}
	p.LeftToFire = n
	p.SinceBurst = 0
	p.firstShot = true
}

func (p *Profile) cancelBurst() {
	if p.LeftToFire > 0 {
		p.LeftToFire = 0
		p.endBurst()
	}
	// A pending charge is lost too.
	if p.Mode == ShootCharging && !p.Broken {
		p.Heat = 0
	}
}

// Holster drops a burst in progress and any pending charge. Heat from
// overheating is kept so a broken weapon stays broken while carried.
func (p *Profile) Holster() {
	if p == nil {
		return
	}
	p.cancelBurst()
}

func (p *Profile) endBurst() {
	p.firstShot = false
	if p.Mode == ShootCharging && !p.Broken {
		p.Heat = 0
	}
}

// charge builds heat while the trigger is held and releases a burst whose
// strength depends on the heat reached.
func (p *Profile) charge(trig Trigger, suppressed bool, dt float64) {
	if p.Broken {
		p.cool(dt)
		return
	}
	if p.LeftToFire > 0 || suppressed {
		return
	}
	if trig.Pressed {
		p.Heat += dt
		if p.Heat > p.MaxHeat {
			p.Broken = true
		}
		return
	}
	if p.Heat == 0 {
		return
	}
	if p.Heat >= p.MinHeat && p.MagAmmo > 0 {
		p.startBurst()
		return
	}
	p.Heat = 0
}

// overheat builds heat on every held tick and fires while the heat sits in
// [MinHeat, MaxHeat). Past MaxHeat the weapon breaks until it cools to 0.
func (p *Profile) overheat(trig Trigger, suppressed bool, dt float64) {
	if p.Broken {
		p.LeftToFire = 0
		p.cool(dt)
		return
	}
	if !trig.Pressed || suppressed {
		p.cool(dt)
		return
	}
	p.Heat += dt
	if p.Heat > p.MaxHeat {
		p.Broken = true
		p.LeftToFire = 0
		p.firstShot = false
		return
	}
	if p.Heat >= p.MinHeat && p.burstReady(suppressed) {
		p.startBurst()
	}
}

func (p *Profile) cool(dt float64) {
	p.Heat = math.Max(0, p.Heat-p.HeatDecay*dt)
	if p.Heat == 0 {
		p.Broken = false
	}
}

func (p *Profile) flush() (Shot, bool) {
	if p.LeftToFire <= 0 {
		p.LeftToFire = 0
		return Shot{}, false
	}
	if p.Broken || p.MagAmmo <= 0 {
		p.LeftToFire = 0
		p.endBurst()
		return Shot{}, false
	}
	if !p.firstShot && p.SinceShot+gateEpsilon < p.ShotInterval() {
		return Shot{}, false
	}

	shot := p.shot()
	p.firstShot = false
	p.SinceShot = 0
	p.MagAmmo--
	p.LeftToFire--
	if p.LeftToFire == 0 {
		p.endBurst()
	}
	return shot, true
}

func (p *Profile) shot() Shot {
	s := Shot{
		Salve:       p.Salve,
		Speed:       p.Speed,
		SpeedSpread: p.SpeedSpread,
		Spread:      p.Spread,
		Distance:    p.Distance,
		Damage:      p.Damage,
	}
	if p.Mode == ShootCharging {
		scale := ChargeScale(p.Heat)
		s.Speed *= scale
		s.Spread *= scale
		s.Distance *= scale
		s.Damage *= 1 + p.Heat
	}
	return s
}

// ChargeScale is 1 with no heat and grows with log2 of the heat.
func ChargeScale(heat float64) float64 {
	if heat <= 0 {
		return 1
	}
	return 1 + math.Log2(1+heat)
}

// A drawn bullet speed never drops below MinBulletSpeed or
// MinBulletSpeedFactor of the shot's speed, so every bullet reaches its
// distance budget.
const (
	MinBulletSpeed       = 1.0
	MinBulletSpeedFactor = 0.1
)

// Bullets spreads the shot's salve around angle. Every bullet draws its own
// angle and speed offsets.
func (s Shot) Bullets(angle float64, rng *rand.Rand) []Bullet {
	if s.Salve <= 0 {
		return nil
	}
	floor := math.Max(MinBulletSpeed, s.Speed*MinBulletSpeedFactor)
	out := make([]Bullet, 0, s.Salve)
	for range s.Salve {
		speed := math.Max(floor, s.Speed+uniform(rng, s.SpeedSpread))
		out = append(out, Bullet{
			Angle:    angle + uniform(rng, s.Spread),
			Speed:    speed,
			Damage:   s.Damage,
			Distance: s.Distance,
		})
	}
	return out
}

// uniform draws from [-r, r].
func uniform(rng *rand.Rand, r float64) float64 {
	if r <= 0 || rng == nil {
		return 0
	}
	return (rng.Float64()*2 - 1) * r
}
