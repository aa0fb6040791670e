// Package combat holds the weapon simulation rules: shoot and reload
// strategies, bullets, contact resolution, the dodge roll, and the action
// state machine that keeps them mutually exclusive. It knows nothing about
// the ECS or rendering; systems feed it time and input and apply its results.
package combat

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// gateEpsilon absorbs float drift when summed tick deltas are compared with
// an interval.
const gateEpsilon = 1e-9

var ErrInvalidProfile = errors.New("combat: invalid weapon profile")

// ShootMode selects how a weapon turns trigger input into bursts.
type ShootMode int

const (
	ShootManual ShootMode = iota
	ShootAuto
	ShootCharging
	ShootOverheat
)

func (m ShootMode) String() string {
	switch m {
	case ShootManual:
		return "manual"
	case ShootAuto:
		return "auto"
	case ShootCharging:
		return "charging"
	case ShootOverheat:
		return "overheat"
	}
	return fmt.Sprintf("ShootMode(%d)", int(m))
}

func ParseShootMode(s string) (ShootMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manual":
		return ShootManual, nil
	case "auto":
		return ShootAuto, nil
	case "charging":
		return ShootCharging, nil
	case "overheat":
		return ShootOverheat, nil
	}
	return 0, fmt.Errorf("unknown shoot mode %q: %w", s, ErrInvalidProfile)
}

// ReloadMode selects how a weapon moves reserve ammo into its magazine.
type ReloadMode int

const (
	ReloadBasic ReloadMode = iota
	ReloadPerRound
	ReloadNone
)

func (m ReloadMode) String() string {
	switch m {
	case ReloadBasic:
		return "basic"
	case ReloadPerRound:
		return "per_round"
	case ReloadNone:
		return "none"
	}
	return fmt.Sprintf("ReloadMode(%d)", int(m))
}

func ParseReloadMode(s string) (ReloadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return ReloadBasic, nil
	case "per_round", "perround":
		return ReloadPerRound, nil
	case "none":
		return ReloadNone, nil
	}
	return 0, fmt.Errorf("unknown reload mode %q: %w", s, ErrInvalidProfile)
}

// Profile is one weapon's tuning plus its live counters.
type Profile struct {
	Name   string
	Mode   ShootMode
	Reload ReloadMode

	Spread      float64 // radians, each side
	Speed       float64
	SpeedSpread float64
	Distance    float64
	Damage      float64
	Salve       int // bullets per shot
	MinShot     int // shots per burst
	LeftToFire  int

	Ammo       int
	MaxAmmo    int
	Infinite   bool
	MagAmmo    int
	MagSize    int
	ReloadTime float64

	FireRate    float64 // bursts per second
	SubFireRate float64 // shots per second inside a burst

	Heat      float64
	MinHeat   float64
	MaxHeat   float64
	HeatDecay float64 // heat lost per second while cooling
	Broken    bool

	SinceBurst float64
	SinceShot  float64

	// Where the owner holds the weapon and where the barrel ends, relative
	// to the owner and the handle respectively.
	HandleX      float64
	HandleY      float64
	BarrelLength float64
	BarrelHeight float64

	firstShot bool
}

// Normalize fills defaults, clamps counters into range and primes the burst
// clock so the first trigger pull fires.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}
	if p.Salve <= 0 {
		p.Salve = 1
	}
	if p.MinShot <= 0 {
		p.MinShot = 1
	}
	if p.SubFireRate <= 0 {
		p.SubFireRate = p.FireRate
	}
	if p.HeatDecay <= 0 {
		p.HeatDecay = 1
	}
	if p.MaxHeat <= 0 {
		p.MaxHeat = math.Inf(1)
	}
	if p.MaxAmmo < p.Ammo {
		p.MaxAmmo = p.Ammo
	}
	p.MagAmmo = clampInt(p.MagAmmo, 0, p.MagSize)
	p.Ammo = clampInt(p.Ammo, 0, p.MaxAmmo)
	p.LeftToFire = 0
	p.Heat = math.Max(0, p.Heat)
	p.SinceBurst = p.BurstInterval()
	p.SinceShot = p.ShotInterval()
}

// Validate reports tuning that would make the weapon unusable.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("nil profile: %w", ErrInvalidProfile)
	}
	switch {
	case p.MagSize <= 0:
		return fmt.Errorf("%s: mag_size must be positive: %w", p.Name, ErrInvalidProfile)
	case p.FireRate <= 0:
		return fmt.Errorf("%s: fire_rate must be positive: %w", p.Name, ErrInvalidProfile)
	case p.Speed <= 0 || p.Distance <= 0:
		return fmt.Errorf("%s: speed and distance must be positive: %w", p.Name, ErrInvalidProfile)
	case p.Reload != ReloadNone && p.ReloadTime <= 0:
		return fmt.Errorf("%s: reload_time must be positive: %w", p.Name, ErrInvalidProfile)
	case p.Spread < 0 || p.SpeedSpread < 0:
		return fmt.Errorf("%s: spreads must not be negative: %w", p.Name, ErrInvalidProfile)
	}
	return nil
}

// BurstInterval is the minimum time between burst starts.
func (p *Profile) BurstInterval() float64 {
	if p == nil || p.FireRate <= 0 {
		return math.Inf(1)
	}
	return 1 / p.FireRate
}

// ShotInterval is the minimum time between shots of one burst.
func (p *Profile) ShotInterval() float64 {
	if p == nil {
		return math.Inf(1)
	}
	rate := p.SubFireRate
	if rate <= 0 {
		rate = p.FireRate
	}
	if rate <= 0 {
		return math.Inf(1)
	}
	return 1 / rate
}

// CanStartReload is the weapon half of the reload start condition. Weapons
// without a reload never start one.
func (p *Profile) CanStartReload() bool {
	if p == nil || p.Reload == ReloadNone {
		return false
	}
	return p.MagAmmo < p.MagSize && (p.Infinite || p.Ammo > 0)
}

// Firing reports whether a burst is in progress.
func (p *Profile) Firing() bool {
	return p != nil && p.LeftToFire > 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
