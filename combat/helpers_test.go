package combat

import (
	"math"
	"math/rand/v2"
)

const dt = 1.0 / 60

func ticks(seconds float64) int {
	return int(math.Round(seconds / dt))
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func revolver() Profile {
	p := Profile{
		Name: "revolver", Mode: ShootManual, Reload: ReloadBasic,
		Damage: 10, Spread: 5 * math.Pi / 180, Speed: 90, SpeedSpread: 1, Distance: 80,
		Infinite: true, MagAmmo: 6, MagSize: 6, ReloadTime: 2.5, FireRate: 1.5,
	}
	p.Normalize()
	return p
}

func shotgun() Profile {
	p := Profile{
		Name: "shotgun", Mode: ShootManual, Reload: ReloadPerRound,
		Damage: 6, Spread: 20 * math.Pi / 180, Speed: 190, SpeedSpread: 10, Distance: 50, Salve: 8,
		Ammo: 18, MaxAmmo: 30, MagAmmo: 6, MagSize: 6, ReloadTime: 0.5, FireRate: 1,
	}
	p.Normalize()
	return p
}

func automatic() Profile {
	p := Profile{
		Name: "automatic", Mode: ShootAuto, Reload: ReloadBasic,
		Damage: 15, Spread: 10 * math.Pi / 180, Speed: 90, SpeedSpread: 5, Distance: 80,
		Ammo: 200, MaxAmmo: 200, MagAmmo: 20, MagSize: 20, ReloadTime: 2, FireRate: 5,
	}
	p.Normalize()
	return p
}

func kalachnikov() Profile {
	p := automatic()
	p.Name = "kalachnikov"
	p.Mode = ShootManual
	p.MinShot = 3
	p.SubFireRate = 10
	p.FireRate = 2
	p.Normalize()
	return p
}

func charged() Profile {
	p := Profile{
		Name: "charged", Mode: ShootCharging, Reload: ReloadBasic,
		Damage: 20, Spread: 30 * math.Pi / 180, Speed: 200, SpeedSpread: 10, Distance: 100,
		Ammo: 50, MaxAmmo: 50, MagAmmo: 5, MagSize: 5, ReloadTime: 5, FireRate: 0.5,
		MinHeat: 0.5, MaxHeat: math.Inf(1),
	}
	p.Normalize()
	return p
}

func flamethrower() Profile {
	p := Profile{
		Name: "flamethrower", Mode: ShootOverheat, Reload: ReloadNone,
		Damage: 5, Spread: 10 * math.Pi / 180, Speed: 60, SpeedSpread: 40, Distance: 40, Salve: 3,
		Ammo: 900, MaxAmmo: 900, MagAmmo: 900, MagSize: 900, ReloadTime: 5, FireRate: 30, MaxHeat: 20,
	}
	p.Normalize()
	return p
}

func held() Trigger     { return Trigger{Pressed: true} }
func pressed() Trigger  { return Trigger{Pressed: true, JustPressed: true} }
func released() Trigger { return Trigger{} }
