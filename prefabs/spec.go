package prefabs

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// WeaponSpec is one weapon archetype. Spread is written in degrees.
type WeaponSpec struct {
	Name        string     `yaml:"name"`
	Shoot       string     `yaml:"shoot"`
	Reload      string     `yaml:"reload"`
	Damage      float64    `yaml:"damage"`
	SpreadDeg   float64    `yaml:"spread_deg"`
	Speed       float64    `yaml:"speed"`
	SpeedSpread float64    `yaml:"speed_spread"`
	Distance    float64    `yaml:"distance"`
	Salve       int        `yaml:"salve"`
	MinShot     int        `yaml:"min_shot"`
	Ammo        int        `yaml:"ammo"`
	MaxAmmo     int        `yaml:"max_ammo"`
	Infinite    bool       `yaml:"infinite"`
	MagAmmo     int        `yaml:"mag_ammo"`
	MagSize     int        `yaml:"mag_size"`
	ReloadTime  float64    `yaml:"reload_time"`
	FireRate    float64    `yaml:"fire_rate"`
	SubFireRate float64    `yaml:"sub_fire_rate"`
	MinHeat     float64    `yaml:"min_heat"`
	MaxHeat     float64    `yaml:"max_heat"`
	HeatDecay   float64    `yaml:"heat_decay"`
	Handle      PointSpec  `yaml:"handle"`
	Barrel      BarrelSpec `yaml:"barrel"`
	Color       *YAMLColor `yaml:"color"`
}

// Spread returns the spread in radians.
func (s WeaponSpec) Spread() float64 {
	return s.SpreadDeg * math.Pi / 180
}

type BarrelSpec struct {
	Length float64 `yaml:"length"`
	Height float64 `yaml:"height"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadWeaponSpec loads weapons/<name>.yaml.
func LoadWeaponSpec(name string) (WeaponSpec, error) {
	if name == "" {
		return WeaponSpec{}, fmt.Errorf("prefabs: empty weapon name: %w", ErrUnknownArchetype)
	}
	spec, err := LoadSpec[WeaponSpec]("weapons/" + name + ".yaml")
	if err != nil {
		return WeaponSpec{}, fmt.Errorf("%w: %w", ErrUnknownArchetype, err)
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// ItemSpec is an inventory item. Script names a tengo shot modifier;
// instant items apply once on pickup and are not kept.
type ItemSpec struct {
	Name    string          `yaml:"name"`
	Script  string          `yaml:"script"`
	Instant *InstantEffects `yaml:"instant"`
	Color   *YAMLColor      `yaml:"color"`
}

type InstantEffects struct {
	MaxHealth float64 `yaml:"max_health"`
}

// LoadItemSpec loads items/<name>.yaml.
func LoadItemSpec(name string) (ItemSpec, error) {
	if name == "" {
		return ItemSpec{}, fmt.Errorf("prefabs: empty item name: %w", ErrUnknownArchetype)
	}
	spec, err := LoadSpec[ItemSpec]("items/" + name + ".yaml")
	if err != nil {
		return ItemSpec{}, fmt.Errorf("%w: %w", ErrUnknownArchetype, err)
	}
	if spec.Name == "" {
		spec.Name = name
	}
	return spec, nil
}

// ArenaSpec lays out walls, spawn points and floor pickups.
type ArenaSpec struct {
	Name    string            `yaml:"name"`
	Width   float64           `yaml:"width"`
	Height  float64           `yaml:"height"`
	Walls   []WallSpec        `yaml:"walls"`
	Players []PlayerSpawnSpec `yaml:"players"`
	Targets []TargetSpawnSpec `yaml:"targets"`
	Pickups []PickupSpawnSpec `yaml:"pickups"`
}

type WallSpec struct {
	AX        float64 `yaml:"ax"`
	AY        float64 `yaml:"ay"`
	BX        float64 `yaml:"bx"`
	BY        float64 `yaml:"by"`
	Thickness float64 `yaml:"thickness"`
}

type PlayerSpawnSpec struct {
	X       float64  `yaml:"x"`
	Y       float64  `yaml:"y"`
	Weapons []string `yaml:"weapons"`
}

type TargetSpawnSpec struct {
	X                 float64  `yaml:"x"`
	Y                 float64  `yaml:"y"`
	Prefab            string   `yaml:"prefab"`
	DamagesAdded      *float64 `yaml:"damages_added"`
	DamagesMultiplier *float64 `yaml:"damages_multiplier"`
}

type PickupSpawnSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Weapon string  `yaml:"weapon"`
	Item   string  `yaml:"item"`
}

func LoadArenaSpec(name string) (ArenaSpec, error) {
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	return LoadSpec[ArenaSpec](name)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
