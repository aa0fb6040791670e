package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab listing components by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	RollSpeed    float64 `yaml:"roll_speed"`
	RollDuration float64 `yaml:"roll_duration"`
	Radius       float64 `yaml:"radius"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type CombatantComponentSpec struct {
	Health            float64  `yaml:"health"`
	DamagesAdded      float64  `yaml:"damages_added"`
	DamagesMultiplier *float64 `yaml:"damages_multiplier"`
}

type PhysicsBodyComponentSpec struct {
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`
	Friction  float64 `yaml:"friction"`
	Kinematic bool    `yaml:"kinematic"`
	Sensor    bool    `yaml:"sensor"`
}

type AnimatorComponentSpec struct {
	State string `yaml:"state"`
}

type ArmoryComponentSpec struct {
	Weapons []string `yaml:"weapons"`
}

type InventoryComponentSpec struct {
	Items []string `yaml:"items"`
}
