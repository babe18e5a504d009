package projectile

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/pkg/math"
)

// ErrInvalidConfig is wrapped by ManagerConfig.Validate errors.
var ErrInvalidConfig = errors.New("invalid bubble config")

// ManagerConfig controls spawning. Ranges are inclusive [Min, Max].
type ManagerConfig struct {
	MaxActive int

	CooldownMin float64
	CooldownMax float64

	// Spawn box: X/Z rectangle, Y is the launch height range.
	SpawnMin math.Vec3
	SpawnMax math.Vec3

	// Polar launch angle from +Y, in radians.
	PhiMin float64
	PhiMax float64

	LaunchSpeed float64

	SpeedMultiplierMin   float64
	SpeedMultiplierMax   float64
	GravityMultiplierMin float64
	GravityMultiplierMax float64

	MaxLifetime float64

	Light     lighting.PointLight
	SoundClip string
	SoundLoop bool
}

// DefaultManagerConfig returns the settings used by the scene.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxActive:            10,
		CooldownMin:          0.5,
		CooldownMax:          2.0,
		SpawnMin:             math.V3(-3, 0.25, -3),
		SpawnMax:             math.V3(3, 1, 3),
		PhiMin:               0,
		PhiMax:               stdmath.Pi / 6,
		LaunchSpeed:          4,
		SpeedMultiplierMin:   0.5,
		SpeedMultiplierMax:   1.5,
		GravityMultiplierMin: 0.5,
		GravityMultiplierMax: 1.0,
		MaxLifetime:          10,
		Light:                lighting.DefaultPointLight(),
		SoundClip:            "bubble",
		SoundLoop:            true,
	}
}

// Validate reports the first unusable setting.
func (c ManagerConfig) Validate() error {
	if c.MaxActive < 1 {
		return fmt.Errorf("%w: max active %d must be at least 1", ErrInvalidConfig, c.MaxActive)
	}
	if c.CooldownMin < 0 {
		return fmt.Errorf("%w: cooldown min %v is negative", ErrInvalidConfig, c.CooldownMin)
	}
	if !(c.MaxLifetime > 0) {
		return fmt.Errorf("%w: max lifetime %v must be positive", ErrInvalidConfig, c.MaxLifetime)
	}
	if c.PhiMin < 0 || c.PhiMax > stdmath.Pi {
		return fmt.Errorf("%w: launch angle range [%v, %v] outside [0, pi]", ErrInvalidConfig, c.PhiMin, c.PhiMax)
	}

	ranges := []struct {
		name     string
		min, max float64
	}{
		{"cooldown", c.CooldownMin, c.CooldownMax},
		{"spawn x", float64(c.SpawnMin.X), float64(c.SpawnMax.X)},
		{"spawn y", float64(c.SpawnMin.Y), float64(c.SpawnMax.Y)},
		{"spawn z", float64(c.SpawnMin.Z), float64(c.SpawnMax.Z)},
		{"launch angle", c.PhiMin, c.PhiMax},
		{"speed multiplier", c.SpeedMultiplierMin, c.SpeedMultiplierMax},
		{"gravity multiplier", c.GravityMultiplierMin, c.GravityMultiplierMax},
	}
	for _, r := range ranges {
		if r.min > r.max {
			return fmt.Errorf("%w: %s range [%v, %v] is reversed", ErrInvalidConfig, r.name, r.min, r.max)
		}
	}
	return nil
}
