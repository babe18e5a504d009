package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/projectile"
	"github.com/Faultbox/glscene/internal/sphere"
	"github.com/Faultbox/glscene/internal/terrain"
	smath "github.com/Faultbox/glscene/pkg/math"
)

// Audio clip names.
const (
	BubbleClip = "bubble" // looped while a bubble flies
	PopClip    = "pop"    // played once when a bubble's sound stops
)

func vec3(a [3]float32) smath.Vec3 {
	return smath.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// GridConfig returns the terrain grid build parameters.
func (c *Config) GridConfig() terrain.GridConfig {
	return terrain.GridConfig{
		Width:       c.Terrain.Size,
		Depth:       c.Terrain.Size,
		Step:        c.Terrain.Step,
		Origin:      vec3(c.Terrain.Origin),
		HeightScale: c.Terrain.HeightScale,
		Palette:     c.Terrain.Palette,
	}
}

// SphereOptions returns the showcase sphere build parameters.
func (c *Config) SphereOptions() sphere.Options {
	return sphere.Options{
		Radius:   c.Sphere.Radius,
		LatSteps: c.Sphere.LatSteps,
		LonSteps: c.Sphere.LonSteps,
		Color:    c.Sphere.Color,
	}
}

// SpherePosition returns the world position of the showcase sphere.
func (c *Config) SpherePosition() smath.Vec3 {
	return vec3(c.Sphere.Position)
}

// ManagerConfig returns the bubble manager settings.
func (c *Config) ManagerConfig() projectile.ManagerConfig {
	b := c.Bubbles
	return projectile.ManagerConfig{
		MaxActive:            b.MaxActive,
		CooldownMin:          b.CooldownMin,
		CooldownMax:          b.CooldownMax,
		SpawnMin:             vec3(b.SpawnMin),
		SpawnMax:             vec3(b.SpawnMax),
		PhiMin:               b.AngleMin * math.Pi / 180,
		PhiMax:               b.AngleMax * math.Pi / 180,
		LaunchSpeed:          b.LaunchSpeed,
		SpeedMultiplierMin:   b.SpeedMultiplierMin,
		SpeedMultiplierMax:   b.SpeedMultiplierMax,
		GravityMultiplierMin: b.GravityMultiplierMin,
		GravityMultiplierMax: b.GravityMultiplierMax,
		MaxLifetime:          b.MaxLifetime,
		Light:                b.Light,
		SoundClip:            BubbleClip,
		SoundLoop:            b.Loop,
	}
}

// Validate checks settings that would break the scene at runtime.
// Mesh dimensions are left to the mesh builders, which fail per mesh.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v must be in (0, 180)", c.Camera.FOV))
	}
	for name, v := range map[string]float32{
		"master_volume": c.Audio.MasterVolume,
		"music_volume":  c.Audio.MusicVolume,
		"sfx_volume":    c.Audio.SFXVolume,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("audio: %s %v must be in [0, 1]", name, v))
		}
	}
	if c.Bubbles.MaxActive > lighting.MaxPointLights {
		errs = append(errs, fmt.Errorf("bubbles: max_active %d exceeds the %d point lights the shader supports",
			c.Bubbles.MaxActive, lighting.MaxPointLights))
	}
	if err := c.ManagerConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("bubbles: %w", err))
	}
	if c.Vegetation.Count < 0 || c.Vegetation.MinScale > c.Vegetation.MaxScale {
		errs = append(errs, fmt.Errorf("vegetation: count %d, scale [%v, %v] invalid",
			c.Vegetation.Count, c.Vegetation.MinScale, c.Vegetation.MaxScale))
	}

	return errors.Join(errs...)
}
