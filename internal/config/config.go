// Package config handles scene configuration loading and management.
package config

import (
	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/noise"
	"github.com/Faultbox/glscene/internal/terrain"
)

// Config holds all scene settings.
type Config struct {
	Seed       uint64           `yaml:"seed"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Camera     CameraConfig     `yaml:"camera"`
	Audio      AudioConfig      `yaml:"audio"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Sphere     SphereConfig     `yaml:"sphere"`
	Bubbles    BubblesConfig    `yaml:"bubbles"`
	Vegetation VegetationConfig `yaml:"vegetation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	Fullscreen   bool    `yaml:"fullscreen"`
	VSync        bool    `yaml:"vsync"`
	FPSLimit     int     `yaml:"fps_limit"`
	ShowFPS      bool    `yaml:"show_fps"`
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`
}

// CameraConfig holds the walking camera settings.
type CameraConfig struct {
	FOV         float32 `yaml:"fov"` // degrees
	EyeHeight   float32 `yaml:"eye_height"`
	MoveSpeed   float32 `yaml:"move_speed"`
	Sensitivity float32 `yaml:"sensitivity"`
	Fly         bool    `yaml:"fly"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	MusicFile    string  `yaml:"music_file"`
	BubbleFile   string  `yaml:"bubble_file"`
	PopFile      string  `yaml:"pop_file"`
}

// TerrainConfig holds the heightmap grid settings.
type TerrainConfig struct {
	Size        int             `yaml:"size"`
	Step        float32         `yaml:"step"`
	HeightScale float32         `yaml:"height_scale"`
	Origin      [3]float32      `yaml:"origin"`
	Height      noise.Config    `yaml:"height"`
	Biome       noise.Config    `yaml:"biome"`
	Palette     terrain.Palette `yaml:"palette"`
}

// SphereConfig holds the displaced showcase sphere settings.
type SphereConfig struct {
	Radius    float32      `yaml:"radius"`
	LatSteps  int          `yaml:"lat_steps"`
	LonSteps  int          `yaml:"lon_steps"`
	Position  [3]float32   `yaml:"position"`
	Color     [3]float32   `yaml:"color"`
	Amplitude float32      `yaml:"amplitude"`
	First     noise.Config `yaml:"first"`
	Second    noise.Config `yaml:"second"`
}

// BubblesConfig holds the arcing bubble settings.
type BubblesConfig struct {
	MaxActive   int     `yaml:"max_active"`
	CooldownMin float64 `yaml:"cooldown_min"`
	CooldownMax float64 `yaml:"cooldown_max"`

	SpawnMin [3]float32 `yaml:"spawn_min"`
	SpawnMax [3]float32 `yaml:"spawn_max"`

	AngleMin float64 `yaml:"angle_min"` // degrees from vertical
	AngleMax float64 `yaml:"angle_max"`

	LaunchSpeed          float64 `yaml:"launch_speed"`
	SpeedMultiplierMin   float64 `yaml:"speed_multiplier_min"`
	SpeedMultiplierMax   float64 `yaml:"speed_multiplier_max"`
	GravityMultiplierMin float64 `yaml:"gravity_multiplier_min"`
	GravityMultiplierMax float64 `yaml:"gravity_multiplier_max"`
	MaxLifetime          float64 `yaml:"max_lifetime"`

	Radius float32             `yaml:"radius"`
	Light  lighting.PointLight `yaml:"light"`
	Tint   noise.Config        `yaml:"tint"`
	Loop   bool                `yaml:"loop"`
}

// VegetationConfig holds the scattered shrub settings.
type VegetationConfig struct {
	Count    int     `yaml:"count"`
	MinScale float32 `yaml:"min_scale"`
	MaxScale float32 `yaml:"max_scale"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Seed: 3016,
		Graphics: GraphicsConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			FPSLimit:     0,
			SunAzimuth:   135,
			SunElevation: 50,
		},
		Camera: CameraConfig{
			FOV:         45,
			EyeHeight:   0.35,
			MoveSpeed:   1.5,
			Sensitivity: 0.1,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
			BubbleFile:   "assets/audio/bubble.wav",
			PopFile:      "assets/audio/pop.wav",
		},
		Terrain: TerrainConfig{
			Size:        128,
			Step:        terrain.DefaultStep,
			HeightScale: 0.4,
			Origin:      [3]float32{-4, 0, -4},
			Height:      noise.Config{Kind: noise.Perlin, Frequency: 0.05, Seed: 1337},
			Biome:       noise.Config{Kind: noise.Cellular, Frequency: 0.08, Seed: 7331},
			Palette:     terrain.DefaultPalette(),
		},
		Sphere: SphereConfig{
			Radius:    0.6,
			LatSteps:  32,
			LonSteps:  64,
			Position:  [3]float32{0, 1.6, 0},
			Color:     [3]float32{0.6, 0.7, 1.0},
			Amplitude: 0.08,
			First:     noise.Config{Kind: noise.Perlin, Frequency: 0.02, Seed: 1},
			Second:    noise.Config{Kind: noise.Perlin, Frequency: 0.08, Seed: 2},
		},
		Bubbles: BubblesConfig{
			MaxActive:            10,
			CooldownMin:          0.5,
			CooldownMax:          2.0,
			SpawnMin:             [3]float32{-3, 0.25, -3},
			SpawnMax:             [3]float32{3, 1, 3},
			AngleMin:             0,
			AngleMax:             30,
			LaunchSpeed:          4,
			SpeedMultiplierMin:   0.5,
			SpeedMultiplierMax:   1.5,
			GravityMultiplierMin: 0.5,
			GravityMultiplierMax: 1.0,
			MaxLifetime:          10,
			Radius:               0.06,
			Light:                lighting.DefaultPointLight(),
			Tint:                 noise.Config{Kind: noise.Perlin, Frequency: 0.25, Seed: 99},
			Loop:                 true,
		},
		Vegetation: VegetationConfig{
			Count:    60,
			MinScale: 0.04,
			MaxScale: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
