package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test audio defaults
	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("expected master volume 0.8, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Audio.MusicVolume != 0.7 {
		t.Errorf("expected music volume 0.7, got %f", cfg.Audio.MusicVolume)
	}
	if cfg.Audio.PopFile != "assets/audio/pop.wav" {
		t.Errorf("expected pop file assets/audio/pop.wav, got %s", cfg.Audio.PopFile)
	}

	// Test terrain defaults
	if cfg.Terrain.Step != 0.0625 {
		t.Errorf("expected terrain step 0.0625, got %f", cfg.Terrain.Step)
	}
	if cfg.Terrain.Palette.Threshold != -0.75 {
		t.Errorf("expected biome threshold -0.75, got %f", cfg.Terrain.Palette.Threshold)
	}
	if cfg.Terrain.Biome.Kind != noise.Cellular {
		t.Errorf("expected cellular biome noise, got %s", cfg.Terrain.Biome.Kind)
	}

	// Test bubble defaults
	if cfg.Bubbles.MaxActive > lighting.MaxPointLights {
		t.Errorf("default max bubbles %d exceeds light limit", cfg.Bubbles.MaxActive)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
seed: 42

graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

audio:
  master_volume: 0.5
  music_volume: 0.6
  sfx_volume: 0.7
  muted: true
  bubble_file: "sounds/pop.wav"

terrain:
  size: 64
  height:
    kind: cellular
    frequency: 0.2
    seed: 5
  palette:
    threshold: -0.5
    plains: [0.1, 0.9, 0.1]
    desert: [0.9, 0.8, 0.4]

bubbles:
  max_active: 4
  angle_max: 45
  light:
    attenuation:
      constant: 1
      linear: 0.7
      quadratic: 1.8

logging:
  level: "debug"
  log_file: "scene.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Graphics.FPSLimit)
	}

	if !cfg.Audio.Muted {
		t.Error("expected muted to be true")
	}
	if cfg.Audio.BubbleFile != "sounds/pop.wav" {
		t.Errorf("expected bubble file sounds/pop.wav, got %s", cfg.Audio.BubbleFile)
	}

	if cfg.Terrain.Size != 64 {
		t.Errorf("expected terrain size 64, got %d", cfg.Terrain.Size)
	}
	if cfg.Terrain.Height.Kind != noise.Cellular || cfg.Terrain.Height.Seed != 5 {
		t.Errorf("unexpected height noise %+v", cfg.Terrain.Height)
	}
	// Unset nested fields keep their defaults.
	if cfg.Terrain.Step != 0.0625 {
		t.Errorf("expected default step to survive, got %f", cfg.Terrain.Step)
	}
	if cfg.Terrain.Palette.Plains != [3]float32{0.1, 0.9, 0.1} {
		t.Errorf("unexpected plains colour %v", cfg.Terrain.Palette.Plains)
	}

	if cfg.Bubbles.MaxActive != 4 {
		t.Errorf("expected max bubbles 4, got %d", cfg.Bubbles.MaxActive)
	}
	if cfg.Bubbles.Light.Attenuation.Quadratic != 1.8 {
		t.Errorf("expected quadratic 1.8, got %f", cfg.Bubbles.Light.Attenuation.Quadratic)
	}
	// Partially specified light keeps default colours.
	if cfg.Bubbles.Light.Specular != [3]float32{1, 1, 1} {
		t.Errorf("expected default specular, got %v", cfg.Bubbles.Light.Specular)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scene.log" {
		t.Errorf("expected log file 'scene.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "seed flag",
			setup: func() {
				*flagSeed = 99
			},
			verify: func(cfg *Config) {
				if cfg.Seed != 99 {
					t.Errorf("expected seed 99, got %d", cfg.Seed)
				}
			},
			teardown: func() {
				*flagSeed = 0
			},
		},
		{
			name: "max bubbles flag",
			setup: func() {
				*flagMaxBubbles = 3
			},
			verify: func(cfg *Config) {
				if cfg.Bubbles.MaxActive != 3 {
					t.Errorf("expected max bubbles 3, got %d", cfg.Bubbles.MaxActive)
				}
			},
			teardown: func() {
				*flagMaxBubbles = 0
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("bubbles:\n  max_active: 64\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject 64 bubbles")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"too many bubbles", func(c *Config) { c.Bubbles.MaxActive = lighting.MaxPointLights + 1 }, "point lights"},
		{"zero bubbles", func(c *Config) { c.Bubbles.MaxActive = 0 }, "max active"},
		{"reversed cooldown", func(c *Config) { c.Bubbles.CooldownMin = 5 }, "cooldown"},
		{"volume out of range", func(c *Config) { c.Audio.SFXVolume = 1.5 }, "sfx_volume"},
		{"bad window", func(c *Config) { c.Graphics.Width = 0 }, "window size"},
		{"bad fov", func(c *Config) { c.Camera.FOV = 0 }, "fov"},
		{"bad vegetation", func(c *Config) { c.Vegetation.MinScale = 1 }, "vegetation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	// Mesh dimensions are not validated here.
	cfg := Default()
	cfg.Terrain.Size = 1
	cfg.Sphere.LonSteps = 2
	if err := cfg.Validate(); err != nil {
		t.Errorf("mesh dimensions should be left to the builders: %v", err)
	}
}

func TestManagerConfig(t *testing.T) {
	cfg := Default()
	cfg.Bubbles.AngleMin = 10
	cfg.Bubbles.AngleMax = 90

	mc := cfg.ManagerConfig()
	if math.Abs(mc.PhiMin-math.Pi/18) > 1e-12 {
		t.Errorf("PhiMin = %v, want pi/18", mc.PhiMin)
	}
	if math.Abs(mc.PhiMax-math.Pi/2) > 1e-12 {
		t.Errorf("PhiMax = %v, want pi/2", mc.PhiMax)
	}
	if mc.SoundClip != BubbleClip {
		t.Errorf("SoundClip = %q, want %q", mc.SoundClip, BubbleClip)
	}
	if mc.SpawnMin.Y != cfg.Bubbles.SpawnMin[1] {
		t.Errorf("SpawnMin.Y = %v, want %v", mc.SpawnMin.Y, cfg.Bubbles.SpawnMin[1])
	}

	gc := cfg.GridConfig()
	if gc.Width != cfg.Terrain.Size || gc.Depth != cfg.Terrain.Size {
		t.Errorf("grid %dx%d, want square of %d", gc.Width, gc.Depth, cfg.Terrain.Size)
	}
	if gc.Origin.X != -4 {
		t.Errorf("grid origin x = %v, want -4", gc.Origin.X)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Seed = 1234
	cfg.Bubbles.MaxActive = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if loaded.Seed != 1234 || loaded.Bubbles.MaxActive != 7 {
		t.Errorf("round trip lost values: seed %d, max %d", loaded.Seed, loaded.Bubbles.MaxActive)
	}
	if loaded.Terrain.Height != cfg.Terrain.Height {
		t.Errorf("noise config changed: %+v vs %+v", loaded.Terrain.Height, cfg.Terrain.Height)
	}
}
