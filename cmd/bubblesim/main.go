// Package main runs the bubble simulation without a window and reports what
// happened. It is handy for tuning spawn settings and for checking that every
// light is handed back.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/config"
	"github.com/Faultbox/glscene/internal/engine/debug"
	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/internal/noise"
	"github.com/Faultbox/glscene/internal/scene"
)

var (
	flagDuration    = flag.Duration("duration", 30*time.Second, "Simulated time to run")
	flagStep        = flag.Float64("dt", 1.0/60, "Frame step in seconds")
	flagReport      = flag.Duration("report", 5*time.Second, "Simulated time between progress logs (0 disables)")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
	flagBakeNoise   = flag.String("bake-noise", "", "Write each noise field as a 256x256 PNG into this directory")
)

const bakeSize = 256

// options are the simulation flags.
type options struct {
	duration time.Duration
	step     float64
	report   time.Duration
	bakeDir  string
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if *flagWriteConfig != "" {
		if err := cfg.SaveTo(*flagWriteConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", *flagWriteConfig)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, options{
		duration: *flagDuration,
		step:     *flagStep,
		report:   *flagReport,
		bakeDir:  *flagBakeNoise,
	}))
}

// run simulates the scene and returns the process exit code: 0 on success,
// 1 on bad input and 2 when lights are still held after Close. The log is
// flushed before run returns.
func run(cfg *config.Config, opts options) int {
	defer logger.Sync()

	if opts.step <= 0 {
		logger.Error("dt must be positive", zap.Float64("dt", opts.step))
		return 1
	}

	if opts.bakeDir != "" {
		bakeNoise(cfg, opts.bakeDir)
	}

	s, err := scene.New(cfg, nil)
	if err != nil {
		logger.Error("failed to build scene", zap.Error(err))
		return 1
	}

	total := opts.duration.Seconds()
	report := opts.report.Seconds()
	nextReport := report
	peak := 0

	start := time.Now()
	for t := 0.0; t < total; t += opts.step {
		s.Update(opts.step)
		peak = max(peak, s.Bubbles().Active())

		if report > 0 && t+opts.step >= nextReport {
			logger.Info("progress",
				zap.Float64("t", nextReport),
				zap.Stringer("stats", s.Stats()),
				zap.Int("lights", s.Lights().Len()),
			)
			nextReport += report
		}
	}
	s.Close()

	st := s.Stats()
	leaked := s.Lights().Len()
	fmt.Printf("simulated %v in %v\n", opts.duration, time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s peak=%d leaked_lights=%d\n", st, peak, leaked)
	if leaked != 0 {
		logger.Error("lights leaked", zap.Int("count", leaked))
		return 2
	}
	return 0
}

// bakeNoise writes every configured noise field as a grayscale PNG. Invalid
// fields are logged and skipped.
func bakeNoise(cfg *config.Config, dir string) {
	capture := debug.NewCapture(dir, "")
	fields := []struct {
		name string
		cfg  noise.Config
	}{
		{"terrain_height", cfg.Terrain.Height},
		{"terrain_biome", cfg.Terrain.Biome},
		{"sphere_first", cfg.Sphere.First},
		{"sphere_second", cfg.Sphere.Second},
		{"bubble_tint", cfg.Bubbles.Tint},
	}
	for _, f := range fields {
		field, err := noise.New(f.cfg)
		if err != nil {
			logger.Warn("noise bake skipped", zap.String("field", f.name), zap.Error(err))
			continue
		}
		path, err := capture.SaveGray(f.name, noise.Bake(field, bakeSize, bakeSize), bakeSize, bakeSize)
		if err != nil {
			logger.Warn("noise bake failed", zap.String("field", f.name), zap.Error(err))
			continue
		}
		logger.Info("noise baked", zap.String("path", path))
	}
}
