// Package noise provides seeded 2D coherent noise fields used for terrain height,
// biome selection, sphere displacement and light tinting.
package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Kind selects the noise algorithm.
type Kind string

// Supported noise kinds.
const (
	Perlin   Kind = "perlin"
	Cellular Kind = "cellular"
)

// ErrInvalidConfig is wrapped by New for unusable configurations.
var ErrInvalidConfig = errors.New("invalid noise config")

// Sampler is anything that maps a 2D coordinate to a value in [-1, 1].
type Sampler interface {
	Sample(x, y float64) float64
}

// SamplerFunc adapts a plain function to Sampler.
type SamplerFunc func(x, y float64) float64

// Sample calls f(x, y).
func (f SamplerFunc) Sample(x, y float64) float64 {
	return f(x, y)
}

// Constant returns a Sampler that always yields v.
func Constant(v float64) Sampler {
	return SamplerFunc(func(float64, float64) float64 { return v })
}

// Config describes one noise field.
type Config struct {
	Kind      Kind    `yaml:"kind"`
	Frequency float64 `yaml:"frequency"`
	Seed      int64   `yaml:"seed"`
}

// Field is a configured, immutable noise field. Safe for concurrent reads.
type Field struct {
	cfg    Config
	perlin *perlin.Perlin
}

// New builds a field from cfg.
func New(cfg Config) (*Field, error) {
	if !(cfg.Frequency > 0) || math.IsInf(cfg.Frequency, 0) {
		return nil, fmt.Errorf("%w: frequency %v must be positive", ErrInvalidConfig, cfg.Frequency)
	}

	f := &Field{cfg: cfg}
	switch cfg.Kind {
	case Perlin:
		// One octave; the fractal sum is left to callers combining fields.
		f.perlin = perlin.NewPerlin(2, 2, 1, cfg.Seed)
	case Cellular:
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, cfg.Kind)
	}
	return f, nil
}

// MustNew is New for hard-coded configurations; it panics on error.
func MustNew(cfg Config) *Field {
	f, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the configuration the field was built with.
func (f *Field) Config() Config {
	return f.cfg
}

// Sample returns the noise value at (x, y), scaled by the field frequency.
// The same field and inputs always produce the same value.
func (f *Field) Sample(x, y float64) float64 {
	x *= f.cfg.Frequency
	y *= f.cfg.Frequency

	var v float64
	switch f.cfg.Kind {
	case Perlin:
		// Raw 2D gradient noise peaks near ±√½.
		v = f.perlin.Noise2D(x, y) * math.Sqrt2
	case Cellular:
		v = cellular(x, y, f.cfg.Seed)
	}
	return clamp(v, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
