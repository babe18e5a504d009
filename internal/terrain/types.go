// Package terrain builds the heightmapped grid mesh the scene walks on, and
// places vegetation instances on its surface.
package terrain

import "github.com/Faultbox/glscene/pkg/math"

// DefaultStep is the world-space spacing between neighbouring grid vertices.
const DefaultStep = 0.0625

// Vertex is a terrain vertex: world position plus biome colour.
type Vertex struct {
	Position math.Vec3
	Color    [3]float32
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Palette maps a biome sample to a vertex colour.
type Palette struct {
	Threshold float64    `yaml:"threshold"` // samples at or below are plains
	Plains    [3]float32 `yaml:"plains"`
	Desert    [3]float32 `yaml:"desert"`
}

// DefaultPalette returns the green plains / sand desert palette.
func DefaultPalette() Palette {
	return Palette{
		Threshold: -0.75,
		Plains:    [3]float32{0.0, 0.75, 0.25},
		Desert:    [3]float32{1.0, 1.0, 0.5},
	}
}

// Color returns the colour for a biome sample.
func (p Palette) Color(biome float64) [3]float32 {
	if biome <= p.Threshold {
		return p.Plains
	}
	return p.Desert
}

// GridConfig describes the lattice BuildGrid produces. A zero Step,
// HeightScale or Palette takes the default.
type GridConfig struct {
	Width       int
	Depth       int
	Step        float32
	Origin      math.Vec3
	HeightScale float32
	Palette     Palette
}

// DefaultGridConfig returns a width x depth grid with the default step, unit
// height scale and the default palette.
func DefaultGridConfig(width, depth int) GridConfig {
	return GridConfig{
		Width:       width,
		Depth:       depth,
		Step:        DefaultStep,
		HeightScale: 1,
		Palette:     DefaultPalette(),
	}
}

// Grid is the built terrain mesh. Vertices are row-major (index = r*Width + c)
// and never change after BuildGrid returns.
type Grid struct {
	Width     int
	Depth     int
	Step      float32
	Origin    math.Vec3
	Vertices  []Vertex
	Triangles [][3]uint32

	bounds Bounds
}
