package terrain

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/glscene/internal/mesh"
	"github.com/Faultbox/glscene/internal/noise"
	"github.com/Faultbox/glscene/pkg/math"
)

var flat = noise.Constant(0)

func TestBuildGridCounts(t *testing.T) {
	tests := []struct {
		w, d int
	}{
		{2, 2},
		{3, 5},
		{16, 16},
		{100, 100},
	}

	for _, tt := range tests {
		g, err := BuildGrid(DefaultGridConfig(tt.w, tt.d), flat, flat)
		require.NoError(t, err)

		assert.Len(t, g.Vertices, tt.w*tt.d)
		assert.Len(t, g.Triangles, 2*(tt.w-1)*(tt.d-1))

		n := uint32(tt.w * tt.d)
		for _, tri := range g.Triangles {
			for _, idx := range tri {
				require.Less(t, idx, n)
			}
		}
	}
}

func TestBuildGridExampleThreeByThree(t *testing.T) {
	g, err := BuildGrid(DefaultGridConfig(3, 3), flat, flat)
	require.NoError(t, err)

	require.Len(t, g.Triangles, 8)
	assert.Equal(t, [3]uint32{0, 3, 1}, g.Triangles[0])
	assert.Equal(t, [3]uint32{1, 3, 4}, g.Triangles[1])

	last := g.Vertices[8].Position
	assert.InDelta(t, 0.125, last.X, 1e-6)
	assert.InDelta(t, 0.125, last.Z, 1e-6)
}

func TestBuildGridPositionsAndHeight(t *testing.T) {
	cfg := DefaultGridConfig(4, 3)
	cfg.Origin = math.V3(10, 2, -5)
	cfg.HeightScale = 3

	height := noise.SamplerFunc(func(x, y float64) float64 { return (x + y) / 10 })
	g, err := BuildGrid(cfg, height, flat)
	require.NoError(t, err)

	for r := 0; r < cfg.Depth; r++ {
		for c := 0; c < cfg.Width; c++ {
			p := g.At(r, c).Position
			assert.InDelta(t, 10+float32(c)*DefaultStep, p.X, 1e-5)
			assert.InDelta(t, -5+float32(r)*DefaultStep, p.Z, 1e-5)
			assert.InDelta(t, 2+3*float32(c+r)/10, p.Y, 1e-5)
		}
	}
}

func TestBuildGridZeroConfigUsesDefaults(t *testing.T) {
	g, err := BuildGrid(GridConfig{Width: 3, Depth: 3}, noise.Constant(0.5), flat)
	require.NoError(t, err)

	for i, v := range g.Vertices {
		assert.InDelta(t, 0.5, v.Position.Y, 1e-6, "vertex %d", i)
	}
	assert.InDelta(t, 2*DefaultStep, g.Vertices[8].Position.X, 1e-6)
	assert.Equal(t, DefaultPalette().Desert, g.Vertices[0].Color)
}

func TestBuildGridWindingFacesUp(t *testing.T) {
	g, err := BuildGrid(DefaultGridConfig(5, 4), flat, flat)
	require.NoError(t, err)

	for i, tri := range g.Triangles {
		a := g.Vertices[tri[0]].Position
		b := g.Vertices[tri[1]].Position
		c := g.Vertices[tri[2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Y, float32(0), "triangle %d faces down", i)
	}
}

func TestBuildGridBiomeColors(t *testing.T) {
	p := DefaultPalette()

	g, err := BuildGrid(DefaultGridConfig(2, 2), flat, noise.Constant(-1))
	require.NoError(t, err)
	for _, v := range g.Vertices {
		assert.Equal(t, [3]float32{0.0, 0.75, 0.25}, v.Color)
	}

	g, err = BuildGrid(DefaultGridConfig(2, 2), flat, noise.Constant(0.3))
	require.NoError(t, err)
	for _, v := range g.Vertices {
		assert.Equal(t, p.Desert, v.Color)
	}

	// Threshold is inclusive.
	assert.Equal(t, p.Plains, p.Color(-0.75))
	assert.Equal(t, p.Desert, p.Color(-0.7499))
}

func TestBuildGridRejectsSmallDimensions(t *testing.T) {
	tests := []struct {
		name  string
		w, d  int
		field string
	}{
		{"width one", 1, 5, "width"},
		{"depth one", 5, 1, "depth"},
		{"zero", 0, 0, "width"},
		{"negative depth", 3, -2, "depth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(DefaultGridConfig(tt.w, tt.d), flat, flat)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, mesh.ErrInvalidDimensions))

			var cfgErr *mesh.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "grid", cfgErr.Mesh)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestGridBuffer(t *testing.T) {
	g, err := BuildGrid(DefaultGridConfig(4, 4), flat, flat)
	require.NoError(t, err)

	b := g.Buffer()
	require.NoError(t, b.Validate())
	assert.Equal(t, 16, b.VertexCount())
	assert.Len(t, b.Indices, 2*3*3*3)
	// Second vertex: x = step, colour follows position.
	assert.InDelta(t, DefaultStep, b.Vertices[6], 1e-6)
	assert.Equal(t, float32(1.0), b.Vertices[9])
}

func TestGridBounds(t *testing.T) {
	cfg := DefaultGridConfig(3, 3)
	cfg.Step = 1
	height := noise.SamplerFunc(func(x, y float64) float64 { return x - y })
	g, err := BuildGrid(cfg, height, flat)
	require.NoError(t, err)

	b := g.Bounds()
	assert.Equal(t, math.V3(0, -2, 0), b.Min)
	assert.Equal(t, math.V3(2, 2, 2), b.Max)
}

func TestHeightAt(t *testing.T) {
	cfg := DefaultGridConfig(3, 3)
	cfg.Step = 1
	height := noise.SamplerFunc(func(x, y float64) float64 { return x })
	g, err := BuildGrid(cfg, height, flat)
	require.NoError(t, err)

	tests := []struct {
		name string
		x, z float32
		want float32
	}{
		{"corner", 0, 0, 0},
		{"lattice point", 1, 1, 1},
		{"midpoint", 0.5, 0.25, 0.5},
		{"far edge", 2, 2, 2},
		{"clamped low", -4, -4, 0},
		{"clamped high", 9, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, g.HeightAt(tt.x, tt.z), 1e-5)
		})
	}

	assert.True(t, g.Contains(1, 1))
	assert.False(t, g.Contains(-0.1, 1))
}

func TestScatter(t *testing.T) {
	cfg := DefaultGridConfig(8, 8)
	cfg.Step = 1
	height := noise.SamplerFunc(func(x, y float64) float64 { return y * 0.5 })
	g, err := BuildGrid(cfg, height, flat)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	ms := Scatter(g, 50, 0.5, 1.5, rng)
	require.Len(t, ms, 50)

	for _, m := range ms {
		p := m.Translation()
		assert.True(t, g.Contains(p.X, p.Z))
		assert.InDelta(t, g.HeightAt(p.X, p.Z), p.Y, 1e-4)

		// Column lengths carry the uniform scale.
		sx := math.V3(m[0], m[1], m[2]).Length()
		sy := math.V3(m[4], m[5], m[6]).Length()
		assert.InDelta(t, sx, sy, 1e-4)
		assert.GreaterOrEqual(t, sy, float32(0.5)-1e-4)
		assert.LessOrEqual(t, sy, float32(1.5)+1e-4)
	}

	assert.Nil(t, Scatter(g, 0, 1, 1, rng))
}
