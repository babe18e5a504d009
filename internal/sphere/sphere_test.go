package sphere

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/glscene/internal/mesh"
	"github.com/Faultbox/glscene/internal/noise"
)

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		lat, lon int
	}{
		{2, 3},
		{3, 4},
		{10, 10},
		{32, 64},
	}

	for _, tt := range tests {
		s, err := Build(1, tt.lat, tt.lon)
		require.NoError(t, err)

		assert.Len(t, s.Vertices, tt.lat*tt.lon)
		assert.Len(t, s.Indices, 6*(tt.lat-1)*(tt.lon-1))

		n := uint32(tt.lat * tt.lon)
		for _, idx := range s.Indices {
			require.Less(t, idx, n)
		}
	}
}

func TestBuildVerticesOnSphere(t *testing.T) {
	const r = 2.5
	s, err := Build(r, 12, 24)
	require.NoError(t, err)

	for i, v := range s.Vertices {
		assert.InDelta(t, r, v.Position.Length(), 1e-4, "vertex %d", i)

		n := v.Position.Normalize()
		assert.InDelta(t, n.X, v.Normal.X, 1e-5)
		assert.InDelta(t, n.Y, v.Normal.Y, 1e-5)
		assert.InDelta(t, n.Z, v.Normal.Z, 1e-5)
		assert.Equal(t, white, v.Color)
	}
}

func TestBuildPoles(t *testing.T) {
	s, err := Build(1, 5, 8)
	require.NoError(t, err)

	for _, v := range s.Ring(0) {
		assert.Equal(t, float32(0), v.Position.X)
		assert.Equal(t, float32(1), v.Position.Y)
		assert.Equal(t, float32(0), v.Position.Z)
		assert.Equal(t, float32(1), v.UV.Y)
	}
	for _, v := range s.Ring(4) {
		assert.Equal(t, float32(0), v.Position.X)
		assert.InDelta(t, -1, v.Position.Y, 1e-6)
		assert.Equal(t, float32(0), v.Position.Z)
		assert.InDelta(t, 0, v.UV.Y, 1e-6)
	}

	// Equator ring: cos(phi) snaps to exactly zero.
	for _, v := range s.Ring(2) {
		assert.Equal(t, float32(0), v.Position.Y)
	}
}

func TestBuildUV(t *testing.T) {
	s, err := Build(1, 3, 5)
	require.NoError(t, err)

	ring := s.Ring(1)
	for j, v := range ring {
		assert.InDelta(t, float32(j)/4, v.UV.X, 1e-6)
	}
	assert.InDelta(t, 0.5, ring[0].UV.Y, 1e-6)

	// theta = 2*pi*lon/lonSteps, so the last column stops short of 2*pi.
	want := 2 * math32.Pi * 4 / 5
	assert.InDelta(t, math32.Cos(want), ring[4].Position.X, 1e-5)
	assert.InDelta(t, math32.Sin(want), ring[4].Position.Z, 1e-5)
}

func TestSeamWraps(t *testing.T) {
	tests := []struct {
		lat, lon int
	}{
		{2, 3},
		{4, 6},
		{9, 17},
	}

	for _, tt := range tests {
		s, err := Build(1, tt.lat, tt.lon)
		require.NoError(t, err)

		cellsPerRing := tt.lon - 1
		for lat := 0; lat < tt.lat-1; lat++ {
			lon := tt.lon - 2
			cell := lat*cellsPerRing + lon
			idx := s.Indices[cell*6 : cell*6+6]

			tl := uint32(lat*tt.lon + lon)
			bl := uint32((lat+1)*tt.lon + lon)
			tr := uint32(lat * tt.lon)
			br := uint32((lat + 1) * tt.lon)

			assert.Equal(t, []uint32{tl, bl, tr, tr, bl, br}, idx, "lat %d", lat)
		}
	}
}

func TestInteriorCellIndices(t *testing.T) {
	s, err := Build(1, 3, 5)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 5, 1, 1, 5, 6}, s.Indices[0:6])
	// Second ring, first cell.
	assert.Equal(t, []uint32{5, 10, 6, 6, 10, 11}, s.Indices[24:30])
}

func TestBuildRejectsSmallDimensions(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon int
		field    string
	}{
		{"one ring", 1, 8, "latitude steps"},
		{"two longitudes", 4, 2, "longitude steps"},
		{"zero", 0, 0, "latitude steps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(1, tt.lat, tt.lon)
			assert.Nil(t, s)
			require.True(t, errors.Is(err, mesh.ErrInvalidDimensions))

			var cfgErr *mesh.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "sphere", cfgErr.Mesh)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBuildWithOptionsColor(t *testing.T) {
	red := [3]float32{1, 0, 0}
	s, err := BuildWithOptions(Options{Radius: 1, LatSteps: 3, LonSteps: 3, Color: red})
	require.NoError(t, err)
	for _, v := range s.Vertices {
		assert.Equal(t, red, v.Color)
	}
}

func TestBuffer(t *testing.T) {
	s, err := Build(1, 4, 6)
	require.NoError(t, err)

	b := s.Buffer()
	require.NoError(t, b.Validate())
	assert.Equal(t, 11, b.Layout.Stride())
	assert.Equal(t, len(s.Vertices), b.VertexCount())

	// First vertex is the north pole.
	assert.Equal(t, []float32{0, 1, 0, 0, 1, 1, 1, 1, 0, 1, 0}, b.Vertices[:11])
}

func TestDisplace(t *testing.T) {
	s, err := Build(1, 6, 8)
	require.NoError(t, err)

	out := Displace(s, noise.Constant(0.5), noise.Constant(1), 0.2)
	require.Len(t, out.Vertices, len(s.Vertices))
	assert.Equal(t, s.Indices, out.Indices)

	// 0.2 * (0.5 + 0.5*1) = 0.2 outward.
	for i, v := range out.Vertices {
		assert.InDelta(t, 1.2, v.Position.Length(), 1e-4, "vertex %d", i)
		assert.InDelta(t, 1, s.Vertices[i].Position.Length(), 1e-4, "input mutated")
	}

	flat := Displace(s, noise.Constant(0), noise.Constant(0), 5)
	assert.Equal(t, s.Vertices, flat.Vertices)
}
