// Package sphere builds UV-sphere meshes with a closed longitude seam.
package sphere

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/glscene/internal/mesh"
	"github.com/Faultbox/glscene/pkg/math"
)

// Vertex is one sphere vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    [3]float32
}

// Options configures BuildWithOptions.
type Options struct {
	Radius   float32
	LatSteps int
	LonSteps int
	Color    [3]float32
}

// Sphere holds vertices as LatSteps rings of LonSteps vertices
// (index = lat*LonSteps + lon) and six indices per quad cell.
type Sphere struct {
	Radius   float32
	LatSteps int
	LonSteps int
	Vertices []Vertex
	Indices  []uint32
}

var white = [3]float32{1, 1, 1}

// Build builds a white sphere.
func Build(radius float32, latSteps, lonSteps int) (*Sphere, error) {
	return BuildWithOptions(Options{
		Radius:   radius,
		LatSteps: latSteps,
		LonSteps: lonSteps,
		Color:    white,
	})
}

// BuildWithOptions builds a sphere. It needs at least two latitude rings and
// three longitude steps.
func BuildWithOptions(opts Options) (*Sphere, error) {
	if err := mesh.CheckMin("sphere", "latitude steps", opts.LatSteps, 2); err != nil {
		return nil, err
	}
	if err := mesh.CheckMin("sphere", "longitude steps", opts.LonSteps, 3); err != nil {
		return nil, err
	}

	lat, lon := opts.LatSteps, opts.LonSteps
	s := &Sphere{
		Radius:   opts.Radius,
		LatSteps: lat,
		LonSteps: lon,
		Vertices: make([]Vertex, 0, lat*lon),
		Indices:  make([]uint32, 0, 6*(lat-1)*(lon-1)),
	}

	for i := 0; i < lat; i++ {
		phi := math32.Pi * float32(i) / float32(lat-1)
		sinPhi, cosPhi := math32.Sincos(phi)

		for j := 0; j < lon; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(lon)
			sinTheta, cosTheta := math32.Sincos(theta)

			unit := math.Vec3{
				X: sinPhi * cosTheta,
				Y: cosPhi,
				Z: sinPhi * sinTheta,
			}
			s.Vertices = append(s.Vertices, Vertex{
				Position: unit.Scale(opts.Radius).SnapZero(),
				Normal:   unit.SnapZero(),
				UV: math.Vec2{
					X: float32(j) / float32(lon-1),
					Y: (cosPhi + 1) / 2,
				},
				Color: opts.Color,
			})
		}
	}

	s.Indices = appendIndices(s.Indices, lat, lon)
	return s, nil
}

// appendIndices emits two triangles per cell. The last iterated column wraps
// its right-hand neighbours back to longitude 0 of the same ring.
func appendIndices(dst []uint32, lat, lon int) []uint32 {
	for i := 0; i < lat-1; i++ {
		for j := 0; j < lon-1; j++ {
			tl := uint32(i*lon + j)
			bl := uint32((i+1)*lon + j)
			tr := tl + 1
			br := bl + 1
			if j == lon-2 {
				tr = uint32(i * lon)
				br = uint32((i + 1) * lon)
			}
			dst = append(dst, tl, bl, tr, tr, bl, br)
		}
	}
	return dst
}

// Ring returns the vertices of latitude ring lat.
func (s *Sphere) Ring(lat int) []Vertex {
	return s.Vertices[lat*s.LonSteps : (lat+1)*s.LonSteps]
}

// Buffer flattens the sphere into a position/uv/colour/normal buffer.
func (s *Sphere) Buffer() mesh.Buffer {
	layout := mesh.PositionUVColorNormal
	b := mesh.Buffer{
		Layout:   layout,
		Vertices: make([]float32, 0, len(s.Vertices)*layout.Stride()),
		Indices:  append([]uint32(nil), s.Indices...),
	}
	for _, v := range s.Vertices {
		b.Vertices = append(b.Vertices,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.UV.X, v.UV.Y,
			v.Color[0], v.Color[1], v.Color[2],
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}
	return b
}
