package sphere

import (
	"github.com/Faultbox/glscene/internal/noise"
)

// DisplaceResolution is the size of the UV lattice displacement noise is
// sampled on, matching a 256x256 noise texture.
const DisplaceResolution = 256

// Displace returns a copy of s with every vertex pushed along its normal by
// amplitude*(first + 0.5*second), both sampled at the vertex UV. Seam vertices
// share a position but not a UV, so the seam may open slightly under large
// amplitudes.
func Displace(s *Sphere, first, second noise.Sampler, amplitude float32) *Sphere {
	out := &Sphere{
		Radius:   s.Radius,
		LatSteps: s.LatSteps,
		LonSteps: s.LonSteps,
		Vertices: make([]Vertex, len(s.Vertices)),
		Indices:  append([]uint32(nil), s.Indices...),
	}

	for i, v := range s.Vertices {
		u := float64(v.UV.X) * DisplaceResolution
		w := float64(v.UV.Y) * DisplaceResolution
		d := first.Sample(u, w) + 0.5*second.Sample(u, w)

		v.Position = v.Position.Add(v.Normal.Scale(amplitude * float32(d)))
		out.Vertices[i] = v
	}
	return out
}
