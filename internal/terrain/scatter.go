package terrain

import (
	stdmath "math"

	"github.com/Faultbox/glscene/pkg/math"
)

// Random is the uniform [0, 1) source Scatter draws from.
type Random interface {
	Float64() float64
}

// Scatter places count instances at random points on the grid surface, each
// with a random rotation around Y and a uniform scale in [minScale, maxScale].
// The result is ready for an instanced draw.
func Scatter(g *Grid, count int, minScale, maxScale float32, rng Random) []math.Mat4 {
	if count <= 0 {
		return nil
	}

	spanX := float32(g.Width-1) * g.Step
	spanZ := float32(g.Depth-1) * g.Step

	out := make([]math.Mat4, 0, count)
	for range count {
		x := g.Origin.X + float32(rng.Float64())*spanX
		z := g.Origin.Z + float32(rng.Float64())*spanZ
		y := g.HeightAt(x, z)

		angle := float32(rng.Float64() * 2 * stdmath.Pi)
		s := minScale + float32(rng.Float64())*(maxScale-minScale)

		m := math.Translate(x, y, z).
			Mul(math.RotateY(angle)).
			Mul(math.Scale(s, s, s))
		out = append(out, m)
	}
	return out
}
