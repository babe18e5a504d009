package noise

import "math"

// cellular returns the distance to the nearest jittered feature point minus one,
// so points close to a feature approach -1.
func cellular(x, y float64, seed int64) float64 {
	cx := int64(math.Floor(x))
	cy := int64(math.Floor(y))

	best := math.MaxFloat64
	for dy := int64(-1); dy <= 1; dy++ {
		for dx := int64(-1); dx <= 1; dx++ {
			ix, iy := cx+dx, cy+dy
			h := hash2(ix, iy, seed)
			fx := float64(ix) + unit(h)
			fy := float64(iy) + unit(h>>32)

			ddx, ddy := fx-x, fy-y
			if d := ddx*ddx + ddy*ddy; d < best {
				best = d
			}
		}
	}
	return math.Sqrt(best) - 1
}

// hash2 is a SplitMix64-style lattice hash, stable for the same inputs.
func hash2(x, y, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// unit maps the low 32 bits of h to [0, 1).
func unit(h uint64) float64 {
	return float64(h&0xFFFFFFFF) / (1 << 32)
}
