package noise

// Bake samples s over a width x height lattice and returns one grayscale byte
// per texel, row-major, mapping [-1, 1] to [0, 255].
func Bake(s Sampler, width, height int) []uint8 {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := clamp(s.Sample(float64(x), float64(y)), -1, 1)
			out[y*width+x] = uint8((v + 1) / 2 * 255)
		}
	}
	return out
}
