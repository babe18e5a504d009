package lighting

import "github.com/Faultbox/glscene/internal/noise"

// Channel offsets along the noise Y axis so R, G and B drift independently.
const tintChannelOffset = 97

// NoiseTint looks up an RGB colour in s at time t. Each light gets its own
// row (index), each channel is sampled on its own offset and mapped from
// [-1, 1] to [0, 1].
func NoiseTint(s noise.Sampler, t float64, index int) [3]float32 {
	var c [3]float32
	for ch := range c {
		y := float64(index*3*tintChannelOffset + ch*tintChannelOffset)
		v := s.Sample(t, y)
		c[ch] = float32((v + 1) / 2)
	}
	return clampColor(c)
}

// Tint recolours the diffuse term of every live light from s at time t.
func (p *Pool) Tint(s noise.Sampler, t float64) {
	i := 0
	for j := range p.slots {
		sl := &p.slots[j]
		if !sl.used {
			continue
		}
		sl.light.Diffuse = NoiseTint(s, t, i)
		i++
	}
}
