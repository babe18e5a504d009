package lighting

// GPUArrays holds the live lights flattened for uniform upload. Vector arrays
// are MaxPointLights*3 long and scalar arrays MaxPointLights long, padded with
// zeros past Count.
type GPUArrays struct {
	Count     int
	Positions []float32
	Ambient   []float32
	Diffuse   []float32
	Specular  []float32
	Constant  []float32
	Linear    []float32
	Quadratic []float32
}

// GPUArrays packs live lights back to back in slot order.
func (p *Pool) GPUArrays() GPUArrays {
	a := GPUArrays{
		Positions: make([]float32, MaxPointLights*3),
		Ambient:   make([]float32, MaxPointLights*3),
		Diffuse:   make([]float32, MaxPointLights*3),
		Specular:  make([]float32, MaxPointLights*3),
		Constant:  make([]float32, MaxPointLights),
		Linear:    make([]float32, MaxPointLights),
		Quadratic: make([]float32, MaxPointLights),
	}

	p.Each(func(_ Handle, l PointLight) {
		i := a.Count
		copy(a.Positions[i*3:], []float32{l.Position.X, l.Position.Y, l.Position.Z})
		copy(a.Ambient[i*3:], l.Ambient[:])
		copy(a.Diffuse[i*3:], l.Diffuse[:])
		copy(a.Specular[i*3:], l.Specular[:])
		a.Constant[i] = l.Attenuation.Constant
		a.Linear[i] = l.Attenuation.Linear
		a.Quadratic[i] = l.Attenuation.Quadratic
		a.Count++
	})
	return a
}
