// Package lighting provides point light support for scene rendering.
package lighting

import (
	"github.com/Faultbox/glscene/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

// Attenuation holds the constant, linear and quadratic falloff terms.
type Attenuation struct {
	Constant  float32 `yaml:"constant"`
	Linear    float32 `yaml:"linear"`
	Quadratic float32 `yaml:"quadratic"`
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position    math.Vec3   `yaml:"-"`
	Attenuation Attenuation `yaml:"attenuation"`
	Ambient     [3]float32  `yaml:"ambient"`
	Diffuse     [3]float32  `yaml:"diffuse"`
	Specular    [3]float32  `yaml:"specular"`
}

// DefaultPointLight returns a white light with a roughly 50 unit reach.
func DefaultPointLight() PointLight {
	return PointLight{
		Attenuation: Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		Ambient:     [3]float32{0.05, 0.05, 0.05},
		Diffuse:     [3]float32{0.8, 0.8, 0.8},
		Specular:    [3]float32{1, 1, 1},
	}
}

// clampColor clamps each channel to the 0-1 range.
func clampColor(c [3]float32) [3]float32 {
	for i := range c {
		if c[i] > 1 {
			c[i] = 1
		}
		if c[i] < 0 {
			c[i] = 0
		}
	}
	return c
}
