package projectile

import (
	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/pkg/math"
)

// LightProvider hands out point lights that follow a projectile.
type LightProvider interface {
	Create(l lighting.PointLight) (lighting.Handle, error)
	Move(h lighting.Handle, pos math.Vec3)
	Release(h lighting.Handle)
}

// SoundHandle identifies a playing positional sound.
type SoundHandle uint64

// AudioProvider plays positional sounds that follow a projectile.
type AudioProvider interface {
	Play3D(clip string, pos math.Vec3, loop bool) (SoundHandle, error)
	SetPosition(h SoundHandle, pos math.Vec3)
	Stop(h SoundHandle)
}

// Random is a uniform [0, 1) source. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
}
