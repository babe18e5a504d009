// Package projectile simulates arcing bubbles and manages their lifetime
// together with the light and sound attached to each one.
package projectile

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/pkg/math"
)

// Gravity is the downward acceleration applied to every projectile.
const Gravity = 9.81

// ErrAdvanceDestroyed is returned when Advance is called on a destroyed projectile.
var ErrAdvanceDestroyed = errors.New("advance on destroyed projectile")

// State is the lifecycle state of a projectile.
type State int

// Projectile states. Destroyed is terminal.
const (
	Alive State = iota
	Destroyed
)

func (s State) String() string {
	switch s {
	case Alive:
		return "alive"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Projectile follows a parabolic arc from its launch point.
type Projectile struct {
	velocity    math.Vec3
	origin      math.Vec3
	position    math.Vec3
	elapsed     float64
	gravityMul  float64
	speedMul    float64
	maxLifetime float64
	state       State
}

// Launch (re)starts the projectile from position with the given velocity.
func (p *Projectile) Launch(velocity, position math.Vec3, gravityMul, speedMul, maxLifetime float64) {
	p.velocity = velocity
	p.origin = position
	p.position = position
	p.elapsed = 0
	p.gravityMul = gravityMul
	p.speedMul = speedMul
	p.maxLifetime = maxLifetime
	p.state = Alive
}

// Advance moves the projectile dt seconds along its arc.
//
// The speed multiplier scales the whole vertical term, gravity included, so a
// faster bubble also falls faster.
func (p *Projectile) Advance(dt float64) error {
	if p.state != Alive {
		logger.Warn("advance on destroyed projectile",
			zap.Float64("elapsed", p.elapsed),
			zap.Float64("dt", dt))
		return ErrAdvanceDestroyed
	}

	p.elapsed += dt
	t := p.elapsed
	horiz := t * p.speedMul

	p.position.X = p.origin.X + p.velocity.X*float32(horiz)
	p.position.Z = p.origin.Z + p.velocity.Z*float32(horiz)
	rise := float64(p.velocity.Y)*t - 0.5*(Gravity*p.gravityMul)*t*t
	p.position.Y = p.origin.Y + float32(rise*p.speedMul)
	return nil
}

// ShouldDestroy reports whether the projectile fell below ground or outlived
// its lifetime.
func (p *Projectile) ShouldDestroy() bool {
	return p.position.Y < 0 || p.elapsed >= p.maxLifetime
}

// Destroy marks the projectile destroyed.
func (p *Projectile) Destroy() {
	p.state = Destroyed
}

// State returns the lifecycle state.
func (p *Projectile) State() State {
	return p.state
}

// Position returns the current position.
func (p *Projectile) Position() math.Vec3 {
	return p.position
}

// Velocity returns the launch velocity.
func (p *Projectile) Velocity() math.Vec3 {
	return p.velocity
}

// Elapsed returns the seconds since launch.
func (p *Projectile) Elapsed() float64 {
	return p.elapsed
}
