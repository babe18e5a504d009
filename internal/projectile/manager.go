package projectile

import (
	"errors"
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/pkg/math"
)

// record is the single owner of a live projectile and its resources.
type record struct {
	id uint64
	p  Projectile

	light    lighting.Handle
	hasLight bool
	sound    SoundHandle
	hasSound bool
}

// Stats is a snapshot of manager counters.
type Stats struct {
	Active         int
	Spawned        uint64
	Destroyed      uint64
	DegradedLights uint64
	DegradedSounds uint64
	Timer          float64
	Cooldown       float64
}

// Manager spawns projectiles on a randomized cooldown, advances them every
// frame and releases each projectile's light and sound together when it dies.
//
// A nil LightProvider or AudioProvider disables that resource entirely.
// Manager is driven from the frame loop and is not safe for concurrent use.
type Manager struct {
	cfg    ManagerConfig
	lights LightProvider
	sounds AudioProvider
	rng    Random
	log    *zap.Logger

	active   []*record
	timer    float64
	cooldown float64
	nextID   uint64

	spawned        uint64
	destroyed      uint64
	degradedLights uint64
	degradedSounds uint64
}

// NewManager validates cfg and samples the first cooldown.
func NewManager(cfg ManagerConfig, lights LightProvider, sounds AudioProvider, rng Random) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("projectile manager needs a random source")
	}

	m := &Manager{
		cfg:    cfg,
		lights: lights,
		sounds: sounds,
		rng:    rng,
		log:    logger.Named("bubbles"),
		active: make([]*record, 0, cfg.MaxActive),
	}
	m.cooldown = m.uniform(cfg.CooldownMin, cfg.CooldownMax)
	return m, nil
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(l *zap.Logger) {
	m.log = l
}

// Update runs one frame: tick the spawn timer, spawn at most one projectile,
// then advance every projectile and tear down the ones that died.
func (m *Manager) Update(dt float64) {
	// The timer is held on purpose while the registry is full, so a full
	// registry does not bank time for a burst of spawns later.
	if len(m.active) < m.cfg.MaxActive {
		m.timer += dt
		if m.timer >= m.cooldown {
			m.spawn()
			m.cooldown = m.uniform(m.cfg.CooldownMin, m.cfg.CooldownMax)
			m.timer = 0
		}
	}

	kept := m.active[:0]
	for _, r := range m.active {
		if err := r.p.Advance(dt); err != nil {
			m.release(r)
			continue
		}
		if r.p.ShouldDestroy() {
			r.p.Destroy()
			m.release(r)
			m.destroyed++
			m.log.Debug("bubble destroyed",
				zap.Uint64("id", r.id),
				zap.Float64("elapsed", r.p.Elapsed()))
			continue
		}
		m.track(r)
		kept = append(kept, r)
	}
	clear(m.active[len(kept):])
	m.active = kept
}

func (m *Manager) spawn() {
	c := &m.cfg

	pos := math.Vec3{
		X: float32(m.uniform(float64(c.SpawnMin.X), float64(c.SpawnMax.X))),
		Y: float32(m.uniform(float64(c.SpawnMin.Y), float64(c.SpawnMax.Y))),
		Z: float32(m.uniform(float64(c.SpawnMin.Z), float64(c.SpawnMax.Z))),
	}

	theta := m.rng.Float64() * 2 * stdmath.Pi
	phi := m.uniform(c.PhiMin, c.PhiMax)
	sinPhi, cosPhi := stdmath.Sincos(phi)
	sinTheta, cosTheta := stdmath.Sincos(theta)
	vel := math.Vec3{
		X: float32(sinPhi * cosTheta * c.LaunchSpeed),
		Y: float32(cosPhi * c.LaunchSpeed),
		Z: float32(sinPhi * sinTheta * c.LaunchSpeed),
	}

	speedMul := m.uniform(c.SpeedMultiplierMin, c.SpeedMultiplierMax)
	gravityMul := m.uniform(c.GravityMultiplierMin, c.GravityMultiplierMax)

	m.nextID++
	r := &record{id: m.nextID}
	r.p.Launch(vel, pos, gravityMul, speedMul, c.MaxLifetime)

	if m.lights != nil {
		light := c.Light
		light.Position = pos
		h, err := m.lights.Create(light)
		if err != nil {
			m.degradedLights++
			m.log.Warn("bubble spawned without light", zap.Uint64("id", r.id), zap.Error(err))
		} else {
			r.light, r.hasLight = h, true
		}
	}

	if m.sounds != nil {
		h, err := m.sounds.Play3D(c.SoundClip, pos, c.SoundLoop)
		if err != nil {
			m.degradedSounds++
			m.log.Warn("bubble spawned without sound", zap.Uint64("id", r.id), zap.Error(err))
		} else {
			r.sound, r.hasSound = h, true
		}
	}

	m.active = append(m.active, r)
	m.spawned++
	m.log.Debug("bubble spawned",
		zap.Uint64("id", r.id),
		zap.Float64("speedMul", speedMul),
		zap.Float64("gravityMul", gravityMul),
		zap.Int("active", len(m.active)))
}

// track moves the resources that exist to the projectile's position.
func (m *Manager) track(r *record) {
	pos := r.p.Position()
	if r.hasLight {
		m.lights.Move(r.light, pos)
	}
	if r.hasSound {
		m.sounds.SetPosition(r.sound, pos)
	}
}

// release frees both resources of a record in one step.
func (m *Manager) release(r *record) {
	if r.hasLight {
		m.lights.Release(r.light)
		r.hasLight = false
	}
	if r.hasSound {
		m.sounds.Stop(r.sound)
		r.hasSound = false
	}
}

func (m *Manager) uniform(lo, hi float64) float64 {
	return lo + m.rng.Float64()*(hi-lo)
}

// Active returns the number of live projectiles.
func (m *Manager) Active() int {
	return len(m.active)
}

// Positions appends the position of every live projectile to dst in spawn order.
func (m *Manager) Positions(dst []math.Vec3) []math.Vec3 {
	for _, r := range m.active {
		dst = append(dst, r.p.Position())
	}
	return dst
}

// Stats returns the current counters.
func (m *Manager) Stats() Stats {
	return Stats{
		Active:         len(m.active),
		Spawned:        m.spawned,
		Destroyed:      m.destroyed,
		DegradedLights: m.degradedLights,
		DegradedSounds: m.degradedSounds,
		Timer:          m.timer,
		Cooldown:       m.cooldown,
	}
}

// Close releases every outstanding light and sound and empties the registry.
func (m *Manager) Close() {
	for _, r := range m.active {
		r.p.Destroy()
		m.release(r)
	}
	clear(m.active)
	m.active = m.active[:0]
}

func (s Stats) String() string {
	return fmt.Sprintf("active=%d spawned=%d destroyed=%d degraded(light=%d sound=%d)",
		s.Active, s.Spawned, s.Destroyed, s.DegradedLights, s.DegradedSounds)
}
