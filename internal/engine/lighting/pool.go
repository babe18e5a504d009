package lighting

import (
	"errors"

	"github.com/Faultbox/glscene/pkg/math"
)

// ErrPoolFull is returned by Create when every slot is taken.
var ErrPoolFull = errors.New("point light pool full")

// Handle identifies a light in a Pool. The zero Handle is never issued.
// A released handle goes stale and is ignored by every Pool method.
type Handle uint32

const (
	slotBits = 8
	maxGen   = 1<<(32-slotBits) - 1
)

func makeHandle(slot int, gen uint32) Handle {
	return Handle(gen<<slotBits | uint32(slot))
}

func (h Handle) slot() int { return int(uint32(h) & (1<<slotBits - 1)) }
func (h Handle) gen() uint32 { return uint32(h) >> slotBits }

type slot struct {
	light PointLight
	gen   uint32
	used  bool
}

// Pool is a fixed-capacity set of point lights. Lights keep their slot for
// their whole life, so GPU array positions are stable between frames.
// Not safe for concurrent use.
type Pool struct {
	slots []slot
	live  int
}

// NewPool creates a pool with the given capacity, clamped to [1, MaxPointLights].
func NewPool(capacity int) *Pool {
	capacity = max(1, min(capacity, MaxPointLights))
	return &Pool{slots: make([]slot, capacity)}
}

// Create adds a light and returns its handle.
func (p *Pool) Create(l PointLight) (Handle, error) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.used {
			continue
		}
		// Generations cycle through [1, maxGen] so no handle is ever zero.
		s.gen = s.gen%maxGen + 1
		s.used = true
		s.light = l
		p.live++
		return makeHandle(i, s.gen), nil
	}
	return 0, ErrPoolFull
}

func (p *Pool) lookup(h Handle) *slot {
	i := h.slot()
	if h == 0 || i >= len(p.slots) {
		return nil
	}
	s := &p.slots[i]
	if !s.used || s.gen != h.gen() {
		return nil
	}
	return s
}

// Move sets the position of a live light.
func (p *Pool) Move(h Handle, pos math.Vec3) {
	if s := p.lookup(h); s != nil {
		s.light.Position = pos
	}
}

// SetDiffuse replaces the diffuse colour of a live light.
func (p *Pool) SetDiffuse(h Handle, c [3]float32) {
	if s := p.lookup(h); s != nil {
		s.light.Diffuse = clampColor(c)
	}
}

// Release frees the light's slot. Releasing a stale handle is a no-op.
func (p *Pool) Release(h Handle) {
	if s := p.lookup(h); s != nil {
		s.used = false
		s.light = PointLight{}
		p.live--
	}
}

// Get returns the light for h.
func (p *Pool) Get(h Handle) (PointLight, bool) {
	if s := p.lookup(h); s != nil {
		return s.light, true
	}
	return PointLight{}, false
}

// Len returns the number of live lights.
func (p *Pool) Len() int {
	return p.live
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Each calls fn for every live light in slot order.
func (p *Pool) Each(fn func(h Handle, l PointLight)) {
	for i := range p.slots {
		if s := &p.slots[i]; s.used {
			fn(makeHandle(i, s.gen), s.light)
		}
	}
}
