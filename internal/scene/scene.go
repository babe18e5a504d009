// Package scene owns everything the viewer draws: the noise fields, the terrain
// grid and its vegetation, the displaced showcase sphere and the bubble
// manager with its point lights.
package scene

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/config"
	"github.com/Faultbox/glscene/internal/engine/lighting"
	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/internal/mesh"
	"github.com/Faultbox/glscene/internal/noise"
	"github.com/Faultbox/glscene/internal/projectile"
	"github.com/Faultbox/glscene/internal/sphere"
	"github.com/Faultbox/glscene/internal/terrain"
	smath "github.com/Faultbox/glscene/pkg/math"
)

// Mesh names in the registry.
const (
	MeshTerrain = "terrain"
	MeshSphere  = "sphere"
	MeshBubble  = "bubble"
	MeshShrub   = "shrub"
)

// pcgStream separates the scene's random stream from other users of the seed.
const pcgStream = 0x9e3779b97f4a7c15

var shrubColor = [3]float32{0.18, 0.42, 0.16}

// NamedBuffer is one registry entry.
type NamedBuffer struct {
	Name   string
	Buffer mesh.Buffer
}

// Draw is one entry of the per-frame draw list. A non-nil Instances means an
// instanced draw and Model is ignored.
type Draw struct {
	Mesh      string
	Model     smath.Mat4
	Instances []smath.Mat4
	Emissive  float32
}

// Scene is the owning context for the procedural scene. It is driven from the
// frame loop and is not safe for concurrent use.
type Scene struct {
	cfg *config.Config
	log *zap.Logger
	rng *rand.Rand

	meshes []NamedBuffer
	grid   *terrain.Grid
	shrubs []smath.Mat4

	lights  *lighting.Pool
	bubbles *projectile.Manager
	tint    noise.Sampler

	spherePos smath.Vec3
	time      float64
	positions []smath.Vec3
}

// New builds the scene described by cfg. A mesh whose parameters are invalid
// is logged and left out; the rest of the scene still builds. Only an invalid
// bubble configuration is returned as an error. sounds may be nil.
func New(cfg *config.Config, sounds projectile.AudioProvider) (*Scene, error) {
	s := &Scene{
		cfg:       cfg,
		log:       logger.Named("scene"),
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^pcgStream)),
		lights:    lighting.NewPool(lighting.MaxPointLights),
		spherePos: cfg.SpherePosition(),
	}

	s.buildTerrain()
	s.buildSphere()
	s.buildBubbleMesh()

	if t, err := noise.New(cfg.Bubbles.Tint); err != nil {
		s.log.Warn("bubble tint disabled", zap.Error(err))
	} else {
		s.tint = t
	}

	m, err := projectile.NewManager(cfg.ManagerConfig(), s.lights, sounds, s.rng)
	if err != nil {
		return nil, err
	}
	s.bubbles = m

	s.log.Info("scene built",
		zap.Int("meshes", len(s.meshes)),
		zap.Int("shrubs", len(s.shrubs)),
		zap.Int("max_bubbles", cfg.Bubbles.MaxActive),
	)
	return s, nil
}

func (s *Scene) add(name string, b mesh.Buffer) {
	s.meshes = append(s.meshes, NamedBuffer{Name: name, Buffer: b})
}

func (s *Scene) buildTerrain() {
	tc := s.cfg.Terrain
	height, err := noise.New(tc.Height)
	if err != nil {
		s.log.Error("terrain skipped", zap.String("field", "height"), zap.Error(err))
		return
	}
	biome, err := noise.New(tc.Biome)
	if err != nil {
		s.log.Error("terrain skipped", zap.String("field", "biome"), zap.Error(err))
		return
	}

	g, err := terrain.BuildGrid(s.cfg.GridConfig(), height, biome)
	if err != nil {
		s.log.Error("terrain skipped", zap.Error(err))
		return
	}
	s.grid = g
	s.add(MeshTerrain, g.Buffer())

	vc := s.cfg.Vegetation
	if vc.Count == 0 {
		return
	}
	shrub, err := sphere.BuildWithOptions(sphere.Options{Radius: 1, LatSteps: 6, LonSteps: 8, Color: shrubColor})
	if err != nil {
		s.log.Error("vegetation skipped", zap.Error(err))
		return
	}
	s.shrubs = terrain.Scatter(g, vc.Count, vc.MinScale, vc.MaxScale, s.rng)
	s.add(MeshShrub, shrub.Buffer())
}

func (s *Scene) buildSphere() {
	sc := s.cfg.Sphere
	sp, err := sphere.BuildWithOptions(s.cfg.SphereOptions())
	if err != nil {
		s.log.Error("sphere skipped", zap.Error(err))
		return
	}

	if sc.Amplitude != 0 {
		first, err1 := noise.New(sc.First)
		second, err2 := noise.New(sc.Second)
		switch {
		case err1 != nil:
			s.log.Warn("sphere displacement disabled", zap.Error(err1))
		case err2 != nil:
			s.log.Warn("sphere displacement disabled", zap.Error(err2))
		default:
			sp = sphere.Displace(sp, first, second, sc.Amplitude)
		}
	}
	s.add(MeshSphere, sp.Buffer())
}

func (s *Scene) buildBubbleMesh() {
	b, err := sphere.BuildWithOptions(sphere.Options{
		Radius:   s.cfg.Bubbles.Radius,
		LatSteps: 8,
		LonSteps: 12,
		Color:    s.cfg.Bubbles.Light.Diffuse,
	})
	if err != nil {
		s.log.Error("bubble mesh skipped", zap.Error(err))
		return
	}
	s.add(MeshBubble, b.Buffer())
}

// Update advances the scene by dt seconds: bubbles spawn, move and die, then
// the surviving lights are recoloured.
func (s *Scene) Update(dt float64) {
	s.time += dt
	s.bubbles.Update(dt)
	if s.tint != nil {
		s.lights.Tint(s.tint, s.time)
	}
}

// Meshes returns the mesh registry in build order.
func (s *Scene) Meshes() []NamedBuffer {
	return s.meshes
}

// Has reports whether the named mesh was built.
func (s *Scene) Has(name string) bool {
	for _, m := range s.meshes {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Draws returns this frame's draw list. Bubble instances follow the live
// projectiles. Entries for meshes that failed to build are omitted.
func (s *Scene) Draws() []Draw {
	draws := make([]Draw, 0, 4)
	if s.Has(MeshTerrain) {
		draws = append(draws, Draw{Mesh: MeshTerrain, Model: smath.Identity()})
	}
	if s.Has(MeshShrub) && len(s.shrubs) > 0 {
		draws = append(draws, Draw{Mesh: MeshShrub, Instances: s.shrubs})
	}
	if s.Has(MeshSphere) {
		draws = append(draws, Draw{Mesh: MeshSphere, Model: smath.TranslateVec(s.spherePos)})
	}
	if s.Has(MeshBubble) {
		s.positions = s.bubbles.Positions(s.positions[:0])
		if len(s.positions) > 0 {
			inst := make([]smath.Mat4, len(s.positions))
			for i, p := range s.positions {
				inst[i] = smath.TranslateVec(p)
			}
			draws = append(draws, Draw{Mesh: MeshBubble, Instances: inst, Emissive: 0.7})
		}
	}
	return draws
}

// Grid returns the terrain grid, or nil when it failed to build.
func (s *Scene) Grid() *terrain.Grid {
	return s.grid
}

// GroundHeight returns the terrain height under (x, z), or 0 without terrain.
func (s *Scene) GroundHeight(x, z float32) float32 {
	if s.grid == nil {
		return 0
	}
	return s.grid.HeightAt(x, z)
}

// Lights returns the point-light pool.
func (s *Scene) Lights() *lighting.Pool {
	return s.lights
}

// Bubbles returns the bubble manager.
func (s *Scene) Bubbles() *projectile.Manager {
	return s.bubbles
}

// Stats returns the bubble counters.
func (s *Scene) Stats() projectile.Stats {
	return s.bubbles.Stats()
}

// Close releases every bubble's light and sound.
func (s *Scene) Close() {
	s.bubbles.Close()
	s.log.Info("scene closed", zap.Stringer("stats", s.bubbles.Stats()))
}
