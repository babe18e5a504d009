package terrain

import (
	"github.com/Faultbox/glscene/internal/mesh"
	"github.com/Faultbox/glscene/internal/noise"
	"github.com/Faultbox/glscene/pkg/math"
)

// BuildGrid samples height and biome at every lattice point and triangulates
// the result, two counter-clockwise triangles per cell.
func BuildGrid(cfg GridConfig, height, biome noise.Sampler) (*Grid, error) {
	if err := mesh.CheckMin("grid", "width", cfg.Width, 2); err != nil {
		return nil, err
	}
	if err := mesh.CheckMin("grid", "depth", cfg.Depth, 2); err != nil {
		return nil, err
	}
	if cfg.Step == 0 {
		cfg.Step = DefaultStep
	}
	if cfg.HeightScale == 0 {
		cfg.HeightScale = 1
	}
	if cfg.Palette == (Palette{}) {
		cfg.Palette = DefaultPalette()
	}

	g := &Grid{
		Width:     cfg.Width,
		Depth:     cfg.Depth,
		Step:      cfg.Step,
		Origin:    cfg.Origin,
		Vertices:  make([]Vertex, 0, cfg.Width*cfg.Depth),
		Triangles: make([][3]uint32, 0, 2*(cfg.Width-1)*(cfg.Depth-1)),
	}

	g.bounds = Bounds{
		Min: math.V3(1e10, 1e10, 1e10),
		Max: math.V3(-1e10, -1e10, -1e10),
	}

	for r := 0; r < cfg.Depth; r++ {
		for c := 0; c < cfg.Width; c++ {
			h := height.Sample(float64(c), float64(r))
			pos := math.Vec3{
				X: cfg.Origin.X + float32(c)*cfg.Step,
				Y: cfg.Origin.Y + cfg.HeightScale*float32(h),
				Z: cfg.Origin.Z + float32(r)*cfg.Step,
			}
			g.Vertices = append(g.Vertices, Vertex{
				Position: pos,
				Color:    cfg.Palette.Color(biome.Sample(float64(c), float64(r))),
			})
			g.bounds.extend(pos)
		}
	}

	w := uint32(cfg.Width)
	for r := uint32(0); r < uint32(cfg.Depth-1); r++ {
		for c := uint32(0); c < w-1; c++ {
			tl := r*w + c
			bl := (r+1)*w + c
			tr := tl + 1
			br := bl + 1

			g.Triangles = append(g.Triangles,
				[3]uint32{tl, bl, tr},
				[3]uint32{tr, bl, br},
			)
		}
	}

	return g, nil
}

// Bounds returns the bounding box of all vertices.
func (g *Grid) Bounds() Bounds {
	return g.bounds
}

// At returns the vertex at row r, column c.
func (g *Grid) At(r, c int) Vertex {
	return g.Vertices[r*g.Width+c]
}

// Buffer flattens the grid into a position/colour buffer.
func (g *Grid) Buffer() mesh.Buffer {
	b := mesh.Buffer{
		Layout:   mesh.PositionColor,
		Vertices: make([]float32, 0, len(g.Vertices)*mesh.PositionColor.Stride()),
		Indices:  make([]uint32, 0, len(g.Triangles)*3),
	}
	for _, v := range g.Vertices {
		b.Vertices = append(b.Vertices,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Color[0], v.Color[1], v.Color[2],
		)
	}
	for _, t := range g.Triangles {
		b.Indices = append(b.Indices, t[0], t[1], t[2])
	}
	return b
}

func (b *Bounds) extend(p math.Vec3) {
	b.Min.X = min(b.Min.X, p.X)
	b.Min.Y = min(b.Min.Y, p.Y)
	b.Min.Z = min(b.Min.Z, p.Z)
	b.Max.X = max(b.Max.X, p.X)
	b.Max.Y = max(b.Max.Y, p.Y)
	b.Max.Z = max(b.Max.Z, p.Z)
}
