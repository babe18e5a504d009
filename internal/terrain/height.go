package terrain

// HeightAt returns the bilinearly interpolated surface height at a world
// position. Positions outside the grid are clamped to its edge.
func (g *Grid) HeightAt(worldX, worldZ float32) float32 {
	fx := (worldX - g.Origin.X) / g.Step
	fz := (worldZ - g.Origin.Z) / g.Step

	cellX := int(fx)
	cellZ := int(fz)

	// Clamp to valid range
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX >= g.Width-1 {
		cellX = g.Width - 2
	}
	if cellZ >= g.Depth-1 {
		cellZ = g.Depth - 2
	}

	fracX := clampf(fx-float32(cellX), 0, 1)
	fracZ := clampf(fz-float32(cellZ), 0, 1)

	// Corners in lattice space: (row, col).
	nw := g.At(cellZ, cellX).Position.Y
	ne := g.At(cellZ, cellX+1).Position.Y
	sw := g.At(cellZ+1, cellX).Position.Y
	se := g.At(cellZ+1, cellX+1).Position.Y

	north := nw*(1-fracX) + ne*fracX
	south := sw*(1-fracX) + se*fracX
	return north*(1-fracZ) + south*fracZ
}

// Contains reports whether the world XZ position lies over the grid.
func (g *Grid) Contains(worldX, worldZ float32) bool {
	maxX := g.Origin.X + float32(g.Width-1)*g.Step
	maxZ := g.Origin.Z + float32(g.Depth-1)*g.Step
	return worldX >= g.Origin.X && worldX <= maxX && worldZ >= g.Origin.Z && worldZ <= maxZ
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
