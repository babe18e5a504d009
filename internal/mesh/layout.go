// Package mesh defines the hand-off format between the CPU mesh builders and the
// GPU upload code: interleaved float buffers, index lists and an attribute layout.
package mesh

import "fmt"

// Semantic names what a vertex attribute carries.
type Semantic int

// Attribute semantics. The values double as shader attribute locations.
const (
	Position Semantic = iota
	Normal
	TexCoord
	Color
	InstanceMatrix Semantic = 6
)

func (s Semantic) String() string {
	switch s {
	case Position:
		return "position"
	case Normal:
		return "normal"
	case TexCoord:
		return "uv"
	case Color:
		return "color"
	case InstanceMatrix:
		return "instance"
	default:
		return fmt.Sprintf("semantic(%d)", int(s))
	}
}

// Attribute is one entry of a vertex layout.
type Attribute struct {
	Semantic   Semantic
	Components int // floats per vertex
}

// Layout is the ordered list of attributes interleaved in a vertex buffer.
type Layout []Attribute

// Stride returns the number of floats per vertex.
func (l Layout) Stride() int {
	n := 0
	for _, a := range l {
		n += a.Components
	}
	return n
}

// Offset returns the float offset of attribute i inside a vertex.
func (l Layout) Offset(i int) int {
	n := 0
	for _, a := range l[:i] {
		n += a.Components
	}
	return n
}

// Has reports whether the layout carries the given semantic.
func (l Layout) Has(s Semantic) bool {
	for _, a := range l {
		if a.Semantic == s {
			return true
		}
	}
	return false
}

// Common layouts.
var (
	// PositionColor is used by the terrain grid.
	PositionColor = Layout{{Position, 3}, {Color, 3}}

	// PositionUVColorNormal is used by spheres.
	PositionUVColorNormal = Layout{{Position, 3}, {TexCoord, 2}, {Color, 3}, {Normal, 3}}
)
