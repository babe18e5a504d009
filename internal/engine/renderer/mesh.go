package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/internal/mesh"
	smath "github.com/Faultbox/glscene/pkg/math"
)

const floatSize = 4

// Mesh is a buffer uploaded to the GPU.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	hasNormal     bool

	instanceVBO uint32
	instanceCap int
}

// Upload validates b and copies it into a new VAO. Attribute locations come
// from the layout semantics.
func Upload(b mesh.Buffer) (*Mesh, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	if len(b.Indices) == 0 {
		return nil, fmt.Errorf("upload: no indices")
	}

	m := &Mesh{
		indexCount: int32(len(b.Indices)),
		hasNormal:  b.Layout.Has(mesh.Normal),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.Vertices)*floatSize, gl.Ptr(b.Vertices), gl.STATIC_DRAW)

	stride := int32(b.Layout.Stride() * floatSize)
	for i, a := range b.Layout {
		loc := uint32(a.Semantic)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, int32(a.Components), gl.FLOAT, false, stride,
			gl.PtrOffset(b.Layout.Offset(i)*floatSize))
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(b.Indices)*4, gl.Ptr(b.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", b.VertexCount()),
		zap.Int("indices", len(b.Indices)),
	)
	return m, nil
}

// uploadInstances streams per-instance model matrices into locations 6..9,
// growing the buffer when needed.
func (m *Mesh) uploadInstances(models []smath.Mat4) {
	const stride = int32(16 * floatSize)

	if m.instanceVBO == 0 {
		gl.GenBuffers(1, &m.instanceVBO)
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
		base := uint32(mesh.InstanceMatrix)
		for i := uint32(0); i < 4; i++ {
			gl.EnableVertexAttribArray(base + i)
			gl.VertexAttribPointer(base+i, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(i)*4*floatSize))
			gl.VertexAttribDivisor(base+i, 1)
		}
		gl.BindVertexArray(0)
	}

	data := smath.FlattenMat4(models)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	if len(models) > m.instanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.DYNAMIC_DRAW)
		m.instanceCap = len(models)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*floatSize, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Release frees the GPU buffers. The mesh must not be drawn afterwards.
func (m *Mesh) Release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	for _, b := range []*uint32{&m.vbo, &m.ebo, &m.instanceVBO} {
		if *b != 0 {
			gl.DeleteBuffers(1, b)
			*b = 0
		}
	}
}
