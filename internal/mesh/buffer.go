package mesh

import "fmt"

// Buffer is an interleaved vertex buffer with triangle indices, ready for upload.
type Buffer struct {
	Layout   Layout
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices in the buffer.
func (b *Buffer) VertexCount() int {
	stride := b.Layout.Stride()
	if stride == 0 {
		return 0
	}
	return len(b.Vertices) / stride
}

// Validate checks that the vertex data matches the layout and every index
// references an existing vertex.
func (b *Buffer) Validate() error {
	stride := b.Layout.Stride()
	if stride == 0 {
		return fmt.Errorf("empty layout")
	}
	if len(b.Vertices)%stride != 0 {
		return fmt.Errorf("vertex data length %d is not a multiple of stride %d", len(b.Vertices), stride)
	}
	if len(b.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(b.Indices))
	}
	n := uint32(len(b.Vertices) / stride)
	for i, idx := range b.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at %d out of range [0, %d)", idx, i, n)
		}
	}
	return nil
}
