// Package model turns model files into GPU meshes: OBJ and glTF readers,
// vertex deduplication, texture loading, and the built-in line models.
package model

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

// Vertex is one interleaved mesh vertex. Vertices are compared by value,
// so equal vertices share an index after deduplication.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// LineVertex is one vertex of a line model.
type LineVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

var (
	vertexStride     = int32(unsafe.Sizeof(Vertex{}))
	lineVertexStride = int32(unsafe.Sizeof(LineVertex{}))
)

// vertexLayout is the attribute layout shaders see: location 0 position,
// 1 normal, 2 texture coordinate.
var vertexLayout = []gfx.Attribute{
	{Index: 0, Size: 3, Stride: vertexStride, Offset: int(unsafe.Offsetof(Vertex{}.Position))},
	{Index: 1, Size: 3, Stride: vertexStride, Offset: int(unsafe.Offsetof(Vertex{}.Normal))},
	{Index: 2, Size: 2, Stride: vertexStride, Offset: int(unsafe.Offsetof(Vertex{}.TexCoord))},
}

var lineVertexLayout = []gfx.Attribute{
	{Index: 0, Size: 3, Stride: lineVertexStride, Offset: int(unsafe.Offsetof(LineVertex{}.Position))},
	{Index: 1, Size: 4, Stride: lineVertexStride, Offset: int(unsafe.Offsetof(LineVertex{}.Color))},
}

// VertexMap collects vertices for indexed drawing, storing each distinct
// vertex once. The zero value is ready to use.
type VertexMap[V comparable] struct {
	index    map[V]uint32
	vertices []V
	indices  []uint32
}

// Insert appends v to the index list, adding it to the vertex list only if
// it has not been seen before.
func (m *VertexMap[V]) Insert(v V) {
	if m.index == nil {
		m.index = make(map[V]uint32)
	}
	if i, ok := m.index[v]; ok {
		m.indices = append(m.indices, i)
		return
	}
	i := uint32(len(m.vertices))
	m.index[v] = i
	m.vertices = append(m.vertices, v)
	m.indices = append(m.indices, i)
}

func (m *VertexMap[V]) Vertices() []V     { return m.vertices }
func (m *VertexMap[V]) Indices() []uint32 { return m.indices }

// Data is indexed vertex data ready for upload.
type Data struct {
	Vertices []Vertex
	Indices  []uint32
}

// Warnings are advisory messages from a reader. They never make a load fail.
type Warnings []string
