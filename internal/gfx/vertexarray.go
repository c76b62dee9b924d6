package gfx

import (
	"github.com/go-gl/gl/v4.3-core/gl"
)

// Attribute describes one vertex attribute inside an interleaved vertex.
// Offset and Stride are in bytes. A zero Type means float components.
type Attribute struct {
	Index  uint32
	Size   int32
	Stride int32
	Offset int

	Type       uint32
	Normalized bool
}

// UnsignedByte is the component type of packed 8-bit colors.
const UnsignedByte uint32 = gl.UNSIGNED_BYTE

// VertexArray records the attribute layout and the element buffer used
// to draw a mesh.
type VertexArray struct {
	id uint32
}

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

func (va *VertexArray) ID() uint32 { return va.id }

func (va *VertexArray) Bind()    { gl.BindVertexArray(va.id) }
func (va *VertexArray) Release() { gl.BindVertexArray(0) }

// SetAttributes enables and describes attrs. The vertex array and the
// array buffer holding the data must be bound.
func (va *VertexArray) SetAttributes(attrs ...Attribute) {
	for _, a := range attrs {
		typ := a.Type
		if typ == 0 {
			typ = gl.FLOAT
		}
		gl.VertexAttribPointer(a.Index, a.Size, typ, a.Normalized, a.Stride, gl.PtrOffset(a.Offset))
		gl.EnableVertexAttribArray(a.Index)
	}
}

// Primitive is the kind of primitive a draw call assembles.
type Primitive uint32

const (
	Triangles Primitive = gl.TRIANGLES
	Lines     Primitive = gl.LINES
)

// DrawElements draws count uint32 indices from the bound element buffer.
func DrawElements(mode Primitive, count int32) {
	gl.DrawElements(uint32(mode), count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (va *VertexArray) Delete() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}
