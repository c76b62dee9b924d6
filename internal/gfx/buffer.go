package gfx

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// BufferTarget is the binding point of a buffer.
type BufferTarget uint32

const (
	ArrayBuffer   BufferTarget = gl.ARRAY_BUFFER
	ElementBuffer BufferTarget = gl.ELEMENT_ARRAY_BUFFER
)

// Usage hints how a buffer's data store will be accessed.
type Usage uint32

const (
	StaticDraw  Usage = gl.STATIC_DRAW
	DynamicDraw Usage = gl.DYNAMIC_DRAW
	StreamDraw  Usage = gl.STREAM_DRAW
)

// Buffer is a GL buffer object bound to a fixed target.
type Buffer struct {
	id     uint32
	target BufferTarget
}

// NewBuffer generates a buffer for target.
func NewBuffer(target BufferTarget) *Buffer {
	b := &Buffer{target: target}
	gl.GenBuffers(1, &b.id)
	return b
}

func (b *Buffer) ID() uint32 { return b.id }

func (b *Buffer) Bind()    { gl.BindBuffer(uint32(b.target), b.id) }
func (b *Buffer) Release() { gl.BindBuffer(uint32(b.target), 0) }

// Upload binds the buffer and replaces its data store with data.
func Upload[T any](b *Buffer, data []T, usage Usage) {
	b.Bind()
	if len(data) == 0 {
		gl.BufferData(uint32(b.target), 0, nil, uint32(usage))
		return
	}
	size := len(data) * int(unsafe.Sizeof(data[0]))
	gl.BufferData(uint32(b.target), size, gl.Ptr(data), uint32(usage))
}

// UploadRaw binds the buffer and replaces its data store with size bytes
// read from data, which is memory owned by C code.
func (b *Buffer) UploadRaw(data unsafe.Pointer, size int, usage Usage) {
	b.Bind()
	gl.BufferData(uint32(b.target), size, data, uint32(usage))
}

// Delete frees the buffer.
func (b *Buffer) Delete() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
