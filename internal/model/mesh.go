package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

// Mesh is an indexed triangle mesh on the GPU, drawn with a shared program
// and an optional texture. The program and texture are borrowed; Delete
// frees only the mesh's own buffers.
type Mesh struct {
	program *gfx.Program
	texture *gfx.Texture

	va    *gfx.VertexArray
	vbo   *gfx.Buffer
	ebo   *gfx.Buffer
	count int32
}

// NewMesh uploads data. texture may be nil.
func NewMesh(data Data, program *gfx.Program, texture *gfx.Texture) *Mesh {
	m := &Mesh{
		program: program,
		texture: texture,
		va:      gfx.NewVertexArray(),
		vbo:     gfx.NewBuffer(gfx.ArrayBuffer),
		ebo:     gfx.NewBuffer(gfx.ElementBuffer),
		count:   int32(len(data.Indices)),
	}

	m.va.Bind()
	gfx.Upload(m.vbo, data.Vertices, gfx.StaticDraw)
	m.va.SetAttributes(vertexLayout...)
	gfx.Upload(m.ebo, data.Indices, gfx.StaticDraw)
	m.va.Release()
	return m
}

// Draw draws the mesh with the given model-view-projection matrix.
func (m *Mesh) Draw(mvp mgl32.Mat4) {
	m.program.Bind()
	m.program.SetMat4("mvp", mvp)
	m.program.SetBool("hasTexture", m.texture != nil)
	if m.texture != nil {
		m.texture.Bind(0)
		m.program.SetInt("texture0", 0)
	}

	m.va.Bind()
	gfx.DrawElements(gfx.Triangles, m.count)
	m.va.Release()

	if m.texture != nil {
		m.texture.Release()
	}
}

// Delete frees the mesh buffers.
func (m *Mesh) Delete() {
	m.va.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
