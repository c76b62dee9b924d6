package model

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

var (
	//go:embed shaders/line.vert
	lineVertexSource string

	//go:embed shaders/line.frag
	lineFragmentSource string
)

// LineSources returns the GLSL of the program line models are drawn with.
func LineSources() gfx.Sources {
	return gfx.Sources{Vertex: lineVertexSource, Fragment: lineFragmentSource, Inline: true}
}

var (
	Red   = mgl32.Vec4{1, 0, 0, 1}
	Green = mgl32.Vec4{0, 1, 0, 1}
	Blue  = mgl32.Vec4{0, 0, 1, 1}
	White = mgl32.Vec4{1, 1, 1, 1}
)

// LineModel is a set of colored line segments on the GPU.
type LineModel struct {
	program *gfx.Program
	va      *gfx.VertexArray
	vbo     *gfx.Buffer
	ebo     *gfx.Buffer
	count   int32
}

// NewLineModel uploads line segments; every two indices form one segment.
func NewLineModel(vertices []LineVertex, indices []uint32, program *gfx.Program) *LineModel {
	l := &LineModel{
		program: program,
		va:      gfx.NewVertexArray(),
		vbo:     gfx.NewBuffer(gfx.ArrayBuffer),
		ebo:     gfx.NewBuffer(gfx.ElementBuffer),
		count:   int32(len(indices)),
	}
	l.va.Bind()
	gfx.Upload(l.vbo, vertices, gfx.StaticDraw)
	l.va.SetAttributes(lineVertexLayout...)
	gfx.Upload(l.ebo, indices, gfx.StaticDraw)
	l.va.Release()
	return l
}

// NewAxis returns the world axes: red X, green Y and blue Z, each of
// length size.
func NewAxis(program *gfx.Program, size float32) *LineModel {
	v, i := Axis(size)
	return NewLineModel(v, i, program)
}

// NewSceneGrid returns a grid on the XY, XZ and YZ planes spanning size
// with divide cells per side.
func NewSceneGrid(program *gfx.Program, size, divide float32) *LineModel {
	v, i := SceneGrid(mgl32.Vec3{size, size, size}, mgl32.Vec3{divide, divide, divide}, White)
	return NewLineModel(v, i, program)
}

func (l *LineModel) Draw(mvp mgl32.Mat4) {
	l.program.Bind()
	l.program.SetMat4("mvp", mvp)
	l.va.Bind()
	gfx.DrawElements(gfx.Lines, l.count)
	l.va.Release()
}

func (l *LineModel) Delete() {
	l.va.Delete()
	l.vbo.Delete()
	l.ebo.Delete()
}

// Axis returns the vertices and indices of the three axis segments.
func Axis(size float32) ([]LineVertex, []uint32) {
	var origin mgl32.Vec3
	vertices := []LineVertex{
		{origin, Red}, {mgl32.Vec3{size, 0, 0}, Red},
		{origin, Green}, {mgl32.Vec3{0, size, 0}, Green},
		{origin, Blue}, {mgl32.Vec3{0, 0, size}, Blue},
	}
	return vertices, []uint32{0, 1, 2, 3, 4, 5}
}

// SceneGrid returns grid lines on the three coordinate planes through the
// origin. Each plane spans [0, size] on its axes with divide cells.
// Shared points are stored once.
func SceneGrid(size, divide mgl32.Vec3, color mgl32.Vec4) ([]LineVertex, []uint32) {
	x := slice(size.X(), divide.X())
	y := slice(size.Y(), divide.Y())
	z := slice(size.Z(), divide.Z())

	var m VertexMap[LineVertex]
	for _, p := range plane(x, y, size.X(), size.Y()) {
		m.Insert(LineVertex{mgl32.Vec3{p[0], p[1], 0}, color})
	}
	for _, p := range plane(x, z, size.X(), size.Z()) {
		m.Insert(LineVertex{mgl32.Vec3{p[0], 0, p[1]}, color})
	}
	for _, p := range plane(y, z, size.Y(), size.Z()) {
		m.Insert(LineVertex{mgl32.Vec3{0, p[0], p[1]}, color})
	}
	return m.Vertices(), m.Indices()
}

// plane returns segment end points for lines at each a (running along b)
// and each b (running along a).
func plane(a, b []float32, sizeA, sizeB float32) []mgl32.Vec2 {
	points := make([]mgl32.Vec2, 0, 2*(len(a)+len(b)))
	for _, i := range a {
		points = append(points, mgl32.Vec2{i, 0}, mgl32.Vec2{i, sizeB})
	}
	for _, i := range b {
		points = append(points, mgl32.Vec2{0, i}, mgl32.Vec2{sizeA, i})
	}
	return points
}

// slice returns divide+1 evenly spaced values from 0 to size.
func slice(size, divide float32) []float32 {
	if divide <= 0 {
		return []float32{0, size}
	}
	n := int(divide)
	unit := size / divide
	values := make([]float32, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, unit*float32(i))
	}
	return values
}
