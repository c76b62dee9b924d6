package overlay

import (
	_ "embed"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

var (
	//go:embed shaders/overlay.vert
	vertexSource string

	//go:embed shaders/overlay.frag
	fragmentSource string
)

// renderer draws imgui draw data with OpenGL 3+ core calls.
type renderer struct {
	program *gfx.Program
	va      *gfx.VertexArray
	vbo     *gfx.Buffer
	ebo     *gfx.Buffer
	font    *gfx.Texture
}

func newRenderer(io imgui.IO) (*renderer, error) {
	program, err := gfx.BuildProgram(gfx.Sources{Vertex: vertexSource, Fragment: fragmentSource, Inline: true})
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	r := &renderer{
		program: program,
		va:      gfx.NewVertexArray(),
		vbo:     gfx.NewBuffer(gfx.ArrayBuffer),
		ebo:     gfx.NewBuffer(gfx.ElementBuffer),
	}

	stride, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	r.va.Bind()
	r.vbo.Bind()
	r.va.SetAttributes(
		gfx.Attribute{Index: 0, Size: 2, Stride: int32(stride), Offset: posOffset},
		gfx.Attribute{Index: 1, Size: 2, Stride: int32(stride), Offset: uvOffset},
		gfx.Attribute{Index: 2, Size: 4, Stride: int32(stride), Offset: colOffset, Type: gfx.UnsignedByte, Normalized: true},
	)
	r.ebo.Bind()
	r.va.Release()

	atlas := io.Fonts().TextureDataRGBA32()
	pix := unsafe.Slice((*byte)(atlas.Pixels), atlas.Width*atlas.Height*4)
	r.font = gfx.NewTexture(&image.RGBA{
		Pix:    pix,
		Stride: atlas.Width * 4,
		Rect:   image.Rect(0, 0, atlas.Width, atlas.Height),
	})
	io.Fonts().SetTextureID(imgui.TextureID(r.font.ID()))
	return r, nil
}

// glState is the part of the GL state the renderer changes and restores.
type glState struct {
	polygonMode [2]int32
	blend       bool
	cullFace    bool
	depthTest   bool
	scissorTest bool
}

func saveState() glState {
	var s glState
	gl.GetIntegerv(gl.POLYGON_MODE, &s.polygonMode[0])
	s.blend = gl.IsEnabled(gl.BLEND)
	s.cullFace = gl.IsEnabled(gl.CULL_FACE)
	s.depthTest = gl.IsEnabled(gl.DEPTH_TEST)
	s.scissorTest = gl.IsEnabled(gl.SCISSOR_TEST)
	return s
}

func (s glState) restore() {
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(s.polygonMode[0]))
	toggle(gl.BLEND, s.blend)
	toggle(gl.CULL_FACE, s.cullFace)
	toggle(gl.DEPTH_TEST, s.depthTest)
	toggle(gl.SCISSOR_TEST, s.scissorTest)
}

func toggle(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// render draws data. display is the window size in screen coordinates and
// framebuffer its size in pixels; nothing is drawn while either is empty.
func (r *renderer) render(display, framebuffer image.Point, data imgui.DrawData) {
	if display.X <= 0 || display.Y <= 0 || framebuffer.X <= 0 || framebuffer.Y <= 0 {
		return
	}
	data.ScaleClipRects(imgui.Vec2{
		X: float32(framebuffer.X) / float32(display.X),
		Y: float32(framebuffer.Y) / float32(display.Y),
	})

	saved := saveState()
	defer saved.restore()

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Viewport(0, 0, int32(framebuffer.X), int32(framebuffer.Y))

	r.program.Bind()
	r.program.SetInt("atlas", 0)
	r.program.SetMat4("projection", mgl32.Ortho(0, float32(display.X), float32(display.Y), 0, -1, 1))
	gl.ActiveTexture(gl.TEXTURE0)

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	r.va.Bind()
	for _, list := range data.CommandLists() {
		vertices, vertexBytes := list.VertexBuffer()
		r.vbo.UploadRaw(vertices, vertexBytes, gfx.StreamDraw)
		indices, indexBytes := list.IndexBuffer()
		r.ebo.UploadRaw(indices, indexBytes, gfx.StreamDraw)

		offset := 0
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
			} else {
				clip := cmd.ClipRect()
				gl.Scissor(int32(clip.X), int32(framebuffer.Y)-int32(clip.W), int32(clip.Z-clip.X), int32(clip.W-clip.Y))
				gl.BindTexture(gl.TEXTURE_2D, uint32(cmd.TextureID()))
				gl.DrawElements(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, gl.PtrOffset(offset))
			}
			offset += cmd.ElementCount() * indexSize
		}
	}
	r.va.Release()
	r.program.Release()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *renderer) delete() {
	r.va.Delete()
	r.vbo.Delete()
	r.ebo.Delete()
	r.font.Delete()
	r.program.Delete()
}
