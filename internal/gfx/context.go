package gfx

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderMode selects how polygons are rasterized.
type RenderMode uint32

const (
	Fill RenderMode = gl.FILL
	Line RenderMode = gl.LINE
)

// RenderModes lists the modes in the order the settings panel shows them.
var RenderModes = []RenderMode{Line, Fill}

func (m RenderMode) String() string {
	switch m {
	case Fill:
		return "Fill"
	case Line:
		return "Line"
	}
	return fmt.Sprintf("RenderMode(%#x)", uint32(m))
}

// Toggle returns the other mode.
func (m RenderMode) Toggle() RenderMode {
	if m == Line {
		return Fill
	}
	return Line
}

// ParseRenderMode parses "fill" or "line", ignoring case.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill":
		return Fill, nil
	case "line":
		return Line, nil
	}
	return Fill, fmt.Errorf("gfx: unknown render mode %q", s)
}

// Context issues the global state calls of the current OpenGL context.
type Context struct {
	version string
}

// Init loads the OpenGL function pointers for the current context and
// enables depth testing.
func Init() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	return &Context{version: gl.GoStr(gl.GetString(gl.VERSION))}, nil
}

// Version is the GL_VERSION string reported by the driver.
func (c *Context) Version() string { return c.version }

// Viewport maps the normalized device range onto a framebuffer of size.
func (c *Context) Viewport(size image.Point) {
	gl.Viewport(0, 0, int32(size.X), int32(size.Y))
}

// Clear clears the color and depth buffers with color.
func (c *Context) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// PolygonMode sets the rasterization mode of front and back faces.
func (c *Context) PolygonMode(m RenderMode) {
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(m))
}
