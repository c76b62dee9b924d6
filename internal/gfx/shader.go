// Package gfx wraps the OpenGL objects the viewer uses. Every type owns
// one GL name and must be released with Delete while its context is still
// current. Nothing here is safe for use from more than one goroutine.
package gfx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// ShaderKind is the pipeline stage a shader runs in.
type ShaderKind uint32

const (
	VertexShader   ShaderKind = gl.VERTEX_SHADER
	FragmentShader ShaderKind = gl.FRAGMENT_SHADER
	GeometryShader ShaderKind = gl.GEOMETRY_SHADER
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case GeometryShader:
		return "geometry"
	}
	return fmt.Sprintf("ShaderKind(%#x)", uint32(k))
}

// KindFromPath guesses the stage from a conventional file extension.
func KindFromPath(path string) (ShaderKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".vs", ".vsh":
		return VertexShader, true
	case ".frag", ".fs", ".fsh":
		return FragmentShader, true
	case ".geom", ".gs", ".gsh":
		return GeometryShader, true
	}
	return 0, false
}

// Shader is a single compiled shader stage.
type Shader struct {
	id   uint32
	kind ShaderKind
	log  string
}

// NewShader creates an empty shader object of the given kind.
func NewShader(kind ShaderKind) *Shader {
	return &Shader{id: gl.CreateShader(uint32(kind)), kind: kind}
}

func (s *Shader) ID() uint32       { return s.id }
func (s *Shader) Kind() ShaderKind { return s.kind }

// Log returns the info log of the last failed compile, or of a failed file
// read.
func (s *Shader) Log() string { return s.log }

// CompileFromSource compiles GLSL source and reports whether it succeeded.
// On failure Log holds the compiler output.
func (s *Shader) CompileFromSource(source string) bool {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s.id, 1, csources, nil)
	free()
	gl.CompileShader(s.id)

	var status int32
	gl.GetShaderiv(s.id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s.id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s.id, logLength, nil, gl.Str(log))
		s.log = trimLog(log)
		return false
	}
	s.log = ""
	return true
}

// CompileFromFile reads path and compiles its contents.
func (s *Shader) CompileFromFile(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		s.log = err.Error()
		return false
	}
	return s.CompileFromSource(string(src))
}

// Delete frees the GL shader object.
func (s *Shader) Delete() {
	if s.id != 0 {
		gl.DeleteShader(s.id)
		s.id = 0
	}
}

// trimLog strips the NUL padding GL leaves in info log buffers.
func trimLog(log string) string {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return strings.TrimSpace(log)
}
