package gfx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program with a uniform location cache.
type Program struct {
	id       uint32
	shaders  []*Shader
	log      string
	linked   bool
	uniforms map[string]int32
}

// NewProgram creates an empty program object.
func NewProgram() *Program {
	return &Program{id: gl.CreateProgram(), uniforms: make(map[string]int32)}
}

func (p *Program) ID() uint32   { return p.id }
func (p *Program) Linked() bool { return p.linked }
func (p *Program) Log() string  { return p.log }

// Attach adds a compiled shader. The program takes ownership and deletes
// its shaders after linking.
func (p *Program) Attach(s *Shader) {
	gl.AttachShader(p.id, s.id)
	p.shaders = append(p.shaders, s)
}

// Link links the attached shaders and reports whether it succeeded.
func (p *Program) Link() bool {
	gl.LinkProgram(p.id)

	var status int32
	gl.GetProgramiv(p.id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p.id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(p.id, logLength, nil, gl.Str(log))
		p.log = trimLog(log)
		p.linked = false
		return false
	}

	for _, s := range p.shaders {
		gl.DetachShader(p.id, s.id)
		s.Delete()
	}
	p.shaders = nil
	p.log = ""
	p.linked = true
	clear(p.uniforms)
	return true
}

func (p *Program) Bind()    { gl.UseProgram(p.id) }
func (p *Program) Release() { gl.UseProgram(0) }

// Uniform returns the location of the named uniform, or -1 if the program
// has no active uniform of that name.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform on the bound program.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Uniform(name), v)
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.Uniform(name), i)
}

// Delete frees the program and any shaders still attached to it.
func (p *Program) Delete() {
	for _, s := range p.shaders {
		s.Delete()
	}
	p.shaders = nil
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	p.linked = false
}

// Replace deletes p's program object and moves other into p, so that
// everything holding p draws with other from now on. other is left empty.
func (p *Program) Replace(other *Program) {
	if p == other {
		return
	}
	p.Delete()
	*p = *other
	*other = Program{}
}

// CompileError reports a shader stage that failed to compile or a program
// that failed to link. Log holds the GL info log.
type CompileError struct {
	Stage string
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to compile %s shader %s:\n%s", e.Stage, e.Path, e.Log)
	}
	return fmt.Sprintf("failed to %s:\n%s", e.Stage, e.Log)
}

// ErrNoShader is returned when a program is built without a vertex or
// fragment stage.
var ErrNoShader = errors.New("gfx: vertex and fragment shaders are required")

// Sources names the source of each shader stage. A stage is either a file
// path or inline GLSL; Geometry is optional.
type Sources struct {
	Vertex, Fragment, Geometry string

	// Inline means the fields hold GLSL source rather than file paths.
	Inline bool
}

// BuildProgram compiles and links the given stages into a new program.
// On error nothing is leaked.
func BuildProgram(src Sources) (*Program, error) {
	if src.Vertex == "" || src.Fragment == "" {
		return nil, ErrNoShader
	}
	stages := []struct {
		kind ShaderKind
		src  string
	}{
		{VertexShader, src.Vertex},
		{FragmentShader, src.Fragment},
		{GeometryShader, src.Geometry},
	}

	p := NewProgram()
	for _, st := range stages {
		if st.src == "" {
			continue
		}
		s := NewShader(st.kind)
		var ok bool
		if src.Inline {
			ok = s.CompileFromSource(st.src)
		} else {
			ok = s.CompileFromFile(st.src)
		}
		if !ok {
			err := &CompileError{Stage: st.kind.String(), Log: s.Log()}
			if !src.Inline {
				err.Path = st.src
			}
			s.Delete()
			p.Delete()
			return nil, err
		}
		p.Attach(s)
	}
	if !p.Link() {
		err := &CompileError{Stage: "link program", Log: p.Log()}
		p.Delete()
		return nil, err
	}
	return p, nil
}
