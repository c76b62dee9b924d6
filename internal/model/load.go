package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/3Ution-BK/ModelViewer/internal/gfx"
)

// ErrUnsupportedFormat is returned for model files of unknown type.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Read reads the model at path, choosing the reader by file extension.
func Read(path string) (Data, Warnings, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return ReadOBJFile(path)
	case ".gltf", ".glb":
		return ReadGLTF(path)
	default:
		return Data{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadMesh reads the model at path and uploads it as a mesh drawn with
// program and texture, which may be nil. On error the mesh is nil; the
// warnings are returned either way.
func LoadMesh(path string, program *gfx.Program, texture *gfx.Texture) (*Mesh, Warnings, error) {
	data, warnings, err := Read(path)
	if err != nil {
		return nil, warnings, err
	}
	if len(data.Indices) == 0 {
		return nil, warnings, fmt.Errorf("%s: nothing to draw", path)
	}
	return NewMesh(data, program, texture), warnings, nil
}
