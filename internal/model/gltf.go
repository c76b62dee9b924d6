package model

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ReadGLTF reads every triangle primitive of a glTF or GLB file into one
// indexed vertex set. Node transforms are not applied.
func ReadGLTF(path string) (Data, Warnings, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Data{}, nil, fmt.Errorf("could not open glTF file %s: %w", path, err)
	}
	data, warnings, err := readDocument(doc)
	if err != nil {
		return data, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return data, warnings, nil
}

func readDocument(doc *gltf.Document) (Data, Warnings, error) {
	var (
		m        VertexMap[Vertex]
		warnings Warnings
	)
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				warnings = append(warnings, fmt.Sprintf("mesh %d primitive %d: mode %v skipped", mi, pi, prim.Mode))
				continue
			}
			verts, err := primitiveVertices(doc, prim)
			if err != nil {
				return Data{}, warnings, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return Data{}, warnings, fmt.Errorf("mesh %d primitive %d: indices: %w", mi, pi, err)
				}
			} else {
				indices = make([]uint32, len(verts))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}
			if len(indices)%3 != 0 {
				warnings = append(warnings, fmt.Sprintf("mesh %d primitive %d: %d indices is not a whole number of triangles", mi, pi, len(indices)))
				indices = indices[:len(indices)-len(indices)%3]
			}
			for _, i := range indices {
				if int(i) >= len(verts) {
					return Data{}, warnings, fmt.Errorf("mesh %d primitive %d: index %d out of range", mi, pi, i)
				}
				m.Insert(verts[i])
			}
		}
	}
	if len(m.Indices()) == 0 {
		warnings = append(warnings, "model has no triangles")
	}
	return Data{Vertices: m.Vertices(), Indices: m.Indices()}, warnings, nil
}

func primitiveVertices(doc *gltf.Document, prim *gltf.Primitive) ([]Vertex, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no %s attribute", gltf.POSITION)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	verts := make([]Vertex, len(positions))
	for i, p := range positions {
		verts[i].Position = mgl32.Vec3(p)
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		for i := 0; i < min(len(normals), len(verts)); i++ {
			verts[i].Normal = mgl32.Vec3(normals[i])
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("texture coordinates: %w", err)
		}
		// glTF puts the UV origin at the top left.
		for i := 0; i < min(len(uvs), len(verts)); i++ {
			verts[i].TexCoord = mgl32.Vec2{uvs[i][0], 1 - uvs[i][1]}
		}
	}
	return verts, nil
}
