package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sheenobu/go-obj/obj"
)

// ErrFaceIndex is returned for a face that refers to an element that is
// not defined before it.
var ErrFaceIndex = errors.New("face index out of range")

// maxOBJLine bounds the length of one OBJ line.
const maxOBJLine = 1 << 20

// ReadOBJ parses a Wavefront OBJ stream. Polygons are fanned into
// triangles; faces with fewer than three points are skipped with a
// warning. Missing normals or texture coordinates are left zero.
func ReadOBJ(r io.Reader) (Data, Warnings, error) {
	src, err := normalizeOBJ(r)
	if err != nil {
		return Data{}, nil, fmt.Errorf("failed to parse OBJ: %w", err)
	}
	o, err := parseOBJ(src)
	if err != nil {
		return Data{}, nil, fmt.Errorf("failed to parse OBJ: %w", err)
	}

	var (
		m        VertexMap[Vertex]
		warnings Warnings
		noNormal bool
		noUV     bool
	)
	for fi, face := range o.Faces {
		if len(face.Points) < 3 {
			warnings = append(warnings, fmt.Sprintf("face %d has %d points, skipped", fi+1, len(face.Points)))
			continue
		}
		verts := make([]Vertex, len(face.Points))
		for i, p := range face.Points {
			if p == nil || p.Vertex == nil {
				return Data{}, warnings, fmt.Errorf("face %d: point %d has no position", fi+1, i+1)
			}
			v := Vertex{Position: mgl32.Vec3{float32(p.Vertex.X), float32(p.Vertex.Y), float32(p.Vertex.Z)}}
			if p.Normal != nil {
				v.Normal = mgl32.Vec3{float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z)}
			} else {
				noNormal = true
			}
			if p.Texture != nil {
				v.TexCoord = mgl32.Vec2{float32(p.Texture.U), float32(p.Texture.V)}
			} else {
				noUV = true
			}
			verts[i] = v
		}
		for i := 1; i+1 < len(verts); i++ {
			m.Insert(verts[0])
			m.Insert(verts[i])
			m.Insert(verts[i+1])
		}
	}
	if noNormal {
		warnings = append(warnings, "some vertices have no normal")
	}
	if noUV {
		warnings = append(warnings, "some vertices have no texture coordinate")
	}
	if len(m.Indices()) == 0 {
		warnings = append(warnings, "model has no faces")
	}
	return Data{Vertices: m.Vertices(), Indices: m.Indices()}, warnings, nil
}

func parseOBJ(src string) (o *obj.Object, err error) {
	defer func() {
		if v := recover(); v != nil {
			o, err = nil, fmt.Errorf("malformed OBJ: %v", v)
		}
	}()
	return obj.NewReader(strings.NewReader(src)).Read()
}

// normalizeOBJ rewrites r into the strict form the obj reader accepts:
// one space between tokens, "\n" line ends, at most three coordinates per
// vertex and absolute face indices checked against the elements defined
// so far. Comments and blank lines become empty lines so that line
// numbers in later errors still match the input.
func normalizeOBJ(r io.Reader) (string, error) {
	var (
		b      strings.Builder
		counts [3]int // v, vt, vn
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			b.WriteByte('\n')
			continue
		}
		switch fields[0] {
		case "v":
			counts[0]++
			fields = fields[:min(len(fields), 4)]
		case "vt":
			counts[1]++
			fields = fields[:min(len(fields), 4)]
		case "vn":
			counts[2]++
		case "o":
			if len(fields) == 1 {
				b.WriteByte('\n')
				continue
			}
		case "f":
			for i, p := range fields[1:] {
				abs, err := resolvePoint(p, counts)
				if err != nil {
					return "", fmt.Errorf("error at line %d: %w", line, err)
				}
				fields[i+1] = abs
			}
		}
		b.WriteString(strings.Join(fields, " "))
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// resolvePoint turns a face point such as "3/-1/2" into absolute indices,
// given how many vertices, texture coordinates and normals precede it.
func resolvePoint(p string, counts [3]int) (string, error) {
	parts := strings.Split(p, "/")
	if len(parts) > 3 || parts[0] == "" {
		return "", fmt.Errorf("malformed face point %q", p)
	}
	for i, s := range parts {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", fmt.Errorf("malformed face point %q: %w", p, err)
		}
		if n < 0 {
			n += counts[i] + 1
		}
		if n < 1 || n > counts[i] {
			return "", fmt.Errorf("%w: %q, %d defined", ErrFaceIndex, p, counts[i])
		}
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "/"), nil
}

// ReadOBJFile opens path and parses it with ReadOBJ.
func ReadOBJFile(path string) (Data, Warnings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, nil, fmt.Errorf("could not open OBJ file %s: %w", path, err)
	}
	defer f.Close()

	data, warnings, err := ReadOBJ(f)
	if err != nil {
		return data, warnings, fmt.Errorf("%s: %w", path, err)
	}
	return data, warnings, nil
}
