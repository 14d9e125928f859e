// Package meshio reads triangle meshes and query points from disk and
// writes distance field results.
package meshio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// Mesh errors.
var (
	ErrInvalidOBJ        = errors.New("invalid OBJ data")
	ErrInvalidSTL        = errors.New("invalid STL data")
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
)

// Mesh is an indexed triangle list. Indices holds three entries per
// triangle.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []int32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the box around all vertices.
func (m *Mesh) Bounds() math.Box {
	b := math.EmptyBox()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Transform moves every vertex by t. Mirroring transforms also reverse
// the triangle winding so outward faces stay outward.
func (m *Mesh) Transform(t math.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.Apply(v)
	}
	if t.Det3() < 0 {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
	}
}

// Load reads a mesh, choosing the parser from the file extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".stl":
		return LoadSTL(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// LoadOBJ reads a Wavefront OBJ file from disk.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening OBJ file")
	}
	defer f.Close()

	m, err := ReadOBJ(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

// LoadSTL reads a binary or ASCII STL file from disk.
func LoadSTL(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading STL file")
	}

	m, err := ParseSTL(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}
