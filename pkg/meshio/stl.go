package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	stdmath "math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshsdf/pkg/math"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50 // normal, 3 vertices, attribute byte count
)

// ReadSTL reads a binary or ASCII STL stream.
func ReadSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading STL")
	}
	return ParseSTL(data)
}

// ParseSTL parses binary or ASCII STL data. STL stores every triangle with
// its own copies of the corners; identical positions are welded into one
// vertex so adjacent triangles share indices.
func ParseSTL(data []byte) (*Mesh, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCIISTL(data)
	}
	if len(data) < stlHeaderSize+4 {
		return nil, errors.Wrapf(ErrInvalidSTL, "truncated: %d bytes", len(data))
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return nil, errors.Wrapf(ErrInvalidSTL, "header declares %d triangles but file has %d bytes", n, len(data))
}

// isBinarySTL reports whether the size matches the triangle count in the
// header. Some exporters write "solid" at the start of binary headers, so
// the size check takes precedence over the keyword.
func isBinarySTL(data []byte) bool {
	if len(data) < stlHeaderSize+4 {
		return false
	}
	n := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	return uint64(len(data)) == stlHeaderSize+4+uint64(n)*stlTriangleSize
}

func parseBinarySTL(data []byte) (*Mesh, error) {
	n := int(binary.LittleEndian.Uint32(data[stlHeaderSize:]))
	if n == 0 {
		return nil, errors.Wrap(ErrInvalidSTL, "no triangles")
	}

	w := newWelder(n)
	off := stlHeaderSize + 4
	for i := 0; i < n; i++ {
		rec := data[off : off+stlTriangleSize]
		for c := 0; c < 3; c++ {
			base := 12 + c*12 // skip the facet normal
			w.add(math.Vec3{
				X: readFloat32(rec[base:]),
				Y: readFloat32(rec[base+4:]),
				Z: readFloat32(rec[base+8:]),
			})
		}
		off += stlTriangleSize
	}
	return w.mesh(), nil
}

func readFloat32(b []byte) float32 {
	return stdmath.Float32frombits(binary.LittleEndian.Uint32(b))
}

func parseASCIISTL(data []byte) (*Mesh, error) {
	w := newWelder(0)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	corners := -1 // -1 outside a facet
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "facet":
			corners = 0
		case "vertex":
			if corners < 0 {
				return nil, errors.Wrapf(ErrInvalidSTL, "line %d: vertex outside facet", lineNo)
			}
			if len(fields) != 4 {
				return nil, errors.Wrapf(ErrInvalidSTL, "line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float32
			for i := range c {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, errors.Wrapf(ErrInvalidSTL, "line %d: bad coordinate %q", lineNo, fields[i+1])
				}
				c[i] = float32(f)
			}
			if corners == 3 {
				return nil, errors.Wrapf(ErrInvalidSTL, "line %d: facet has more than 3 vertices", lineNo)
			}
			w.add(math.Vec3{X: c[0], Y: c[1], Z: c[2]})
			corners++
		case "endfacet":
			if corners != 3 {
				return nil, errors.Wrapf(ErrInvalidSTL, "line %d: facet has %d vertices", lineNo, corners)
			}
			corners = -1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading STL")
	}
	if corners >= 0 {
		return nil, errors.Wrap(ErrInvalidSTL, "unterminated facet")
	}
	if len(w.indices) == 0 {
		return nil, errors.Wrap(ErrInvalidSTL, "no triangles")
	}
	return w.mesh(), nil
}

// welder assigns one index per distinct position.
type welder struct {
	seen     map[math.Vec3]int32
	vertices []math.Vec3
	indices  []int32
}

func newWelder(triangles int) *welder {
	return &welder{
		seen:    make(map[math.Vec3]int32, triangles/2),
		indices: make([]int32, 0, triangles*3),
	}
}

func (w *welder) add(v math.Vec3) {
	idx, ok := w.seen[v]
	if !ok {
		idx = int32(len(w.vertices))
		w.vertices = append(w.vertices, v)
		w.seen[v] = idx
	}
	w.indices = append(w.indices, idx)
}

func (w *welder) mesh() *Mesh {
	return &Mesh{Vertices: w.vertices, Indices: w.indices}
}
