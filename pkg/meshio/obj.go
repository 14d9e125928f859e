package meshio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// ReadOBJ parses vertex and face records from a Wavefront OBJ stream.
// Polygons are split into triangle fans around their first vertex. Face
// tokens may be v, v/vt, v//vn or v/vt/vn, with 1-based or negative
// (relative) vertex references. Other records are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		tokens := strings.Fields(line)
		switch tokens[0] {
		case "v":
			v, err := parseOBJVertex(tokens[1:])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			if len(tokens) < 4 {
				return nil, errors.Wrapf(ErrInvalidOBJ, "line %d: face needs at least 3 vertices, found %d", lineNo, len(tokens)-1)
			}
			face := make([]int32, 0, len(tokens)-1)
			for _, tok := range tokens[1:] {
				idx, err := parseOBJIndex(tok, len(m.Vertices))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				face = append(face, idx)
			}
			for j := 1; j+1 < len(face); j++ {
				m.Indices = append(m.Indices, face[0], face[j], face[j+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading OBJ")
	}

	// Forward references are legal in OBJ, so the range check waits until
	// every vertex has been read.
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return nil, errors.Wrapf(ErrInvalidOBJ, "face index %d refers to vertex %d of %d", i, idx+1, len(m.Vertices))
		}
	}
	if len(m.Indices) == 0 {
		return nil, errors.Wrap(ErrInvalidOBJ, "no faces")
	}
	return m, nil
}

func parseOBJVertex(fields []string) (math.Vec3, error) {
	// x y z [w]
	if len(fields) < 3 || len(fields) > 4 {
		return math.Vec3{}, errors.Wrapf(ErrInvalidOBJ, "vertex needs 3 coordinates, found %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, errors.Wrapf(ErrInvalidOBJ, "bad coordinate %q", fields[i])
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseOBJIndex converts a face token to a 0-based vertex index. count is
// the number of vertices read so far, used for negative references.
func parseOBJIndex(tok string, count int) (int32, error) {
	ref, _, _ := strings.Cut(tok, "/")
	n, err := strconv.ParseInt(ref, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidOBJ, "bad face vertex %q", tok)
	}
	switch {
	case n > 0:
		return int32(n - 1), nil
	case n < 0 && int(-n) <= count:
		return int32(count + int(n)), nil
	default:
		return 0, errors.Wrapf(ErrInvalidOBJ, "face vertex %q out of range", tok)
	}
}
