package meshio

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// ErrInvalidPoints is returned for malformed query point files.
var ErrInvalidPoints = errors.New("invalid point data")

// ReadPoints reads one point per line as three numbers separated by commas
// or whitespace. Blank lines and lines starting with # are skipped.
func ReadPoints(r io.Reader) ([]math.Vec3, error) {
	var points []math.Vec3

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) != 3 {
			return nil, errors.Wrapf(ErrInvalidPoints, "line %d: expected 3 values, found %d", lineNo, len(fields))
		}
		var c [3]float32
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, errors.Wrapf(ErrInvalidPoints, "line %d: bad value %q", lineNo, f)
			}
			c[i] = float32(v)
		}
		points = append(points, math.Vec3{X: c[0], Y: c[1], Z: c[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	return points, nil
}

// LoadPoints reads a point file from disk.
func LoadPoints(path string) ([]math.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening points file")
	}
	defer f.Close()

	points, err := ReadPoints(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return points, nil
}

// GridPoints returns res^3 samples spanning [lo, hi] on each axis, with
// x varying fastest, then y, then z. A resolution of 1 yields the center.
func GridPoints(lo, hi math.Vec3, res int) []math.Vec3 {
	if res < 1 {
		return nil
	}
	if res == 1 {
		return []math.Vec3{lo.Add(hi).Scale(0.5)}
	}

	step := hi.Sub(lo).Scale(1 / float32(res-1))
	points := make([]math.Vec3, 0, res*res*res)
	for k := 0; k < res; k++ {
		z := lo.Z + step.Z*float32(k)
		for j := 0; j < res; j++ {
			y := lo.Y + step.Y*float32(j)
			for i := 0; i < res; i++ {
				points = append(points, math.Vec3{X: lo.X + step.X*float32(i), Y: y, Z: z})
			}
		}
	}
	return points
}

// GridBounds pads box by frac of its longest side on every axis.
func GridBounds(box math.Box, frac float32) math.Box {
	size := box.Size()
	return box.Pad(size.Axis(box.LongestAxis()) * frac)
}
