package meshio

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Faultbox/meshsdf/pkg/math"
	"github.com/Faultbox/meshsdf/pkg/sdf"
)

// WriteCSV writes one row per point: x,y,z,sdf, followed by hx,hy,hz when
// hit points were requested and tri,u,v,w when hit ids were requested.
func WriteCSV(w io.Writer, points []math.Vec3, out *sdf.Output) error {
	if len(points) != len(out.SDF) {
		return errors.Errorf("meshio: %d points but %d results", len(points), len(out.SDF))
	}

	bw := bufio.NewWriter(w)
	header := "x,y,z,sdf"
	if out.HitPoints != nil {
		header += ",hx,hy,hz"
	}
	if out.Hits != nil {
		header += ",tri,u,v,w"
	}
	if _, err := bw.WriteString(header + "\n"); err != nil {
		return err
	}

	row := make([]byte, 0, 160)
	for i, p := range points {
		row = appendFloats(row[:0], p.X, p.Y, p.Z, out.SDF[i])
		if out.HitPoints != nil {
			h := out.HitPoints[i]
			row = append(row, ',')
			row = appendFloats(row, h.X, h.Y, h.Z)
		}
		if out.Hits != nil {
			h := out.Hits[i]
			row = append(row, ',')
			row = strconv.AppendInt(row, int64(h.Triangle), 10)
			row = append(row, ',')
			row = appendFloats(row, h.Bary.X, h.Bary.Y, h.Bary.Z)
		}
		row = append(row, '\n')
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func appendFloats(b []byte, vals ...float32) []byte {
	for i, v := range vals {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendFloat(b, float64(v), 'g', -1, 32)
	}
	return b
}

// WriteBinary writes the SDF values as consecutive little-endian float32s.
func WriteBinary(w io.Writer, out *sdf.Output) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, out.SDF); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveCSV writes WriteCSV output to a file.
func SaveCSV(path string, points []math.Vec3, out *sdf.Output) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteCSV(w, points, out)
	})
}

// SaveBinary writes WriteBinary output to a file.
func SaveBinary(path string, out *sdf.Output) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteBinary(w, out)
	})
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return errors.Wrapf(write(f), "writing %s", path)
}
