package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshsdf/internal/config"
	"github.com/Faultbox/meshsdf/internal/logger"
	"github.com/Faultbox/meshsdf/pkg/math"
	"github.com/Faultbox/meshsdf/pkg/meshio"
	"github.com/Faultbox/meshsdf/pkg/sdf"
)

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func cmdEval(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("eval", stderr)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Mesh.Path == "" || cfg.Points.Path == "" {
		fmt.Fprintln(stderr, "Usage: sdftool eval -mesh <file> -points <file> [options]")
		return errUsage
	}

	mesh, err := loadMesh(cfg.Mesh)
	if err != nil {
		return err
	}
	points, err := meshio.LoadPoints(cfg.Points.Path)
	if err != nil {
		return err
	}
	logger.Info("points loaded", zap.String("path", cfg.Points.Path), zap.Int("points", len(points)))

	return evaluateAndWrite(cfg, mesh, points, stdout, stderr)
}

func cmdGrid(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("grid", stderr)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Mesh.Path == "" {
		fmt.Fprintln(stderr, "Usage: sdftool grid -mesh <file> [-res N] [options]")
		return errUsage
	}

	mesh, err := loadMesh(cfg.Mesh)
	if err != nil {
		return err
	}

	box := meshio.GridBounds(mesh.Bounds(), cfg.Points.GridPadding)
	res := cfg.Points.GridResolution
	points := meshio.GridPoints(box.Min, box.Max, res)
	logger.Info("grid built",
		zap.Int("resolution", res),
		zap.Int("points", len(points)),
		zap.Any("min", box.Min),
		zap.Any("max", box.Max))

	return evaluateAndWrite(cfg, mesh, points, stdout, stderr)
}

func cmdInfo(args []string, stdout io.Writer) error {
	fs := newFlagSet("info", stdout)
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Mesh.Path == "" {
		fmt.Fprintln(stdout, "Usage: sdftool info -mesh <file>")
		return errUsage
	}

	mesh, err := loadMesh(cfg.Mesh)
	if err != nil {
		return err
	}

	opts, err := cfg.SDFOptions()
	if err != nil {
		return err
	}
	start := time.Now()
	ix, err := sdf.Build(mesh.Vertices, mesh.Indices,
		sdf.WithMaxLeafSize(opts.MaxLeafSize),
		sdf.WithSignMode(opts.SignMode),
		sdf.WithLogger(logger.Named("sdf")))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := ix.Stats()
	b := ix.Bounds()
	fmt.Fprintf(stdout, "Mesh:        %s\n", cfg.Mesh.Path)
	fmt.Fprintf(stdout, "Vertices:    %d\n", st.Vertices)
	fmt.Fprintf(stdout, "Triangles:   %d\n", st.Triangles)
	fmt.Fprintf(stdout, "Degenerate:  %d\n", st.DegenerateTriangles)
	fmt.Fprintf(stdout, "Open edges:  %d\n", st.OpenEdges)
	fmt.Fprintf(stdout, "Bounds:      (%g, %g, %g) - (%g, %g, %g)\n", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(stdout, "Area:        %g\n", surfaceArea(ix))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "BVH:")
	fmt.Fprintf(stdout, "  Nodes:     %d\n", st.Nodes)
	fmt.Fprintf(stdout, "  Leaves:    %d\n", st.Leaves)
	fmt.Fprintf(stdout, "  Depth:     %d\n", st.MaxDepth)
	fmt.Fprintf(stdout, "  Leaf size: %d\n", opts.MaxLeafSize)
	fmt.Fprintf(stdout, "  Sign mode: %s\n", ix.SignMode())
	fmt.Fprintf(stdout, "  Built in:  %v\n", elapsed.Round(time.Microsecond))
	if st.OpenEdges > 0 && ix.SignMode() != sdf.SignRayParity {
		fmt.Fprintln(stdout, "\nMesh is not closed; inside/outside may be unreliable near open edges.")
	}
	return nil
}

func cmdConfig(args []string, stdout io.Writer) error {
	fs := newFlagSet("config", stdout)
	write := fs.String("write", "", "Write the effective config to this path")
	save := fs.Bool("save", false, "Write the effective config to the user config dir")
	cfg, err := setup(fs, args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	switch {
	case *write != "":
		if err := cfg.SaveTo(*write); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Config written to %s\n", *write)
	case *save:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Config written to %s\n", path)
	default:
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}
	return nil
}

func loadMesh(mc config.MeshConfig) (*meshio.Mesh, error) {
	mesh, err := meshio.Load(mc.Path)
	if err != nil {
		return nil, err
	}
	if t := mc.Transform(); !t.IsIdentity() {
		mesh.Transform(t)
		logger.Debug("mesh placed",
			zap.Float32s("scale", mc.Scale[:]),
			zap.Float32s("rotate", mc.Rotate[:]),
			zap.Float32s("translate", mc.Translate[:]))
	}
	logger.Info("mesh loaded",
		zap.String("path", mc.Path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()))
	return mesh, nil
}

func evaluateAndWrite(cfg *config.Config, mesh *meshio.Mesh, points []math.Vec3, stdout, stderr io.Writer) error {
	opts, err := cfg.SDFOptions()
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := sdf.SignedDistanceField(mesh.Vertices, mesh.Indices, points, opts)
	if err != nil {
		return err
	}
	logger.Info("field evaluated",
		zap.Int("points", len(points)),
		zap.Int("misses", out.Misses),
		zap.Duration("elapsed", time.Since(start)))

	if err := writeOutput(cfg.Output, points, out, stdout); err != nil {
		return err
	}

	// Keep stdout clean when it carries the results.
	summaryOut := stdout
	if writesStdout(cfg.Output) {
		summaryOut = stderr
	}
	printSummary(summaryOut, summarize(out))
	return nil
}

// writesStdout reports whether results go to stdout rather than a file.
func writesStdout(oc config.OutputConfig) bool {
	return oc.Path == "" || oc.Path == "-"
}

func writeOutput(oc config.OutputConfig, points []math.Vec3, out *sdf.Output, stdout io.Writer) error {
	toStdout := writesStdout(oc)
	switch oc.Format {
	case config.FormatBinary:
		if toStdout {
			return meshio.WriteBinary(stdout, out)
		}
		return meshio.SaveBinary(oc.Path, out)
	default:
		if toStdout {
			return meshio.WriteCSV(stdout, points, out)
		}
		return meshio.SaveCSV(oc.Path, points, out)
	}
}
