package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Faultbox/meshsdf/pkg/sdf"
)

const tetraOBJ = `# tetrahedron with outward faces
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 3 2
f 1 2 4
f 1 4 3
f 2 3 4
`

// writeInputs creates a mesh and points file in a temp dir.
func writeInputs(t *testing.T) (dir, mesh, points string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir = t.TempDir()
	mesh = filepath.Join(dir, "tetra.obj")
	points = filepath.Join(dir, "points.txt")
	if err := os.WriteFile(mesh, []byte(tetraOBJ), 0644); err != nil {
		t.Fatalf("failed to write mesh: %v", err)
	}
	if err := os.WriteFile(points, []byte("0.1 0.1 0.1\n2 0 0\n0,0,-3\n"), 0644); err != nil {
		t.Fatalf("failed to write points: %v", err)
	}
	return dir, mesh, points
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	if err := run(nil, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error with no args, got %v", err)
	}
	if err := run([]string{"bake"}, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error for unknown command, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bake") {
		t.Errorf("missing unknown command message in %q", stderr.String())
	}

	stdout.Reset()
	if err := run([]string{"help"}, &stdout, &stderr); err != nil {
		t.Errorf("help failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "sdftool <command>") {
		t.Errorf("help output missing usage: %q", stdout.String())
	}
}

func TestEval(t *testing.T) {
	dir, mesh, points := writeInputs(t)
	outPath := filepath.Join(dir, "field.csv")

	var stdout, stderr bytes.Buffer
	err := run([]string{"eval", "-mesh", mesh, "-points", points, "-out", outPath, "-max-dist", "2.5"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "x,y,z,sdf" {
		t.Errorf("unexpected header %q", lines[0])
	}
	fields := strings.Split(lines[1], ",")
	d, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || d > -0.0999 || d < -0.1001 {
		t.Errorf("expected -0.1 inside the tetrahedron, got %q", lines[1])
	}
	if lines[3] != "0,0,-3,2.5" {
		t.Errorf("expected the sentinel beyond max dist, got %q", lines[3])
	}

	summary := stdout.String()
	for _, want := range []string{"Points:  3", "Inside:  1", "Misses:  1"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q: %s", want, summary)
		}
	}
}

func TestEvalToStdout(t *testing.T) {
	_, mesh, points := writeInputs(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"eval", "-mesh", mesh, "-points", points, "-sign", "parity"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "x,y,z,sdf\n") {
		t.Errorf("expected CSV on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "Points:") {
		t.Error("summary should not be mixed into stdout results")
	}
	if !strings.Contains(stderr.String(), "Inside:  1") {
		t.Errorf("expected summary on stderr, got %q", stderr.String())
	}
}

func TestEvalEmptyOutputPath(t *testing.T) {
	dir, mesh, points := writeInputs(t)
	cfgPath := filepath.Join(dir, "sdftool.yaml")
	if err := os.WriteFile(cfgPath, []byte("output:\n  path: \"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{"eval", "-config", cfgPath, "-mesh", mesh, "-points", points}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "x,y,z,sdf\n") {
		t.Errorf("expected CSV on stdout, got %q", stdout.String())
	}
	if strings.Contains(stdout.String(), "Points:") {
		t.Errorf("summary mixed into stdout results: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Points:") {
		t.Errorf("expected summary on stderr, got %q", stderr.String())
	}
}

func TestEvalMissingInputs(t *testing.T) {
	_, mesh, _ := writeInputs(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"eval", "-mesh", mesh}, &stdout, &stderr); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error without points, got %v", err)
	}
	if err := run([]string{"eval", "-mesh", mesh + ".stl", "-points", mesh}, &stdout, &stderr); err == nil {
		t.Error("expected error for missing mesh")
	}
	if err := run([]string{"eval", "-sign", "winding", "-mesh", mesh}, &stdout, &stderr); err == nil {
		t.Error("expected config error for bad sign mode")
	}
}

func TestGridBinary(t *testing.T) {
	dir, mesh, _ := writeInputs(t)
	outPath := filepath.Join(dir, "tetra.sdf")

	var stdout, stderr bytes.Buffer
	err := run([]string{"grid", "-mesh", mesh, "-res", "4", "-format", "bin", "-out", outPath, "-workers", "2"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	if info.Size() != 4*4*4*4 {
		t.Errorf("expected %d bytes, got %d", 4*4*4*4, info.Size())
	}
	if sdf.Workers() != 2 {
		t.Errorf("expected runtime with 2 workers, got %d", sdf.Workers())
	}
	if !strings.Contains(stdout.String(), "Points:  64") {
		t.Errorf("unexpected summary %q", stdout.String())
	}
}

func TestInfo(t *testing.T) {
	_, mesh, _ := writeInputs(t)

	var stdout, stderr bytes.Buffer
	if err := run([]string{"info", "-mesh", mesh}, &stdout, &stderr); err != nil {
		t.Fatalf("info failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Vertices:    4", "Triangles:   4", "Open edges:  0", "Sign mode: pseudo-normal"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "not closed") {
		t.Error("closed mesh reported as open")
	}
}

func TestConfigWrite(t *testing.T) {
	dir, mesh, _ := writeInputs(t)
	path := filepath.Join(dir, "saved.yaml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"config", "-mesh", mesh, "-write", path}, &stdout, &stderr); err != nil {
		t.Fatalf("config failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), mesh) {
		t.Errorf("saved config missing mesh path:\n%s", data)
	}

	stdout.Reset()
	if err := run([]string{"config", "-config", path}, &stdout, &stderr); err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "sign_mode: pseudo-normal") {
		t.Errorf("unexpected config output:\n%s", stdout.String())
	}
}

func TestSummarize(t *testing.T) {
	s := summarize(&sdf.Output{SDF: []float32{-1, 0, 2, 3}, Misses: 1})

	if s.Points != 4 || s.Inside != 1 || s.Misses != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.Min != -1 || s.Max != 3 {
		t.Errorf("unexpected range %v..%v", s.Min, s.Max)
	}
	if s.Mean != 1 {
		t.Errorf("expected mean 1, got %v", s.Mean)
	}
	if s.Median != 0 {
		t.Errorf("expected empirical median 0, got %v", s.Median)
	}

	single := summarize(&sdf.Output{SDF: []float32{5}})
	if single.Mean != 5 || single.StdDev != 0 {
		t.Errorf("unexpected single value summary %+v", single)
	}
}

func TestEvalPlacedMesh(t *testing.T) {
	dir, mesh, points := writeInputs(t)
	cfgPath := filepath.Join(dir, "sdftool.yaml")
	cfgData := "mesh:\n  path: " + mesh + "\n  translate: [10, 0, 0]\nquery:\n  include_hit_ids: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfgData), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if err := run([]string{"eval", "-config", cfgPath, "-points", points}, &stdout, &stderr); err != nil {
		t.Fatalf("eval failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if lines[0] != "x,y,z,sdf,hx,hy,hz,tri,u,v,w" {
		t.Errorf("unexpected header %q", lines[0])
	}
	// (2,0,0) is now 8 away from the moved corner at (10,0,0).
	if !strings.HasPrefix(lines[2], "2,0,0,8,10,0,0,") {
		t.Errorf("unexpected row %q", lines[2])
	}
	if !strings.Contains(stderr.String(), "Inside:  0") {
		t.Errorf("expected no inside points after moving the mesh: %q", stderr.String())
	}
}
