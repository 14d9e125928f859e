package sdf

import (
	"errors"
	"runtime"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// restoreRuntime puts back the settings from TestMain.
func restoreRuntime(t *testing.T) {
	t.Cleanup(func() {
		Reset()
		Init(RuntimeConfig{Workers: 4})
	})
}

func TestNotInitialized(t *testing.T) {
	restoreRuntime(t)
	verts, indices := cubeMesh()
	ix := mustBuild(t, verts, indices)

	Reset()
	test.That(t, Initialized(), test.ShouldBeFalse)
	test.That(t, Workers(), test.ShouldEqual, 0)

	_, err := ix.Evaluate([]math.Vec3{{}}, 1, EvalOptions{})
	test.That(t, errors.Is(err, ErrNotInitialized), test.ShouldBeTrue)

	_, err = SignedDistanceField(verts, indices, []math.Vec3{{}}, Options{})
	test.That(t, errors.Is(err, ErrNotInitialized), test.ShouldBeTrue)

	// Building and single queries do not need the runtime.
	_, ok := ix.Query(math.Vec3{}, 1)
	test.That(t, ok, test.ShouldBeTrue)

	Init(RuntimeConfig{Workers: 2})
	out, err := ix.Evaluate([]math.Vec3{{}}, 1, EvalOptions{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.SDF[0], test.ShouldAlmostEqual, -0.5, 1e-5)
}

func TestInitIdempotent(t *testing.T) {
	restoreRuntime(t)
	logger := zap.NewNop()

	Reset()
	Init(RuntimeConfig{Workers: 3, Logger: logger})
	first := rt
	Init(RuntimeConfig{Workers: 3, Logger: logger})
	test.That(t, rt, test.ShouldEqual, first)

	Init(RuntimeConfig{Workers: 5, Logger: logger})
	test.That(t, rt, test.ShouldNotEqual, first)
	test.That(t, Workers(), test.ShouldEqual, 5)
}

func TestInitDefaultWorkers(t *testing.T) {
	restoreRuntime(t)

	Reset()
	Init(RuntimeConfig{})
	test.That(t, Initialized(), test.ShouldBeTrue)
	test.That(t, Workers(), test.ShouldEqual, runtime.NumCPU())

	Init(RuntimeConfig{Workers: -2})
	test.That(t, Workers(), test.ShouldEqual, runtime.NumCPU())
}
