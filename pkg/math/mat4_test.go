package math

import (
	"math"
	"testing"
)

func near(a, b Vec3) bool {
	return a.Distance(b) < 1e-5
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should be true")
	}
	if Translate(Vec3{X: 1}).IsIdentity() {
		t.Error("translation reported as identity")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{X: 1, Y: 2, Z: 3}).Mul(Scale(Vec3{X: 2, Y: 2, Z: 2}))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I should equal M, got %v", got)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M should equal M, got %v", got)
	}
}

func TestApply(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}

	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"translate", Translate(Vec3{X: 10, Y: 20, Z: 30}), Vec3{X: 11, Y: 22, Z: 33}},
		{"scale", Scale(Vec3{X: 2, Y: 3, Z: -1}), Vec3{X: 2, Y: 6, Z: -3}},
		{"rotate z", RotateAxis(Vec3{Z: 1}, math.Pi/2), Vec3{X: -2, Y: 1, Z: 3}},
		{"rotate x", RotateAxis(Vec3{X: 2}, math.Pi/2), Vec3{X: 1, Y: -3, Z: 2}},
		{"scale then translate", Translate(Vec3{X: 1}).Mul(Scale(Vec3{X: 2, Y: 2, Z: 2})), Vec3{X: 3, Y: 4, Z: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Apply(p); !near(got, tt.want) {
				t.Errorf("Apply: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotateEuler(t *testing.T) {
	// 90 degrees around x then 90 around z: (0,1,0) -> (0,0,1) -> (0,0,1).
	m := RotateEuler(Vec3{X: math.Pi / 2, Z: math.Pi / 2})
	if got := m.Apply(Vec3{Y: 1}); !near(got, Vec3{Z: 1}) {
		t.Errorf("got %+v, want (0,0,1)", got)
	}
	// (1,0,0) -> (1,0,0) -> (0,1,0).
	if got := m.Apply(Vec3{X: 1}); !near(got, Vec3{Y: 1}) {
		t.Errorf("got %+v, want (0,1,0)", got)
	}
	if RotateAxis(Vec3{}, 1) != Identity() {
		t.Error("zero axis should give identity")
	}
}

func TestDet3(t *testing.T) {
	if d := Scale(Vec3{X: 2, Y: 3, Z: 4}).Det3(); d != 24 {
		t.Errorf("scale det: got %f, want 24", d)
	}
	if d := Scale(Vec3{X: -1, Y: 1, Z: 1}).Det3(); d >= 0 {
		t.Errorf("mirror det should be negative, got %f", d)
	}
	if d := RotateEuler(Vec3{X: 0.3, Y: 1.1, Z: -2}).Det3(); math.Abs(float64(d)-1) > 1e-5 {
		t.Errorf("rotation det: got %f, want 1", d)
	}
	if d := Translate(Vec3{X: 5}).Det3(); d != 1 {
		t.Errorf("translation det: got %f, want 1", d)
	}
}
