package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{3, 4, 5}
	got := a.Add(b)
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
	if v.Length2() != 49 {
		t.Errorf("Vec3.Length2() = %v, want 49", v.Length2())
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 4, -7}
	if got, want := a.Min(b), (Vec3{1, 4, -7}); got != want {
		t.Errorf("Vec3.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, -2}); got != want {
		t.Errorf("Vec3.Max() = %v, want %v", got, want)
	}
}

func TestVec3IsFinite(t *testing.T) {
	var zero float32
	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", Vec3{1, 2, 3}, true},
		{"nan", Vec3{zero / zero, 0, 0}, false},
		{"inf", Vec3{0, 1 / zero, 0}, false},
		{"neg inf", Vec3{0, 0, -1 / zero}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestBoxDistance2(t *testing.T) {
	b := Box{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}

	tests := []struct {
		name string
		p    Vec3
		want float32
	}{
		{"inside", Vec3{0, 0, 0}, 0},
		{"on face", Vec3{1, 0, 0}, 0},
		{"outside x", Vec3{3, 0, 0}, 4},
		{"outside corner", Vec3{2, 2, 2}, 3},
		{"outside edge", Vec3{-2, 0, 3}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Distance2(tt.p); got != tt.want {
				t.Errorf("Distance2(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestBoxExtendUnion(t *testing.T) {
	b := EmptyBox().Extend(Vec3{1, 2, 3}).Extend(Vec3{-1, 0, 5})
	want := Box{Min: Vec3{-1, 0, 3}, Max: Vec3{1, 2, 5}}
	if b != want {
		t.Errorf("Extend() = %v, want %v", b, want)
	}

	u := b.Union(Box{Min: Vec3{0, -4, 0}, Max: Vec3{0, 0, 0}})
	if !u.Encloses(b) {
		t.Errorf("Union() %v does not enclose %v", u, b)
	}
	if u.Min.Y != -4 || u.Min.Z != 0 {
		t.Errorf("Union() = %v, unexpected min", u)
	}
	if axis := u.LongestAxis(); axis != 1 {
		t.Errorf("LongestAxis() = %d, want 1", axis)
	}
}
