package math

import "github.com/chewxy/math32"

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns an inverted box that any Extend call will overwrite.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	return Box{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Size returns the extent along each axis.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Encloses reports whether other lies entirely within b.
func (b Box) Encloses(other Box) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Pad grows the box by d on every side.
func (b Box) Pad(d float32) Box {
	pad := Vec3{d, d, d}
	return Box{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// LongestAxis returns the axis index with the largest extent.
func (b Box) LongestAxis() int {
	s := b.Size()
	axis := 0
	if s.Y > s.Axis(axis) {
		axis = 1
	}
	if s.Z > s.Axis(axis) {
		axis = 2
	}
	return axis
}

// Distance2 returns the squared distance from p to the box; zero inside.
func (b Box) Distance2(p Vec3) float32 {
	var d2 float32
	for axis := 0; axis < 3; axis++ {
		v := p.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		if v < lo {
			d2 += (lo - v) * (lo - v)
		} else if v > hi {
			d2 += (v - hi) * (v - hi)
		}
	}
	return d2
}
