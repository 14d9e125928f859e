package sdf

import (
	"github.com/Faultbox/meshsdf/pkg/math"
)

// Parity rays are tilted off the coordinate axes so they rarely graze the
// shared edges of axis-aligned quads.
var parityDirs = [3]math.Vec3{
	math.Vec3{X: 1, Y: 0.0013, Z: 0.0021}.Normalize(),
	math.Vec3{X: 0.0017, Y: 1, Z: 0.0011}.Normalize(),
	math.Vec3{X: 0.0019, Y: 0.0023, Z: 1}.Normalize(),
}

// insideByParity casts three rays from p and reports inside when at least
// two of them cross the surface an odd number of times.
func (ix *Index) insideByParity(p math.Vec3) bool {
	votes := 0
	for _, d := range parityDirs {
		if ix.crossings(p, d)%2 == 1 {
			votes++
		}
	}
	return votes >= 2
}

// crossings counts triangles hit by the ray p + t*d, t > 0.
func (ix *Index) crossings(o, d math.Vec3) int {
	inv := math.Vec3{X: 1 / d.X, Y: 1 / d.Y, Z: 1 / d.Z}
	count := 0

	stack := make([]int32, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &ix.nodes[ni]
		if !rayHitsBox(o, inv, n.box) {
			continue
		}
		if n.leaf() {
			for s := n.left; s < n.left+n.count; s++ {
				a, b, c := ix.Triangle(ix.order[s])
				if rayHitsTriangle(o, d, a, b, c) {
					count++
				}
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return count
}

// rayHitsBox is the slab test for a ray with no zero direction component.
func rayHitsBox(o, inv math.Vec3, box math.Box) bool {
	tmin, tmax := float32(0), float32(3.4e38)
	for axis := 0; axis < 3; axis++ {
		t1 := (box.Min.Axis(axis) - o.Axis(axis)) * inv.Axis(axis)
		t2 := (box.Max.Axis(axis) - o.Axis(axis)) * inv.Axis(axis)
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmax < tmin {
			return false
		}
	}
	return true
}

// rayHitsTriangle is the Moller-Trumbore test restricted to t > 0.
func rayHitsTriangle(o, d, a, b, c math.Vec3) bool {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	pv := d.Cross(e2)
	det := e1.Dot(pv)
	if det == 0 {
		return false
	}
	inv := 1 / det
	tv := o.Sub(a)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return false
	}
	qv := tv.Cross(e1)
	v := d.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	return e2.Dot(qv)*inv > 0
}
