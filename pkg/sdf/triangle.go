package sdf

import (
	"github.com/Faultbox/meshsdf/pkg/math"
)

// feature identifies which part of a triangle a closest point lies on.
type feature uint8

const (
	featureFace feature = iota
	featureVertex0
	featureVertex1
	featureVertex2
	featureEdge01
	featureEdge12
	featureEdge20
)

// closestOnTriangle returns the point of triangle (a, b, c) closest to p,
// its barycentric weights (weight of a, b, c) and the feature it lies on.
// Regions are tested in the order of Ericson, Real-Time Collision
// Detection 5.1.5. Zero-length edges are skipped so degenerate triangles
// resolve to a vertex or a surviving edge.
func closestOnTriangle(p, a, b, c math.Vec3) (math.Vec3, math.Vec3, feature) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, math.Vec3{X: 1}, featureVertex0
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, math.Vec3{Y: 1}, featureVertex1
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 && d1-d3 > 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v)), math.Vec3{X: 1 - v, Y: v}, featureEdge01
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, math.Vec3{Z: 1}, featureVertex2
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 && d2-d6 > 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w)), math.Vec3{X: 1 - w, Z: w}, featureEdge20
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 && (d4-d3)+(d5-d6) > 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w)), math.Vec3{Y: 1 - w, Z: w}, featureEdge12
	}

	sum := va + vb + vc
	if sum <= 0 {
		// Rounding on a sliver put p in no region; take the nearest edge.
		return closestOnEdges(p, a, b, c)
	}
	denom := 1 / sum
	v := vb * denom
	w := vc * denom
	if v < 0 || w < 0 || v+w > 1 {
		return closestOnEdges(p, a, b, c)
	}
	return a.Add(ab.Scale(v)).Add(ac.Scale(w)), math.Vec3{X: 1 - v - w, Y: v, Z: w}, featureFace
}

// closestOnSegment returns the point of segment (a, b) closest to p and the
// parameter t along it.
func closestOnSegment(p, a, b math.Vec3) (math.Vec3, float32) {
	ab := b.Sub(a)
	l2 := ab.Length2()
	if l2 == 0 {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t)), t
}

func closestOnEdges(p, a, b, c math.Vec3) (math.Vec3, math.Vec3, feature) {
	best, t := closestOnSegment(p, a, b)
	bary := math.Vec3{X: 1 - t, Y: t}
	feat := featureEdge01
	bestD2 := p.Distance2(best)

	if q, t := closestOnSegment(p, b, c); p.Distance2(q) < bestD2 {
		best, bary, feat = q, math.Vec3{Y: 1 - t, Z: t}, featureEdge12
		bestD2 = p.Distance2(q)
	}
	if q, t := closestOnSegment(p, c, a); p.Distance2(q) < bestD2 {
		best, bary, feat = q, math.Vec3{Z: 1 - t, X: t}, featureEdge20
	}
	return best, bary, feat
}
