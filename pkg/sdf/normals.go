package sdf

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// pseudoNormals holds the per-feature normals used for sign decisions.
// Edge and vertex normals follow Baerentzen and Aanaes, "Signed distance
// computation using the angle weighted pseudonormal"; only their direction
// matters, so they are left unnormalised.
type pseudoNormals struct {
	face      []math.Vec3 // per triangle, unit or zero when degenerate
	edge      []math.Vec3 // 3 per triangle: edges 01, 12, 20
	vertex    []math.Vec3 // per vertex
	openEdges int
}

type edgeKey [2]int32

func makeEdgeKey(a, b int32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

func computeNormals(vertices []math.Vec3, tris [][3]int32) pseudoNormals {
	pn := pseudoNormals{
		face:   make([]math.Vec3, len(tris)),
		edge:   make([]math.Vec3, 3*len(tris)),
		vertex: make([]math.Vec3, len(vertices)),
	}

	type edgeAcc struct {
		sum   math.Vec3
		count int
	}
	edges := make(map[edgeKey]*edgeAcc, 3*len(tris)/2)

	for i, t := range tris {
		p0, p1, p2 := vertices[t[0]], vertices[t[1]], vertices[t[2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		pn.face[i] = n

		for e := 0; e < 3; e++ {
			k := makeEdgeKey(t[e], t[(e+1)%3])
			acc, ok := edges[k]
			if !ok {
				acc = &edgeAcc{}
				edges[k] = acc
			}
			acc.sum = acc.sum.Add(n)
			acc.count++
		}

		pn.vertex[t[0]] = pn.vertex[t[0]].Add(n.Scale(cornerAngle(p0, p1, p2)))
		pn.vertex[t[1]] = pn.vertex[t[1]].Add(n.Scale(cornerAngle(p1, p2, p0)))
		pn.vertex[t[2]] = pn.vertex[t[2]].Add(n.Scale(cornerAngle(p2, p0, p1)))
	}

	for i, t := range tris {
		for e := 0; e < 3; e++ {
			pn.edge[3*i+e] = edges[makeEdgeKey(t[e], t[(e+1)%3])].sum
		}
	}
	for _, acc := range edges {
		if acc.count == 1 {
			pn.openEdges++
		}
	}
	return pn
}

// cornerAngle is the interior angle at v between edges to a and b.
func cornerAngle(v, a, b math.Vec3) float32 {
	e1 := a.Sub(v).Normalize()
	e2 := b.Sub(v).Normalize()
	if e1 == (math.Vec3{}) || e2 == (math.Vec3{}) {
		return 0
	}
	c := e1.Dot(e2)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math32.Acos(c)
}

// at returns the normal for the feature of triangle id that a closest
// point landed on.
func (pn *pseudoNormals) at(tris [][3]int32, id int32, f feature) math.Vec3 {
	t := tris[id]
	switch f {
	case featureVertex0:
		return pn.vertex[t[0]]
	case featureVertex1:
		return pn.vertex[t[1]]
	case featureVertex2:
		return pn.vertex[t[2]]
	case featureEdge01:
		return pn.edge[3*id]
	case featureEdge12:
		return pn.edge[3*id+1]
	case featureEdge20:
		return pn.edge[3*id+2]
	default:
		return pn.face[id]
	}
}
