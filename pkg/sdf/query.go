package sdf

import (
	"container/heap"
	"sync"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// Result is the outcome of a closest-point query.
type Result struct {
	// Point is the closest point on the surface.
	Point math.Vec3
	// Triangle is the id of the triangle holding Point.
	Triangle int32
	// Bary holds the weights of the triangle's corners, so that
	// Point = Bary.X*p0 + Bary.Y*p1 + Bary.Z*p2.
	Bary math.Vec3
	// Distance is negative inside the mesh, positive outside.
	Distance float32
	Inside   bool
}

type hit struct {
	point math.Vec3
	bary  math.Vec3
	d2    float32
	tri   int32
	feat  feature
}

type queueItem struct {
	node int32
	d2   float32
}

// nodeQueue is a min-heap of nodes keyed by squared box distance.
type nodeQueue []queueItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].d2 < q[j].d2 }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

var queuePool = sync.Pool{
	New: func() any {
		q := make(nodeQueue, 0, 64)
		return &q
	},
}

// Query finds the surface point closest to p within maxDist. It reports
// false when every triangle is farther than maxDist, or when maxDist is
// negative or NaN.
func (ix *Index) Query(p math.Vec3, maxDist float32) (Result, bool) {
	if !(maxDist >= 0) {
		return Result{Triangle: -1}, false
	}
	h, ok := ix.nearest(p, maxDist*maxDist)
	if !ok {
		return Result{Triangle: -1}, false
	}

	d := p.Distance(h.point)
	inside := ix.inside(p, h)
	if inside {
		d = -d
	}
	return Result{
		Point:    h.point,
		Triangle: h.tri,
		Bary:     h.bary,
		Distance: d,
		Inside:   inside,
	}, true
}

// nearest visits nodes closest-box-first and prunes any subtree whose box
// is farther than the best candidate. On equal distances the first
// triangle found is kept.
func (ix *Index) nearest(p math.Vec3, best2 float32) (hit, bool) {
	var best hit
	found := false

	rootD2 := ix.nodes[0].box.Distance2(p)
	if rootD2 > best2 {
		return best, false
	}

	q := queuePool.Get().(*nodeQueue)
	*q = (*q)[:0]
	defer queuePool.Put(q)
	heap.Push(q, queueItem{node: 0, d2: rootD2})

	for q.Len() > 0 {
		it := heap.Pop(q).(queueItem)
		if it.d2 > best2 || (found && it.d2 >= best2) {
			break
		}

		n := &ix.nodes[it.node]
		if n.leaf() {
			for s := n.left; s < n.left+n.count; s++ {
				id := ix.order[s]
				t := ix.tris[id]
				cp, bary, feat := closestOnTriangle(p, ix.vertices[t[0]], ix.vertices[t[1]], ix.vertices[t[2]])
				d2 := p.Distance2(cp)
				if d2 < best2 || (!found && d2 <= best2) {
					best = hit{point: cp, bary: bary, d2: d2, tri: id, feat: feat}
					best2 = d2
					found = true
				}
			}
			continue
		}

		for _, c := range [2]int32{n.left, n.right} {
			if d2 := ix.nodes[c].box.Distance2(p); d2 <= best2 {
				heap.Push(q, queueItem{node: c, d2: d2})
			}
		}
	}
	return best, found
}
