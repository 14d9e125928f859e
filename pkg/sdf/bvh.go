package sdf

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// Leaf size limits for the hierarchy.
const (
	DefaultMaxLeafSize = 4
	MaxLeafSizeLimit   = 16
)

// node is one entry of the flattened hierarchy. Internal nodes reference
// their children by index; leaves reference a run of slots in Index.order.
type node struct {
	box   math.Box
	left  int32 // left child, or first slot for a leaf
	right int32 // right child, unused for a leaf
	count int32 // triangles in a leaf, 0 for internal nodes
}

func (n *node) leaf() bool { return n.count > 0 }

// Stats describes a built index.
type Stats struct {
	Vertices            int
	Triangles           int
	Nodes               int
	Leaves              int
	MaxDepth            int
	DegenerateTriangles int
	OpenEdges           int
}

// Index is an immutable bounding-volume hierarchy over a triangle mesh.
// It is safe for concurrent queries.
type Index struct {
	vertices []math.Vec3
	tris     [][3]int32
	nodes    []node
	order    []int32

	normals  pseudoNormals
	signMode SignMode
	stats    Stats
	logger   *zap.Logger
}

// BuildOption customises Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	maxLeafSize int
	signMode    SignMode
	logger      *zap.Logger
}

// WithMaxLeafSize sets the largest triangle count stored in one leaf.
// Values are clamped to [1, MaxLeafSizeLimit].
func WithMaxLeafSize(n int) BuildOption {
	return func(o *buildOptions) {
		o.maxLeafSize = min(max(n, 1), MaxLeafSizeLimit)
	}
}

// WithSignMode selects how inside/outside is decided.
func WithSignMode(mode SignMode) BuildOption {
	return func(o *buildOptions) { o.signMode = mode }
}

// WithLogger overrides the runtime logger for this index.
func WithLogger(logger *zap.Logger) BuildOption {
	return func(o *buildOptions) { o.logger = logger }
}

// triRef carries per-triangle build data while partitioning.
type triRef struct {
	id       int32
	box      math.Box
	centroid math.Vec3
}

type builder struct {
	refs     []triRef
	nodes    []node
	maxLeaf  int
	leaves   int
	maxDepth int
}

// Build validates the mesh and constructs its hierarchy. The vertex and
// index slices are copied.
func Build(vertices []math.Vec3, indices []int32, opts ...BuildOption) (*Index, error) {
	o := buildOptions{maxLeafSize: DefaultMaxLeafSize, signMode: SignPseudoNormal}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = runtimeLogger()
	}
	if err := o.signMode.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	tris, err := validateMesh(vertices, indices)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		vertices: slices.Clone(vertices),
		tris:     tris,
		signMode: o.signMode,
		logger:   o.logger,
	}

	b := &builder{
		refs:    make([]triRef, len(tris)),
		nodes:   make([]node, 0, 2*len(tris)/o.maxLeafSize+1),
		maxLeaf: o.maxLeafSize,
	}
	degenerate := 0
	for i, t := range tris {
		p0, p1, p2 := ix.vertices[t[0]], ix.vertices[t[1]], ix.vertices[t[2]]
		box := math.EmptyBox().Extend(p0).Extend(p1).Extend(p2)
		b.refs[i] = triRef{
			id:       int32(i),
			box:      box,
			centroid: p0.Add(p1).Add(p2).Scale(1.0 / 3.0),
		}
		if p1.Sub(p0).Cross(p2.Sub(p0)).Length2() == 0 {
			degenerate++
		}
	}
	b.build(0, len(b.refs), 0)

	ix.nodes = b.nodes
	ix.order = make([]int32, len(b.refs))
	for i, r := range b.refs {
		ix.order[i] = r.id
	}
	ix.normals = computeNormals(ix.vertices, tris)

	ix.stats = Stats{
		Vertices:            len(ix.vertices),
		Triangles:           len(tris),
		Nodes:               len(ix.nodes),
		Leaves:              b.leaves,
		MaxDepth:            b.maxDepth,
		DegenerateTriangles: degenerate,
		OpenEdges:           ix.normals.openEdges,
	}

	o.logger.Debug("bvh built",
		zap.Int("triangles", ix.stats.Triangles),
		zap.Int("nodes", ix.stats.Nodes),
		zap.Int("leaves", ix.stats.Leaves),
		zap.Int("depth", ix.stats.MaxDepth),
		zap.Duration("elapsed", time.Since(start)),
	)
	if ix.stats.OpenEdges > 0 {
		o.logger.Warn("mesh is not closed, inside/outside sign may be unreliable",
			zap.Int("open_edges", ix.stats.OpenEdges))
	}
	return ix, nil
}

// validateMesh checks the index buffer and groups it into triangles.
func validateMesh(vertices []math.Vec3, indices []int32) ([][3]int32, error) {
	if len(indices)%3 != 0 {
		return nil, meshError(-1, "index count %d is not a multiple of 3", len(indices))
	}
	if len(indices) == 0 {
		return nil, meshError(-1, "mesh has no triangles")
	}
	nv := int32(len(vertices))
	tris := make([][3]int32, len(indices)/3)
	for i, idx := range indices {
		if idx < 0 || idx >= nv {
			return nil, meshError(i, "vertex index %d out of range [0, %d)", idx, nv)
		}
		if !vertices[idx].IsFinite() {
			return nil, meshError(i, "vertex %d has non-finite coordinates", idx)
		}
		tris[i/3][i%3] = idx
	}
	return tris, nil
}

// build partitions refs[lo:hi] and returns the created node index. The
// split axis is the one with the widest centroid spread; ties in the sort
// fall back to triangle id so the result is deterministic.
func (b *builder) build(lo, hi, depth int) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{})
	b.maxDepth = max(b.maxDepth, depth)

	box := math.EmptyBox()
	centroids := math.EmptyBox()
	for i := lo; i < hi; i++ {
		box = box.Union(b.refs[i].box)
		centroids = centroids.Extend(b.refs[i].centroid)
	}

	n := hi - lo
	if n <= b.maxLeaf {
		b.nodes[idx] = node{box: box, left: int32(lo), count: int32(n)}
		b.leaves++
		return idx
	}

	axis := centroids.LongestAxis()
	if centroids.Size().Axis(axis) <= 0 {
		// All centroids coincide.
		axis = box.LongestAxis()
	}
	slices.SortFunc(b.refs[lo:hi], func(x, y triRef) int {
		if c := cmp.Compare(x.centroid.Axis(axis), y.centroid.Axis(axis)); c != 0 {
			return c
		}
		return cmp.Compare(x.id, y.id)
	})

	mid := lo + n/2
	left := b.build(lo, mid, depth+1)
	right := b.build(mid, hi, depth+1)
	b.nodes[idx] = node{box: box, left: left, right: right}
	return idx
}

// Stats returns structural information about the index.
func (ix *Index) Stats() Stats {
	return ix.stats
}

// Bounds returns the box enclosing every triangle.
func (ix *Index) Bounds() math.Box {
	return ix.nodes[0].box
}

// SignMode returns the inside/outside rule the index was built with.
func (ix *Index) SignMode() SignMode {
	return ix.signMode
}

// Triangle returns the three corner positions of triangle id.
func (ix *Index) Triangle(id int32) (math.Vec3, math.Vec3, math.Vec3) {
	t := ix.tris[id]
	return ix.vertices[t[0]], ix.vertices[t[1]], ix.vertices[t[2]]
}
