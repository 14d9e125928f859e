// Package sdf computes signed distance fields over triangle meshes.
//
// A mesh is indexed once with Build into a bounding-volume hierarchy; the
// resulting Index answers closest-point queries for single points (Query)
// or for whole point sets in parallel (Evaluate). Distances are negative
// inside the mesh and positive outside, which requires a closed mesh with
// outward-facing triangle winding.
//
// Init must be called once per process before evaluating:
//
//	sdf.Init(sdf.RuntimeConfig{Workers: 8, Logger: log})
//	out, err := sdf.SignedDistanceField(verts, indices, points, sdf.Options{})
package sdf

import (
	"github.com/Faultbox/meshsdf/pkg/math"
)

// DefaultMaxDist is the search distance used when Options.MaxDist is zero.
const DefaultMaxDist float32 = 1e8

// Options configures SignedDistanceField.
type Options struct {
	// MaxDist bounds the closest-point search. Zero means DefaultMaxDist.
	MaxDist float32
	// IncludeHitPoints requests the closest surface point per query.
	IncludeHitPoints bool
	// IncludeHitPointsAndID requests the closest point together with its
	// triangle id and barycentric weights.
	IncludeHitPointsAndID bool
	SignMode              SignMode
	// MaxLeafSize overrides DefaultMaxLeafSize when positive.
	MaxLeafSize int
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int
}

// SignedDistanceField indexes the mesh and evaluates the signed distance
// at every point. The index is discarded afterwards; callers evaluating
// the same mesh repeatedly should Build once and call Evaluate.
func SignedDistanceField(vertices []math.Vec3, indices []int32, points []math.Vec3, opts Options) (*Output, error) {
	if _, err := currentRuntime(); err != nil {
		return nil, err
	}

	maxDist := opts.MaxDist
	if maxDist == 0 {
		maxDist = DefaultMaxDist
	}
	// Reject bad points before paying for the build.
	if err := validateQuery(points, maxDist); err != nil {
		return nil, err
	}

	buildOpts := []BuildOption{WithSignMode(opts.SignMode)}
	if opts.MaxLeafSize > 0 {
		buildOpts = append(buildOpts, WithMaxLeafSize(opts.MaxLeafSize))
	}
	ix, err := Build(vertices, indices, buildOpts...)
	if err != nil {
		return nil, err
	}

	return ix.Evaluate(points, maxDist, EvalOptions{
		IncludeHitPoints: opts.IncludeHitPoints || opts.IncludeHitPointsAndID,
		IncludeHits:      opts.IncludeHitPointsAndID,
		ChunkSize:        opts.ChunkSize,
	})
}
