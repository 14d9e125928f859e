package sdf

import (
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/meshsdf/pkg/math"
)

// DefaultChunkSize is the number of points handed to a worker at a time.
const DefaultChunkSize = 1024

// EvalOptions selects the optional outputs of Evaluate.
type EvalOptions struct {
	// IncludeHitPoints fills Output.HitPoints.
	IncludeHitPoints bool
	// IncludeHits fills Output.Hits with triangle ids and barycentrics.
	IncludeHits bool
	// ChunkSize overrides DefaultChunkSize when positive.
	ChunkSize int
}

// Hit identifies where on the mesh a query landed.
type Hit struct {
	// Triangle is -1 when no triangle was within range.
	Triangle int32
	Bary     math.Vec3
}

// Output holds per-point results, index-aligned with the query points.
type Output struct {
	// SDF is the signed distance per point. Points with no triangle within
	// the search distance get +maxDist.
	SDF []float32
	// HitPoints is the closest surface point per point, or the query point
	// itself on a miss. Nil unless requested.
	HitPoints []math.Vec3
	// Hits is nil unless requested.
	Hits []Hit
	// Misses counts points that received the +maxDist sentinel.
	Misses int
}

// Evaluate computes the signed distance of every point to the mesh,
// searching at most maxDist away. Points are processed in parallel chunks
// on the worker count set by Init; the call returns once all are done.
func (ix *Index) Evaluate(points []math.Vec3, maxDist float32, opts EvalOptions) (*Output, error) {
	rt, err := currentRuntime()
	if err != nil {
		return nil, err
	}
	if err := validateQuery(points, maxDist); err != nil {
		return nil, err
	}

	out := &Output{SDF: make([]float32, len(points))}
	if opts.IncludeHitPoints {
		out.HitPoints = make([]math.Vec3, len(points))
	}
	if opts.IncludeHits {
		out.Hits = make([]Hit, len(points))
	}

	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	chunks := (len(points) + chunk - 1) / chunk
	misses := make([]int, chunks)

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(rt.workers)
	for c := 0; c < chunks; c++ {
		c := c // per-iteration copy; go.mod targets go1.21 (pre-1.22 loopvar semantics)
		lo := c * chunk
		hi := min(lo+chunk, len(points))
		g.Go(func() error {
			misses[c] = ix.evaluateRange(points, lo, hi, maxDist, out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, m := range misses {
		out.Misses += m
	}

	ix.logger.Debug("sdf evaluated",
		zap.Int("points", len(points)),
		zap.Int("chunks", chunks),
		zap.Int("workers", rt.workers),
		zap.Int("misses", out.Misses),
		zap.Duration("elapsed", time.Since(start)),
	)
	if out.Misses > 0 {
		ix.logger.Info("points beyond search distance received the sentinel",
			zap.Int("misses", out.Misses),
			zap.Float32("max_dist", maxDist))
	}
	return out, nil
}

// evaluateRange fills out[lo:hi] and returns the number of misses.
func (ix *Index) evaluateRange(points []math.Vec3, lo, hi int, maxDist float32, out *Output) int {
	misses := 0
	for i := lo; i < hi; i++ {
		p := points[i]
		res, ok := ix.Query(p, maxDist)
		if !ok {
			misses++
			out.SDF[i] = maxDist
			if out.HitPoints != nil {
				out.HitPoints[i] = p
			}
			if out.Hits != nil {
				out.Hits[i] = Hit{Triangle: -1}
			}
			continue
		}

		out.SDF[i] = res.Distance
		if out.HitPoints != nil {
			out.HitPoints[i] = res.Point
		}
		if out.Hits != nil {
			out.Hits[i] = Hit{Triangle: res.Triangle, Bary: res.Bary}
		}
	}
	return misses
}

func validateQuery(points []math.Vec3, maxDist float32) error {
	if len(points) == 0 {
		return inputError(-1, "no query points")
	}
	if math32.IsNaN(maxDist) || maxDist <= 0 {
		return inputError(-1, "max distance must be positive, got %v", maxDist)
	}
	for i, p := range points {
		if !p.IsFinite() {
			return inputError(i, "non-finite coordinates %v", p)
		}
	}
	return nil
}
