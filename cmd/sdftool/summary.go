package main

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Faultbox/meshsdf/pkg/math"
	"github.com/Faultbox/meshsdf/pkg/sdf"
)

// summary describes the distribution of one evaluation's values.
type summary struct {
	Points int
	Inside int
	Misses int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
}

func summarize(out *sdf.Output) summary {
	vals := make([]float64, len(out.SDF))
	inside := 0
	for i, v := range out.SDF {
		vals[i] = float64(v)
		if v < 0 {
			inside++
		}
	}

	s := summary{Points: len(vals), Inside: inside, Misses: out.Misses}
	if len(vals) == 0 {
		return s
	}
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	if len(vals) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
	} else {
		s.Mean = vals[0]
	}

	sort.Float64s(vals)
	s.Median = stat.Quantile(0.5, stat.Empirical, vals, nil)
	return s
}

func printSummary(w io.Writer, s summary) {
	fmt.Fprintf(w, "Points:  %d\n", s.Points)
	fmt.Fprintf(w, "Inside:  %d\n", s.Inside)
	fmt.Fprintf(w, "Misses:  %d\n", s.Misses)
	fmt.Fprintf(w, "Min:     %g\n", s.Min)
	fmt.Fprintf(w, "Max:     %g\n", s.Max)
	fmt.Fprintf(w, "Mean:    %g\n", s.Mean)
	fmt.Fprintf(w, "StdDev:  %g\n", s.StdDev)
	fmt.Fprintf(w, "Median:  %g\n", s.Median)
}

// surfaceArea sums the triangle areas of the index.
func surfaceArea(ix *sdf.Index) float64 {
	n := ix.Stats().Triangles
	areas := make([]float64, n)
	for i := 0; i < n; i++ {
		a, b, c := ix.Triangle(int32(i))
		areas[i] = float64(triangleArea(a, b, c))
	}
	return floats.Sum(areas)
}

func triangleArea(a, b, c math.Vec3) float32 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}
