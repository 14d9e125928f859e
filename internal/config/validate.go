package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/meshsdf/internal/logger"
	"github.com/Faultbox/meshsdf/pkg/sdf"
)

// Output formats.
const (
	FormatCSV    = "csv"
	FormatBinary = "bin"
)

// MaxGridResolution caps points.grid_resolution; the grid holds res^3 points.
const MaxGridResolution = 512

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	for i, s := range c.Mesh.Scale {
		if s == 0 {
			err = multierr.Append(err, fmt.Errorf("mesh.scale[%d] must not be zero", i))
		}
	}
	if c.Points.GridResolution < 2 || c.Points.GridResolution > MaxGridResolution {
		err = multierr.Append(err, fmt.Errorf("points.grid_resolution must be between 2 and %d, got %d", MaxGridResolution, c.Points.GridResolution))
	}
	if c.Points.GridPadding < 0 {
		err = multierr.Append(err, fmt.Errorf("points.grid_padding must not be negative, got %v", c.Points.GridPadding))
	}
	if !(c.Query.MaxDist > 0) {
		err = multierr.Append(err, fmt.Errorf("query.max_dist must be positive, got %v", c.Query.MaxDist))
	}
	if _, e := sdf.ParseSignMode(c.Query.SignMode); e != nil {
		err = multierr.Append(err, fmt.Errorf("query.sign_mode: %w", e))
	}
	if c.BVH.MaxLeafSize < 1 || c.BVH.MaxLeafSize > sdf.MaxLeafSizeLimit {
		err = multierr.Append(err, fmt.Errorf("bvh.max_leaf_size must be between 1 and %d, got %d", sdf.MaxLeafSizeLimit, c.BVH.MaxLeafSize))
	}
	if c.Runtime.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("runtime.workers must not be negative, got %d", c.Runtime.Workers))
	}
	if c.Runtime.ChunkSize < 0 {
		err = multierr.Append(err, fmt.Errorf("runtime.chunk_size must not be negative, got %d", c.Runtime.ChunkSize))
	}
	switch c.Output.Format {
	case FormatCSV, FormatBinary:
	default:
		err = multierr.Append(err, fmt.Errorf("output.format must be %q or %q, got %q", FormatCSV, FormatBinary, c.Output.Format))
	}
	if _, e := logger.ParseLevel(c.Logging.Level); e != nil {
		err = multierr.Append(err, fmt.Errorf("logging.level: %w", e))
	}

	return err
}

// SDFOptions converts the query, bvh and runtime sections into options for
// sdf.SignedDistanceField. Call Validate first.
func (c *Config) SDFOptions() (sdf.Options, error) {
	mode, err := sdf.ParseSignMode(c.Query.SignMode)
	if err != nil {
		return sdf.Options{}, err
	}
	return sdf.Options{
		MaxDist:               c.Query.MaxDist,
		IncludeHitPoints:      c.Query.IncludeHitPoints,
		IncludeHitPointsAndID: c.Query.IncludeHitIDs,
		SignMode:              mode,
		MaxLeafSize:           c.BVH.MaxLeafSize,
		ChunkSize:             c.Runtime.ChunkSize,
	}, nil
}
