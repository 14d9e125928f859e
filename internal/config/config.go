// Package config handles sdftool configuration loading and management.
package config

// Config holds all sdftool settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Points  PointsConfig  `yaml:"points"`
	Query   QueryConfig   `yaml:"query"`
	BVH     BVHConfig     `yaml:"bvh"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds the input mesh location and placement. The placement
// scales, then rotates (degrees around x, y, z), then translates.
type MeshConfig struct {
	Path      string     `yaml:"path"` // .obj or .stl
	Scale     [3]float32 `yaml:"scale"`
	Rotate    [3]float32 `yaml:"rotate"`
	Translate [3]float32 `yaml:"translate"`
}

// PointsConfig holds query point settings.
type PointsConfig struct {
	Path           string  `yaml:"path"`            // Text file of points, used by eval
	GridResolution int     `yaml:"grid_resolution"` // Samples per axis, used by grid
	GridPadding    float32 `yaml:"grid_padding"`    // Fraction of the mesh extent added on each side
}

// QueryConfig holds distance query settings.
type QueryConfig struct {
	MaxDist          float32 `yaml:"max_dist"`
	SignMode         string  `yaml:"sign_mode"`
	IncludeHitPoints bool    `yaml:"include_hit_points"`
	IncludeHitIDs    bool    `yaml:"include_hit_ids"`
}

// BVHConfig holds spatial index settings.
type BVHConfig struct {
	MaxLeafSize int `yaml:"max_leaf_size"`
}

// RuntimeConfig holds evaluation concurrency settings.
type RuntimeConfig struct {
	Workers   int `yaml:"workers"` // 0 uses every CPU
	ChunkSize int `yaml:"chunk_size"`
}

// OutputConfig holds result file settings.
type OutputConfig struct {
	Path   string `yaml:"path"`   // "-" writes to stdout
	Format string `yaml:"format"` // csv or bin
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Scale: [3]float32{1, 1, 1},
		},
		Points: PointsConfig{
			GridResolution: 32,
			GridPadding:    0.1,
		},
		Query: QueryConfig{
			MaxDist:  1e8,
			SignMode: "pseudo-normal",
		},
		BVH: BVHConfig{
			MaxLeafSize: 4,
		},
		Runtime: RuntimeConfig{
			Workers:   0,
			ChunkSize: 1024,
		},
		Output: OutputConfig{
			Path:   "-",
			Format: "csv",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
