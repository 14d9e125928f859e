package config

import "flag"

var (
	flagConfig  string
	flagDebug   bool
	flagMesh    string
	flagPoints  string
	flagOut     string
	flagFormat  string
	flagMaxDist float64
	flagWorkers int
	flagSign    string
	flagGrid    int
)

// BindFlags registers the shared sdftool flags on fs. Call it before
// fs.Parse and Load after.
func BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&flagConfig, "config", "", "Path to config file")
	fs.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	fs.StringVar(&flagMesh, "mesh", "", "Mesh file (.obj or .stl)")
	fs.StringVar(&flagPoints, "points", "", "Query points file")
	fs.StringVar(&flagOut, "out", "", "Output file, - for stdout")
	fs.StringVar(&flagFormat, "format", "", "Output format: csv or bin")
	fs.Float64Var(&flagMaxDist, "max-dist", 0, "Maximum search distance")
	fs.IntVar(&flagWorkers, "workers", 0, "Evaluation workers (0 = config value)")
	fs.StringVar(&flagSign, "sign", "", "Sign mode: pseudo-normal, face-normal or ray-parity")
	fs.IntVar(&flagGrid, "res", 0, "Grid samples per axis")
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flagDebug {
		cfg.Logging.Level = "debug"
	}
	if flagMesh != "" {
		cfg.Mesh.Path = flagMesh
	}
	if flagPoints != "" {
		cfg.Points.Path = flagPoints
	}
	if flagOut != "" {
		cfg.Output.Path = flagOut
	}
	if flagFormat != "" {
		cfg.Output.Format = flagFormat
	}
	if flagMaxDist > 0 {
		cfg.Query.MaxDist = float32(flagMaxDist)
	}
	if flagWorkers > 0 {
		cfg.Runtime.Workers = flagWorkers
	}
	if flagSign != "" {
		cfg.Query.SignMode = flagSign
	}
	if flagGrid > 0 {
		cfg.Points.GridResolution = flagGrid
	}
}

// resetFlags clears all overrides.
func resetFlags() {
	flagConfig, flagMesh, flagPoints, flagOut, flagFormat, flagSign = "", "", "", "", "", ""
	flagDebug = false
	flagMaxDist = 0
	flagWorkers, flagGrid = 0, 0
}
