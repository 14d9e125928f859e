// sdftool evaluates signed distance fields of triangle meshes from the
// command line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshsdf/internal/config"
	"github.com/Faultbox/meshsdf/internal/logger"
	"github.com/Faultbox/meshsdf/pkg/sdf"
)

// errUsage is returned after usage text has already been printed.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "eval":
		return cmdEval(args, stdout, stderr)
	case "grid":
		return cmdGrid(args, stdout, stderr)
	case "info":
		return cmdInfo(args, stdout)
	case "config":
		return cmdConfig(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `sdftool - signed distance fields for triangle meshes

Usage:
  sdftool <command> [options]

Commands:
  eval    Evaluate the field at points read from a file
  grid    Evaluate the field on a regular grid around the mesh
  info    Show mesh and spatial index statistics
  config  Print the effective configuration, optionally saving it

Common options:
  -config <file>    Config file (default ./sdftool.yaml, then user config dir)
  -mesh <file>      Mesh file (.obj or .stl)
  -out <file>       Output file, - for stdout
  -format csv|bin   Output format
  -max-dist <d>     Maximum search distance
  -sign <mode>      pseudo-normal, face-normal or ray-parity
  -workers <n>      Evaluation workers
  -debug            Enable debug logging

Examples:
  sdftool eval -mesh bunny.obj -points probes.txt -out field.csv
  sdftool grid -mesh part.stl -res 64 -format bin -out part.sdf
  sdftool info -mesh bunny.obj
  sdftool config -mesh bunny.obj -write sdftool.yaml`)
}

// setup parses args, loads the config and initializes logging and the
// distance field runtime.
func setup(fs *flag.FlagSet, args []string) (*config.Config, error) {
	config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errUsage
		}
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	sdf.Init(sdf.RuntimeConfig{
		Workers: cfg.Runtime.Workers,
		Logger:  logger.Named("sdf"),
	})
	logger.Debug("runtime ready",
		zap.Int("workers", sdf.Workers()),
		zap.String("sign_mode", cfg.Query.SignMode))
	return cfg, nil
}
