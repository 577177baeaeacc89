package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

type compareConfig struct {
	device    tensor.Device
	dtype     string
	batch     int
	channels  int
	size      int
	kernel    int
	filters   int
	classes   int
	seed      int64
	tolerance float64
	verbose   bool
}

func parseCompareFlags(args []string, stderr io.Writer) (compareConfig, error) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaultDevice := "cpu"
	if env := os.Getenv(deviceEnv); env != "" {
		defaultDevice = env
	}

	var cfg compareConfig
	deviceName := fs.String("device", defaultDevice, "compute device: cpu or webgpu (env "+deviceEnv+")")
	fs.StringVar(&cfg.dtype, "dtype", "float32", "element type: float32 or float64")
	fs.IntVar(&cfg.batch, "n", 4, "batch size")
	fs.IntVar(&cfg.channels, "c", 3, "input channels")
	fs.IntVar(&cfg.size, "s", 28, "input spatial size")
	fs.IntVar(&cfg.kernel, "k", 5, "convolution kernel size")
	fs.IntVar(&cfg.filters, "filters", 8, "convolution output channels")
	fs.IntVar(&cfg.classes, "classes", 10, "fully-connected output features")
	fs.Int64Var(&cfg.seed, "seed", 1, "random seed for operands")
	fs.Float64Var(&cfg.tolerance, "tol", 1e-8, "maximum accepted mean squared error")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose (debug) logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	dev, err := tensor.ParseDevice(*deviceName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return cfg, err
	}
	cfg.device = dev

	if cfg.dtype != "float32" && cfg.dtype != "float64" {
		err := fmt.Errorf("invalid -dtype %q (want float32 or float64)", cfg.dtype)
		fmt.Fprintln(stderr, err)
		return cfg, err
	}
	for name, v := range map[string]int{"n": cfg.batch, "c": cfg.channels, "s": cfg.size, "k": cfg.kernel, "filters": cfg.filters, "classes": cfg.classes} {
		if v <= 0 {
			err := fmt.Errorf("invalid -%s %d (must be > 0)", name, v)
			fmt.Fprintln(stderr, err)
			return cfg, err
		}
	}
	return cfg, nil
}
