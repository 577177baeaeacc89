// Package main provides the simpleconv CLI: it runs each vectorized layer
// against its scalar reference and reports agreement and timing.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/simpleconv/simpleconv/internal/device"
	"github.com/simpleconv/simpleconv/internal/layers"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

const version = "v0.1.0"

// deviceEnv overrides the default of -device.
const deviceEnv = "SIMPLECONV_DEVICE"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "simpleconv %s\n", version)
		return 0
	case "devices":
		return devices(stdout)
	case "compare":
		return compare(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "simpleconv - vectorized vs scalar neural-network layers")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  devices    List compute devices available on this machine")
	fmt.Fprintln(w, "  compare    Compare every layer against its scalar reference")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'simpleconv compare -h' for compare flags.")
}

func devices(stdout io.Writer) int {
	for _, d := range []tensor.Device{tensor.CPU, tensor.WebGPU} {
		desc, err := device.Describe(d)
		if err != nil {
			fmt.Fprintf(stdout, "%-8s unavailable (%v)\n", d, err)
			continue
		}
		fmt.Fprintln(stdout, desc)
	}
	return 0
}

func compare(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseCompareFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	slog.Debug("compare", "device", cfg.device, "dtype", cfg.dtype,
		"input", fmt.Sprintf("[%d,%d,%d,%d]", cfg.batch, cfg.channels, cfg.size, cfg.size),
		"kernel", cfg.kernel, "filters", cfg.filters, "seed", cfg.seed)

	var results []layers.Comparison
	switch cfg.dtype {
	case "float32":
		results, err = runComparisons[float32](cfg)
	case "float64":
		results, err = runComparisons[float64](cfg)
	}
	if err != nil {
		slog.Error("compare failed", "error", err)
		return 1
	}

	failed := false
	for _, r := range results {
		status := "ok"
		if r.MSE > cfg.tolerance {
			status = "MISMATCH"
			failed = true
		}
		fmt.Fprintf(stdout, "%s  %s\n", r, status)
	}
	if failed {
		slog.Error("vectorized and scalar results disagree", "tolerance", cfg.tolerance)
		return 1
	}
	return 0
}
