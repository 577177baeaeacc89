// Package cpu implements the local-compute backend in pure Go, with gonum BLAS
// for matrix products.
package cpu

import (
	"fmt"

	"github.com/simpleconv/simpleconv/internal/parallel"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// CPUBackend implements tensor operations on the host CPU.
type CPUBackend struct {
	device tensor.Device
	pool   parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend that splits batched work across all CPUs.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		pool:   cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// newResult allocates an output tensor on the CPU.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	out, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create result tensor: %w", op, err)
	}
	return out, nil
}

func sameDType(op string, a, b *tensor.RawTensor) error {
	if a.DType() != b.DType() {
		return fmt.Errorf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType())
	}
	return nil
}

func unsupported(op string, dtype tensor.DataType) error {
	return fmt.Errorf("%s: unsupported dtype %s", op, dtype)
}
