// Package device resolves a tensor.Device selector to the backend that
// executes work for it, and places tensors on a device.
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/simpleconv/simpleconv/internal/backend/cpu"
	"github.com/simpleconv/simpleconv/internal/backend/webgpu"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// ErrUnavailable is returned when a device cannot be initialised on this
// machine.
var ErrUnavailable = errors.New("device unavailable")

var (
	cpuBackend = cpu.New()

	gpuOnce    sync.Once
	gpuBackend *webgpu.Backend
	gpuErr     error
)

// Backend returns the backend executing work for d. The accelerated backend is
// initialised on first use; a failed initialisation is remembered.
func Backend(d tensor.Device) (tensor.Backend, error) {
	switch d {
	case tensor.CPU:
		return cpuBackend, nil
	case tensor.WebGPU:
		gpu, err := accelerated()
		if err != nil {
			return nil, err
		}
		return gpu, nil
	default:
		return nil, fmt.Errorf("%w: unknown device %d", ErrUnavailable, int(d))
	}
}

func accelerated() (*webgpu.Backend, error) {
	gpuOnce.Do(func() {
		slog.Debug("device: initialising WebGPU backend")
		gpuBackend, gpuErr = webgpu.New()
		if gpuErr != nil {
			slog.Debug("device: WebGPU unavailable", "error", gpuErr)
			gpuErr = fmt.Errorf("%w: %s: %w", ErrUnavailable, tensor.WebGPU, gpuErr)
			return
		}
		slog.Info("device: WebGPU ready", "adapter", gpuBackend.AdapterName())
	})
	return gpuBackend, gpuErr
}

// Available reports whether d can execute work on this machine.
func Available(d tensor.Device) bool {
	_, err := Backend(d)
	return err == nil
}

// Describe returns a one-line description of d, naming the adapter for the
// accelerated device.
func Describe(d tensor.Device) (string, error) {
	switch d {
	case tensor.WebGPU:
		gpu, err := accelerated()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", d, gpu.AdapterName()), nil
	default:
		if _, err := Backend(d); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: local compute", d), nil
	}
}

// Place returns x tagged for d. Data stays host-resident; placement confirms
// the device is usable and relabels the tensor. A tensor already on d is
// returned unchanged.
func Place(x *tensor.RawTensor, d tensor.Device) (*tensor.RawTensor, error) {
	if x.Device() == d {
		return x, nil
	}
	be, err := Backend(d)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	if d == tensor.WebGPU && x.DType() != tensor.Float32 {
		return nil, fmt.Errorf("place: %s supports float32 only, got %s", be.Name(), x.DType())
	}
	return x.OnDevice(d), nil
}
