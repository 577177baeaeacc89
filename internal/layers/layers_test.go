package layers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/internal/device"
	"github.com/simpleconv/simpleconv/internal/tensor"
)

// mustTensor builds a CPU tensor or fails the test.
func mustTensor[T tensor.Float](t *testing.T, data []T, shape tensor.Shape) *tensor.Tensor[T] {
	t.Helper()
	x, err := tensor.FromSlice(data, shape)
	require.NoError(t, err)
	return x
}

// float32Devices lists the devices able to run float32 work on this machine.
func float32Devices(t *testing.T) []tensor.Device {
	t.Helper()
	devs := []tensor.Device{tensor.CPU}
	if device.Available(tensor.WebGPU) {
		devs = append(devs, tensor.WebGPU)
	} else {
		t.Log("WebGPU not available, testing CPU only")
	}
	return devs
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
