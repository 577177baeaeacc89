package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/tensor"
)

func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())
	assert.Equal(t, float32(4), x.At(1, 1))

	z := tensor.Zeros[float64](tensor.Shape{3})
	assert.Equal(t, []float64{0, 0, 0}, z.Data())

	dev, err := tensor.ParseDevice("accelerated")
	require.NoError(t, err)
	assert.Equal(t, tensor.WebGPU, dev)
}
