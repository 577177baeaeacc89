package nn_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/nn"
	"github.com/simpleconv/simpleconv/tensor"
)

// TestSmallNetwork chains every layer the way a LeNet-style forward pass
// would and checks each stage against its scalar reference.
func TestSmallNetwork(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := tensor.Randn[float64](tensor.Shape{2, 1, 10, 10}, rng)
	cw := tensor.Randn[float64](tensor.Shape{4, 1, 3, 3}, rng)
	cb := tensor.Randn[float64](tensor.Shape{4}, rng)
	fw := tensor.Randn[float64](tensor.Shape{3, 64}, rng)
	fb := tensor.Randn[float64](tensor.Shape{3}, rng)

	conv, err := nn.Conv2D(x, cw, cb, tensor.CPU) // [2,4,8,8]
	require.NoError(t, err)
	act, err := nn.ReLU(conv, tensor.CPU)
	require.NoError(t, err)
	pooled, err := nn.Pool2D(act, tensor.CPU) // [2,4,4,4]
	require.NoError(t, err)
	flat, err := nn.Flatten(pooled, tensor.CPU) // [2,64]
	require.NoError(t, err)
	out, err := nn.FullyConnected(flat, fw, fb, tensor.CPU) // [2,3]
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())

	sConv, err := nn.Conv2DScalar(x, cw, cb, tensor.CPU)
	require.NoError(t, err)
	sAct, err := nn.ReLUScalar(sConv, tensor.CPU)
	require.NoError(t, err)
	sPooled, err := nn.Pool2DScalar(sAct, tensor.CPU)
	require.NoError(t, err)
	sFlat, err := nn.FlattenScalar(sPooled, tensor.CPU)
	require.NoError(t, err)
	sOut, err := nn.FullyConnectedScalar(sFlat, fw, fb, tensor.CPU)
	require.NoError(t, err)

	mse, err := nn.MeanSquaredError(out, sOut)
	require.NoError(t, err)
	assert.Less(t, mse, 1e-10)
}

func TestErrorsAreExported(t *testing.T) {
	_, err := nn.Pool2D(tensor.Zeros[float32](tensor.Shape{1, 1, 3, 3}), tensor.CPU)
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))

	_, err = nn.MeanSquaredError(tensor.Zeros[float32](tensor.Shape{2}), tensor.Zeros[float32](tensor.Shape{3}))
	assert.True(t, errors.Is(err, nn.ErrSizeMismatch))
}
