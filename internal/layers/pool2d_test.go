package layers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

func TestPool2D_SingleWindow(t *testing.T) {
	// Per channel [[1,2],[3,4]] -> 4.
	x := mustTensor(t, []float32{1, 2, 3, 4, 8, 7, 6, 5}, tensor.Shape{1, 2, 2, 2})

	for _, dev := range float32Devices(t) {
		t.Run(dev.String(), func(t *testing.T) {
			out, err := Pool2D(x, dev)
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{1, 2, 1, 1}, out.Shape())
			assert.Equal(t, []float32{4, 8}, out.Data())
		})
	}
}

func TestPool2D_BlockMaxima(t *testing.T) {
	// 4x4 ascending:
	//  0  1 |  2  3
	//  4  5 |  6  7
	//  -----+------
	//  8  9 | 10 11
	// 12 13 | 14 15
	x := tensor.Arange[float64](tensor.Shape{1, 1, 4, 4}, 0)

	out, err := Pool2D(x, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, out.Shape())
	assert.Equal(t, []float64{5, 7, 13, 15}, out.Data())

	ref, err := Pool2DScalar(x, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, out.Data(), ref.Data())
}

func TestPool2D_MatchesScalar(t *testing.T) {
	x := tensor.Randn[float32](tensor.Shape{3, 4, 8, 8}, newRNG())

	ref, err := Pool2DScalar(x, tensor.CPU)
	require.NoError(t, err)

	for _, dev := range float32Devices(t) {
		t.Run(dev.String(), func(t *testing.T) {
			out, err := Pool2D(x, dev)
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{3, 4, 4, 4}, out.Shape())

			mse, err := MeanSquaredError(out, ref)
			require.NoError(t, err)
			assert.Equal(t, 0.0, mse, "max selects existing values exactly")
		})
	}
}

func TestPool2D_ShapeErrors(t *testing.T) {
	tests := []struct {
		name  string
		shape tensor.Shape
	}{
		{"odd size", tensor.Shape{1, 1, 5, 5}},
		{"wrong rank", tensor.Shape{1, 4, 4}},
		{"non-square", tensor.Shape{1, 1, 4, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tensor.Zeros[float32](tt.shape)

			out, err := Pool2D(x, tensor.CPU)
			assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
			assert.Nil(t, out)

			out, err = Pool2DScalar(x, tensor.CPU)
			assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
			assert.Nil(t, out)
		})
	}
}
