package layers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

func TestIm2Col_LinearIndexing(t *testing.T) {
	// Distinct integers so every window is distinguishable.
	const n, c, s, k = 1, 2, 4, 2
	const sOut = s - k + 1
	x := tensor.Arange[float64](tensor.Shape{n, c, s, s}, 1)

	cols, err := Im2Col(x, k, tensor.CPU)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{n, c * k * k, sOut * sOut}, cols.Shape())

	for i := 0; i < sOut; i++ {
		for j := 0; j < sOut; j++ {
			col := i*sOut + j
			row := 0
			for ch := 0; ch < c; ch++ {
				for kh := 0; kh < k; kh++ {
					for kw := 0; kw < k; kw++ {
						assert.Equal(t, x.At(0, ch, i+kh, j+kw), cols.At(0, row, col),
							"window (%d,%d) row %d", i, j, row)
						row++
					}
				}
			}
		}
	}

	// Positions (1,2) and (2,1) share the product i*j but are different windows.
	assert.NotEqual(t, cols.At(0, 0, 1*sOut+2), cols.At(0, 0, 2*sOut+1))
	// Column 0 is only the top-left window, not every position with i or j zero.
	assert.NotEqual(t, cols.At(0, 0, 0), cols.At(0, 0, 2))
}

func TestIm2Col_Devices(t *testing.T) {
	x := tensor.Randn[float32](tensor.Shape{2, 3, 5, 5}, newRNG())
	want, err := Im2Col(x, 3, tensor.CPU)
	require.NoError(t, err)

	for _, dev := range float32Devices(t) {
		t.Run(dev.String(), func(t *testing.T) {
			got, err := Im2Col(x, 3, dev)
			require.NoError(t, err)
			assert.Equal(t, dev, got.Device())
			assert.InDeltaSlice(t, want.Data(), got.Data(), 1e-6)
		})
	}
}

func TestIm2Col_Errors(t *testing.T) {
	_, err := Im2Col(tensor.Zeros[float32](tensor.Shape{3, 3}), 2, tensor.CPU)
	assert.True(t, errors.Is(err, ErrShapeMismatch))

	_, err = Im2Col(tensor.Zeros[float32](tensor.Shape{1, 1, 3, 3}), 4, tensor.CPU)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}

func TestWeightRows(t *testing.T) {
	w := tensor.Arange[float64](tensor.Shape{4, 3, 2, 2}, 0)

	rows, err := WeightRows(w, tensor.CPU)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{4, 12}, rows.Shape())

	// Row r traverses (C_in, K_row, K_col) of filter r.
	for co := 0; co < 4; co++ {
		idx := 0
		for ci := 0; ci < 3; ci++ {
			for kh := 0; kh < 2; kh++ {
				for kw := 0; kw < 2; kw++ {
					assert.Equal(t, w.At(co, ci, kh, kw), rows.At(co, idx))
					idx++
				}
			}
		}
	}

	_, err = WeightRows(tensor.Zeros[float64](tensor.Shape{4, 12}), tensor.CPU)
	assert.True(t, errors.Is(err, ErrShapeMismatch))
}
