package layers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

func TestConv2D_OutputShape(t *testing.T) {
	tests := []struct {
		name       string
		n, cIn, s  int
		cOut, k    int
		wantSpatial int
	}{
		{"1x1 kernel", 1, 1, 4, 2, 1, 4},
		{"2x2 kernel", 2, 3, 5, 4, 2, 4},
		{"3x3 kernel", 3, 2, 8, 5, 3, 6},
		{"full kernel", 1, 3, 3, 2, 3, 1},
	}

	rng := newRNG()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tensor.Randn[float64](tensor.Shape{tt.n, tt.cIn, tt.s, tt.s}, rng)
			w := tensor.Randn[float64](tensor.Shape{tt.cOut, tt.cIn, tt.k, tt.k}, rng)
			b := tensor.Randn[float64](tensor.Shape{tt.cOut}, rng)

			out, err := Conv2D(x, w, b, tensor.CPU)
			require.NoError(t, err)
			assert.Equal(t, tensor.Shape{tt.n, tt.cOut, tt.wantSpatial, tt.wantSpatial}, out.Shape())
		})
	}
}

// TestConv2D_MatchesDefinition checks every output element against the
// convolution sum written out directly.
func TestConv2D_MatchesDefinition(t *testing.T) {
	rng := newRNG()
	x := tensor.Randn[float64](tensor.Shape{2, 3, 5, 5}, rng)
	w := tensor.Randn[float64](tensor.Shape{4, 3, 2, 2}, rng)
	b := tensor.Randn[float64](tensor.Shape{4}, rng)

	out, err := Conv2D(x, w, b, tensor.CPU)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 4, 4, 4}, out.Shape())

	for n := 0; n < 2; n++ {
		for co := 0; co < 4; co++ {
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					want := b.At(co)
					for ci := 0; ci < 3; ci++ {
						for kh := 0; kh < 2; kh++ {
							for kw := 0; kw < 2; kw++ {
								want += x.At(n, ci, i+kh, j+kw) * w.At(co, ci, kh, kw)
							}
						}
					}
					assert.InDelta(t, want, out.At(n, co, i, j), 1e-5, "out[%d,%d,%d,%d]", n, co, i, j)
				}
			}
		}
	}

	ref, err := Conv2DScalar(x, w, b, tensor.CPU)
	require.NoError(t, err)
	mse, err := MeanSquaredError(out, ref)
	require.NoError(t, err)
	assert.Less(t, mse, 1e-10)
}

func TestConv2D_Devices(t *testing.T) {
	rng := newRNG()
	x := tensor.Randn[float32](tensor.Shape{2, 3, 7, 7}, rng)
	w := tensor.Randn[float32](tensor.Shape{4, 3, 3, 3}, rng)
	b := tensor.Randn[float32](tensor.Shape{4}, rng)

	ref, err := Conv2DScalar(x, w, b, tensor.CPU)
	require.NoError(t, err)

	for _, dev := range float32Devices(t) {
		t.Run(dev.String(), func(t *testing.T) {
			out, err := Conv2D(x, w, b, dev)
			require.NoError(t, err)
			assert.Equal(t, dev, out.Device())

			mse, err := MeanSquaredError(out, ref)
			require.NoError(t, err)
			assert.Less(t, mse, 1e-8)
		})
	}
}

func TestConv2D_DoesNotMutateInputs(t *testing.T) {
	rng := newRNG()
	x := tensor.Randn[float64](tensor.Shape{1, 2, 4, 4}, rng)
	w := tensor.Randn[float64](tensor.Shape{3, 2, 2, 2}, rng)
	b := tensor.Randn[float64](tensor.Shape{3}, rng)
	xBefore, wBefore, bBefore := x.Clone(), w.Clone(), b.Clone()

	_, err := Conv2D(x, w, b, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, xBefore.Data(), x.Data())
	assert.Equal(t, wBefore.Data(), w.Data())
	assert.Equal(t, bBefore.Data(), b.Data())
}

func TestConv2D_ShapeErrors(t *testing.T) {
	good := func() (x, w, b *tensor.Tensor[float32]) {
		return tensor.Zeros[float32](tensor.Shape{1, 3, 5, 5}),
			tensor.Zeros[float32](tensor.Shape{4, 3, 2, 2}),
			tensor.Zeros[float32](tensor.Shape{4})
	}

	tests := []struct {
		name   string
		mutate func(x, w, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32])
	}{
		{"channel mismatch", func(x, _, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return x, tensor.Zeros[float32](tensor.Shape{4, 2, 2, 2}), b
		}},
		{"bias length", func(x, w, _ *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return x, w, tensor.Zeros[float32](tensor.Shape{3})
		}},
		{"input rank", func(_, w, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return tensor.Zeros[float32](tensor.Shape{3, 5, 5}), w, b
		}},
		{"weight rank", func(x, _, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return x, tensor.Zeros[float32](tensor.Shape{4, 12}), b
		}},
		{"bias rank", func(x, w, _ *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return x, w, tensor.Zeros[float32](tensor.Shape{1, 4})
		}},
		{"non-square input", func(_, w, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return tensor.Zeros[float32](tensor.Shape{1, 3, 5, 6}), w, b
		}},
		{"non-square kernel", func(x, _, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return x, tensor.Zeros[float32](tensor.Shape{4, 3, 2, 3}), b
		}},
		{"kernel too large", func(_, _, b *tensor.Tensor[float32]) (*tensor.Tensor[float32], *tensor.Tensor[float32], *tensor.Tensor[float32]) {
			return tensor.Zeros[float32](tensor.Shape{1, 3, 2, 2}), tensor.Zeros[float32](tensor.Shape{4, 3, 3, 3}), b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, w, b := tt.mutate(good())

			out, err := Conv2D(x, w, b, tensor.CPU)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
			assert.Nil(t, out)

			out, err = Conv2DScalar(x, w, b, tensor.CPU)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShapeMismatch), "got %v", err)
			assert.Nil(t, out)
		})
	}
}
