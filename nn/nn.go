// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/simpleconv/simpleconv/internal/device"
	"github.com/simpleconv/simpleconv/internal/layers"
	"github.com/simpleconv/simpleconv/tensor"
)

// Errors returned by the layers.
var (
	ErrShapeMismatch     = layers.ErrShapeMismatch
	ErrSizeMismatch      = layers.ErrSizeMismatch
	ErrDeviceUnavailable = device.ErrUnavailable
)

// Comparison reports agreement and timing of a vectorized layer against its
// scalar reference.
type Comparison = layers.Comparison

// Conv2D computes a "valid" stride-1 convolution with bias.
// Shapes: x [N, C_in, S, S], w [C_out, C_in, K, K], b [C_out] -> [N, C_out, S-K+1, S-K+1].
func Conv2D[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Conv2D(x, w, b, dev)
}

// Pool2D computes 2×2 max pooling with stride 2. S must be even.
func Pool2D[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Pool2D(x, dev)
}

// ReLU computes max(x, 0) element-wise.
func ReLU[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.ReLU(x, dev)
}

// Flatten collapses [N, C, S, S] into [N, C*S*S].
func Flatten[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Flatten(x, dev)
}

// FullyConnected computes x·wᵀ + b for x [N, C_in], w [C_out, C_in], b [C_out].
func FullyConnected[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.FullyConnected(x, w, b, dev)
}

// Im2Col extracts every K×K window of x into a column of [N, C*K*K, S_out*S_out].
func Im2Col[T tensor.Float](x *tensor.Tensor[T], k int, dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Im2Col(x, k, dev)
}

// WeightRows flattens filters [C_out, C_in, K, K] into [C_out, C_in*K*K].
func WeightRows[T tensor.Float](w *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.WeightRows(w, dev)
}

// MeanSquaredError returns the mean squared element-wise difference of a and b.
func MeanSquaredError[T tensor.Float](a, b *tensor.Tensor[T]) (float64, error) {
	return layers.MeanSquaredError(a, b)
}

// Compare times a vectorized layer and its scalar reference and measures
// their agreement.
func Compare[T tensor.Float](layer string, vectorized, scalar func() (*tensor.Tensor[T], error)) (Comparison, error) {
	return layers.Compare(layer, vectorized, scalar)
}
