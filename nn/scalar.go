// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/simpleconv/simpleconv/internal/layers"
	"github.com/simpleconv/simpleconv/tensor"
)

// Scalar references. Each evaluates its layer's definition with nested loops
// over host memory and places the result on dev.

// Conv2DScalar is the nested-loop reference for Conv2D.
func Conv2DScalar[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Conv2DScalar(x, w, b, dev)
}

// Pool2DScalar is the nested-loop reference for Pool2D.
func Pool2DScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.Pool2DScalar(x, dev)
}

// ReLUScalar is the nested-loop reference for ReLU.
func ReLUScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.ReLUScalar(x, dev)
}

// FlattenScalar is the nested-loop reference for Flatten.
func FlattenScalar[T tensor.Float](x *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.FlattenScalar(x, dev)
}

// FullyConnectedScalar is the nested-loop reference for FullyConnected.
func FullyConnectedScalar[T tensor.Float](x, w, b *tensor.Tensor[T], dev tensor.Device) (*tensor.Tensor[T], error) {
	return layers.FullyConnectedScalar(x, w, b, dev)
}
