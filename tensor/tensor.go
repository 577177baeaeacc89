// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed by
// the layers in package nn.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
//	fmt.Println(x.Shape(), x.At(0, 0, 1, 1))
package tensor

import (
	"math/rand"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Float is the constraint for tensor element types: float32 or float64.
type Float = tensor.Float

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents tensor dimensions.
type Shape = tensor.Shape

// Device selects where bulk numeric work runs.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// ParseDevice maps "cpu"/"local" or "webgpu"/"gpu"/"accelerated" onto a Device.
func ParseDevice(name string) (Device, error) {
	return tensor.ParseDevice(name)
}

// RawTensor is the untyped tensor representation used by backends.
type RawTensor = tensor.RawTensor

// Tensor is a typed dense tensor.
type Tensor[T Float] = tensor.Tensor[T]

// FromSlice creates a CPU tensor holding a copy of data.
func FromSlice[T Float](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a zero-filled CPU tensor.
func Zeros[T Float](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// Full creates a CPU tensor with every element set to value.
func Full[T Float](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// Arange creates a CPU tensor holding start, start+1, ... in row-major order.
func Arange[T Float](shape Shape, start T) *Tensor[T] {
	return tensor.Arange(shape, start)
}

// Randn creates a CPU tensor of standard normal samples drawn from rng.
func Randn[T Float](shape Shape, rng *rand.Rand) *Tensor[T] {
	return tensor.Randn[T](shape, rng)
}

// Rand creates a CPU tensor of uniform samples in [lo, hi) drawn from rng.
func Rand[T Float](shape Shape, lo, hi T, rng *rand.Rand) *Tensor[T] {
	return tensor.Rand(shape, lo, hi, rng)
}
