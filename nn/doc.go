// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides stateless neural-network layer primitives.
//
// # Overview
//
// Each layer is a pure function from tensors to a freshly allocated tensor,
// run on a selected device:
//   - Conv2D: "valid" stride-1 convolution via patch extraction and a
//     batched matrix product
//   - Pool2D: 2×2 max pooling, stride 2
//   - ReLU: element-wise max(x, 0)
//   - Flatten: [N, C, S, S] -> [N, C*S*S]
//   - FullyConnected: x·wᵀ + b
//
// Every layer has a Scalar counterpart that evaluates the definition with
// nested loops. MeanSquaredError and Compare measure their agreement.
//
// # Basic Usage
//
//	import (
//	    "github.com/simpleconv/simpleconv/nn"
//	    "github.com/simpleconv/simpleconv/tensor"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//	    x := tensor.Randn[float32](tensor.Shape{2, 3, 5, 5}, rng)
//	    w := tensor.Randn[float32](tensor.Shape{4, 3, 2, 2}, rng)
//	    b := tensor.Zeros[float32](tensor.Shape{4})
//
//	    out, err := nn.Conv2D(x, w, b, tensor.CPU) // [2, 4, 4, 4]
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Errors
//
// Rank and dimension violations are reported before any work starts, as
// errors wrapping ErrShapeMismatch. Selecting a device that cannot be
// initialised yields an error wrapping ErrDeviceUnavailable.
package nn
