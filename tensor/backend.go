// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/simpleconv/simpleconv/internal/tensor"

// Backend is the set of bulk operations a compute device provides.
//
// Implementations:
//   - backend/cpu: pure Go with gonum BLAS
//   - backend/webgpu: WGSL compute shaders, float32 only
type Backend = tensor.Backend
