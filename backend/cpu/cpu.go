// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the local-compute backend.
//
// Matrix products go through gonum's BLAS; everything else is plain Go.
// Both float32 and float64 are supported.
package cpu

import (
	internalcpu "github.com/simpleconv/simpleconv/internal/backend/cpu"
	"github.com/simpleconv/simpleconv/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
