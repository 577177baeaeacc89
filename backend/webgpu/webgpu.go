// Copyright 2025 The simpleconv Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the accelerated backend, built on WGSL compute
// shaders. Only float32 tensors are supported.
//
// Example:
//
//	backend, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err) // no adapter on this machine
//	}
//	defer backend.Release()
package webgpu

import (
	internalwebgpu "github.com/simpleconv/simpleconv/internal/backend/webgpu"
	"github.com/simpleconv/simpleconv/tensor"
)

// Backend represents the WebGPU backend implementation.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a WebGPU backend. It fails when no adapter or device is
// available.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
