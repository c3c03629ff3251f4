// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu exposes the GPU compute backend.
package webgpu

import (
	internalwebgpu "github.com/xunzhang/dynet/internal/backend/webgpu"
	"github.com/xunzhang/dynet/tensor"
)

// Backend represents the WebGPU backend implementation.
//
// Work is submitted to a single in-order GPU queue; each gemm call blocks
// until its result has been read back. Float32 only.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
// Release must be called when the backend is no longer needed.
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
