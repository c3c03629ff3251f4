// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the CPU compute backend.
package cpu

import (
	internalcpu "github.com/xunzhang/dynet/internal/backend/cpu"
	"github.com/xunzhang/dynet/tensor"
)

// Backend represents the CPU backend implementation.
//
// The gemm primitive delegates to gonum's native Go BLAS; calls are
// synchronous and complete before returning.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	matmul.MatrixMultiply(backend, l, r, y, 0)
func New() *Backend {
	return internalcpu.New()
}
