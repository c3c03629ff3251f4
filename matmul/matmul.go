// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matmul exposes the batched matrix-multiply entry points consumed by
// the graph-execution layer.
//
// Each entry point decides between one wide-matrix gemm call and a loop of
// per-batch calls, with the same dispatch algorithm on every backend.
// Dimension preconditions are a caller contract; backend primitive failures
// are fatal.
package matmul

import (
	internalmatmul "github.com/xunzhang/dynet/internal/matmul"
	"github.com/xunzhang/dynet/tensor"
)

// MatrixMultiply computes y[b] = alpha*y[b] + l[b']*r[b] for every batch
// index b, broadcasting l when it has a single batch element. alpha 0
// overwrites y, alpha 1 accumulates.
func MatrixMultiply(backend tensor.Backend, l, r, y *tensor.Tensor, alpha float64) {
	internalmatmul.MatrixMultiply(backend, l, r, y, alpha)
}

// MatrixTransposeMultiplyAccumulate computes y[b] += lᵗ[b']*r[b].
func MatrixTransposeMultiplyAccumulate(backend tensor.Backend, l, r, y *tensor.Tensor) {
	internalmatmul.MatrixTransposeMultiplyAccumulate(backend, l, r, y)
}

// MatrixMultiplyTransposeAccumulate computes y[b] += l[b]*rᵗ[b']; with a
// single-slot y it yields the product summed over the batch.
func MatrixMultiplyTransposeAccumulate(backend tensor.Backend, l, r, y *tensor.Tensor) {
	internalmatmul.MatrixMultiplyTransposeAccumulate(backend, l, r, y)
}
