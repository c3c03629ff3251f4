// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff exposes the differentiable graph nodes built on the
// batched matmul primitives.
//
// Operations record their input and output tensors at construction. Forward
// writes the output in place; Backward accumulates into caller-owned gradient
// tensors, so repeated uses of a tensor in a graph sum their contributions.
//
// Example:
//
//	backend := cpu.New()
//	op := autodiff.NewMatMulOp(w, x, y)
//	op.Forward(backend)
//	op.Backward(backend, dy, []*tensor.Tensor{dw, dx})
package autodiff

import (
	"github.com/xunzhang/dynet/internal/autodiff/ops"
	"github.com/xunzhang/dynet/tensor"
)

// Operation represents a differentiable operation in the computation graph.
type Operation = ops.Operation

// MatMulOp is the batched matrix multiplication node: output = l @ r.
type MatMulOp = ops.MatMulOp

// NewMatMulOp creates a matmul node writing into output.
func NewMatMulOp(l, r, output *tensor.Tensor) *MatMulOp {
	return ops.NewMatMulOp(l, r, output)
}
