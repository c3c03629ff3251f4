// Copyright 2025 the dynet-go authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for batched column-major tensors.
//
// A tensor is a Rows×Cols matrix replicated Batch times along an implicit
// outer dimension, stored contiguously so the batch can be viewed either one
// element at a time or as a single wide matrix.
//
// Example:
//
//	backend := cpu.New()
//	l, _ := tensor.FromFloat32(tensor.D2(2, 3), weights, tensor.CPU)
//	r, _ := tensor.New(tensor.D3(3, 4, 16), tensor.Float32, tensor.CPU)
//	y, _ := tensor.New(tensor.D3(2, 4, 16), tensor.Float32, tensor.CPU)
//	matmul.MatrixMultiply(backend, l, r, y, 0)
package tensor

import (
	"github.com/xunzhang/dynet/internal/tensor"
)

// Type aliases for public API

// Float is a constraint for supported tensor element types.
type Float = tensor.Float

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Dim describes the shape of a batched matrix: (Rows, Cols, Batch).
type Dim = tensor.Dim

// Tensor is a batch of dense column-major matrices in one contiguous buffer.
type Tensor = tensor.Tensor

// Matrix is a lightweight column-major view over part of a tensor's buffer.
type Matrix[T Float] = tensor.Matrix[T]

// D2 builds an unbatched Rows×Cols descriptor.
func D2(rows, cols int) Dim {
	return tensor.D2(rows, cols)
}

// D3 builds a batched Rows×Cols descriptor.
func D3(rows, cols, batch int) Dim {
	return tensor.D3(rows, cols, batch)
}

// New creates a zero-filled tensor with the given shape and type.
func New(dim Dim, dtype DataType, device Device) (*Tensor, error) {
	return tensor.New(dim, dtype, device)
}

// FromFloat32 creates a Float32 tensor initialized with values in
// column-major batch-contiguous order.
func FromFloat32(dim Dim, values []float32, device Device) (*Tensor, error) {
	return tensor.FromFloat32(dim, values, device)
}

// FromFloat64 creates a Float64 tensor initialized with values.
func FromFloat64(dim Dim, values []float64, device Device) (*Tensor, error) {
	return tensor.FromFloat64(dim, values, device)
}

// BatchMatrix returns the broadcast-aware view over batch element b.
func BatchMatrix[T Float](t *Tensor, b int) Matrix[T] {
	return tensor.BatchMatrix[T](t, b)
}

// ColBatchMatrix returns the whole batch viewed as one wide matrix.
func ColBatchMatrix[T Float](t *Tensor) Matrix[T] {
	return tensor.ColBatchMatrix[T](t)
}
