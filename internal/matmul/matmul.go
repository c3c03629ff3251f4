// Package matmul implements batched matrix-multiply dispatch: the decision of
// whether a batch of products collapses into one wide gemm call or runs as a
// loop of per-batch calls, for the forward, left-transpose-accumulate and
// right-transpose-accumulate variants.
//
// The dispatch algorithm is backend-independent: each entry point binds the
// backend's gemm primitive once and runs the same control flow on CPU and
// GPU. Dimension preconditions are a caller contract and are not validated
// here; backend primitive failures are fatal.
package matmul

import (
	"fmt"

	"github.com/xunzhang/dynet/internal/tensor"
)

// gemm is the scaled matrix-multiply primitive bound to a backend and data
// type: c = alpha*op(a)*op(b) + beta*c on column-major matrices.
type gemm[T tensor.Float] func(transA, transB bool, m, n, k int, alpha T, a []T, lda int, b []T, ldb int, beta T, c []T, ldc int)

// MatrixMultiply computes y[b] = alpha*y[b] + l[b']*r[b] for every batch
// index b, where b' = b unless l has a single batch element, in which case l
// is broadcast.
//
// Caller contract: l.Cols == r.Rows, y.Rows == l.Rows, y.Cols == r.Cols,
// r.Batch == y.Batch, and l.Batch is 1 or y.Batch. y is mutated in place; no
// allocation happens here.
func MatrixMultiply(backend tensor.Backend, l, r, y *tensor.Tensor, alpha float64) {
	switch y.DType() {
	case tensor.Float32:
		matrixMultiply(backend.Sgemm, l, r, y, float32(alpha))
	case tensor.Float64:
		matrixMultiply(backend.Dgemm, l, r, y, alpha)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", y.DType()))
	}
}

func matrixMultiply[T tensor.Float](g gemm[T], l, r, y *tensor.Tensor, alpha T) {
	if l.Dim().Batch == 1 && r.Dim().Batch == y.Dim().Batch {
		// If the left side has one batch, multiply by columns:
		// [x, z, b] = [x, y] * [y, z, b] -> [x, z*b] = [x, y] * [y, z*b]
		lm := tensor.BatchMatrix[T](l, 0)
		rm := tensor.ColBatchMatrix[T](r)
		ym := tensor.ColBatchMatrix[T](y)
		g(false, false, ym.Rows, ym.Cols, lm.Cols, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, alpha, ym.Data, ym.Stride)
		return
	}
	// Otherwise, loop over the batches
	for b := 0; b < y.Dim().Batch; b++ {
		lm := tensor.BatchMatrix[T](l, b)
		rm := tensor.BatchMatrix[T](r, b)
		ym := tensor.BatchMatrix[T](y, b)
		g(false, false, ym.Rows, ym.Cols, lm.Cols, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, alpha, ym.Data, ym.Stride)
	}
}

// MatrixTransposeMultiplyAccumulate computes y[b] += lᵗ[b']*r[b], always
// adding into y's prior contents. This is the gradient path where l is the
// original left operand and r an upstream gradient, so l.Cols becomes the
// output row count.
//
// Caller contract: l.Rows == r.Rows, y is (l.Cols × r.Cols), and y.Batch
// covers the looped range when no operand collapses.
func MatrixTransposeMultiplyAccumulate(backend tensor.Backend, l, r, y *tensor.Tensor) {
	switch y.DType() {
	case tensor.Float32:
		matrixTransposeMultiplyAccumulate(backend.Sgemm, l, r, y)
	case tensor.Float64:
		matrixTransposeMultiplyAccumulate(backend.Dgemm, l, r, y)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", y.DType()))
	}
}

func matrixTransposeMultiplyAccumulate[T tensor.Float](g gemm[T], l, r, y *tensor.Tensor) {
	if l.Dim().Batch == 1 && y.Dim().Batch == r.Dim().Batch {
		// Single multiply with the shared l transposed against the wide batch.
		lm := tensor.BatchMatrix[T](l, 0)
		rm := tensor.ColBatchMatrix[T](r)
		ym := tensor.ColBatchMatrix[T](y)
		g(true, false, ym.Rows, ym.Cols, lm.Rows, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, 1, ym.Data, ym.Stride)
		return
	}
	// Operands with a single batch element are implicitly reused at every b.
	maxB := max(l.Dim().Batch, r.Dim().Batch)
	for b := 0; b < maxB; b++ {
		lm := tensor.BatchMatrix[T](l, b)
		rm := tensor.BatchMatrix[T](r, b)
		ym := tensor.BatchMatrix[T](y, b)
		g(true, false, ym.Rows, ym.Cols, lm.Rows, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, 1, ym.Data, ym.Stride)
	}
}

// MatrixMultiplyTransposeAccumulate computes y[b] += l[b]*rᵗ[b'], always
// adding into y's prior contents. This is the gradient path where l is an
// upstream gradient and r the original right operand; with y.Batch == 1 it
// yields the gradient summed over the batch, as needed for parameters shared
// across a minibatch.
//
// Caller contract: l.Cols == r.Cols, y is (l.Rows × r.Rows), and y.Batch is 1
// (batch-summed) or max(l.Batch, r.Batch).
func MatrixMultiplyTransposeAccumulate(backend tensor.Backend, l, r, y *tensor.Tensor) {
	switch y.DType() {
	case tensor.Float32:
		matrixMultiplyTransposeAccumulate(backend.Sgemm, l, r, y)
	case tensor.Float64:
		matrixMultiplyTransposeAccumulate(backend.Dgemm, l, r, y)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", y.DType()))
	}
}

func matrixMultiplyTransposeAccumulate[T tensor.Float](g gemm[T], l, r, y *tensor.Tensor) {
	if y.Dim().Batch == 1 && l.Dim().Batch == r.Dim().Batch {
		// The contraction dimension spans cols*batch of the wide views, so a
		// single multiply sums the per-batch products into the one y slot.
		lm := tensor.ColBatchMatrix[T](l)
		rm := tensor.ColBatchMatrix[T](r)
		ym := tensor.BatchMatrix[T](y, 0)
		g(false, true, ym.Rows, ym.Cols, lm.Cols, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, 1, ym.Data, ym.Stride)
		return
	}
	maxB := max(l.Dim().Batch, r.Dim().Batch)
	for b := 0; b < maxB; b++ {
		lm := tensor.BatchMatrix[T](l, b)
		rm := tensor.BatchMatrix[T](r, b)
		ym := tensor.BatchMatrix[T](y, b)
		g(false, true, ym.Rows, ym.Cols, lm.Cols, 1,
			lm.Data, lm.Stride, rm.Data, rm.Stride, 1, ym.Data, ym.Stride)
	}
}
