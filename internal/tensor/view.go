package tensor

import "fmt"

// Matrix is a lightweight column-major view over part of a tensor's buffer.
// Stride is the leading dimension (distance between consecutive columns),
// always equal to Rows for the contiguous layouts produced here.
type Matrix[T Float] struct {
	Rows   int
	Cols   int
	Stride int
	Data   []T
}

// At returns the element at row i, column j.
func (m Matrix[T]) At(i, j int) T {
	return m.Data[j*m.Stride+i]
}

// Set stores v at row i, column j.
func (m Matrix[T]) Set(i, j int, v T) {
	m.Data[j*m.Stride+i] = v
}

// BatchMatrix returns the view over batch element b.
//
// The index is broadcast-aware: a tensor with Batch == 1 yields its single
// matrix for every b, so looped dispatch can index all operands uniformly.
func BatchMatrix[T Float](t *Tensor, b int) Matrix[T] {
	d := t.dim
	if d.Batch != 1 && b >= d.Batch {
		panic(fmt.Sprintf("batch index %d out of range for dim %s", b, d))
	}
	off := 0
	if d.Batch != 1 {
		off = b * d.BatchSize()
	}
	return Matrix[T]{
		Rows:   d.Rows,
		Cols:   d.Cols,
		Stride: d.Rows,
		Data:   asSlice[T](t)[off : off+d.BatchSize()],
	}
}

// ColBatchMatrix returns the whole batch viewed as one wide (Rows,
// Cols*Batch) matrix. Valid because batch elements are contiguous and
// column-major, so concatenation along columns is a reinterpretation.
func ColBatchMatrix[T Float](t *Tensor) Matrix[T] {
	d := t.dim
	return Matrix[T]{
		Rows:   d.Rows,
		Cols:   d.Cols * d.Batch,
		Stride: d.Rows,
		Data:   asSlice[T](t),
	}
}

// asSlice reinterprets the buffer as []T, checking dtype against T.
func asSlice[T Float](t *Tensor) []T {
	switch any(T(0)).(type) {
	case float32:
		return any(t.AsFloat32()).([]T)
	case float64:
		return any(t.AsFloat64()).([]T)
	default:
		panic("unsupported element type")
	}
}
