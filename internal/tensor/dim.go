package tensor

import "fmt"

// Dim describes the shape of a batched matrix: a Rows×Cols matrix replicated
// Batch times along an implicit outer dimension. Batch == 1 marks an operand
// that is shared (broadcast) across the batch dimension of its peers.
type Dim struct {
	Rows  int
	Cols  int
	Batch int
}

// D2 builds an unbatched Rows×Cols descriptor.
func D2(rows, cols int) Dim {
	return Dim{Rows: rows, Cols: cols, Batch: 1}
}

// D3 builds a batched Rows×Cols descriptor.
func D3(rows, cols, batch int) Dim {
	return Dim{Rows: rows, Cols: cols, Batch: batch}
}

// BatchSize returns the number of elements in one batch element.
func (d Dim) BatchSize() int {
	return d.Rows * d.Cols
}

// Size returns the total number of elements across all batch elements.
func (d Dim) Size() int {
	return d.Rows * d.Cols * d.Batch
}

// Validate checks that all extents are positive.
func (d Dim) Validate() error {
	if d.Rows <= 0 || d.Cols <= 0 || d.Batch <= 0 {
		return fmt.Errorf("invalid dim %s: all extents must be > 0", d)
	}
	return nil
}

// Equal checks if two descriptors are identical, batch included.
func (d Dim) Equal(other Dim) bool {
	return d == other
}

// String returns a human-readable form, e.g. "{3,4x2}".
func (d Dim) String() string {
	return fmt.Sprintf("{%d,%dx%d}", d.Rows, d.Cols, d.Batch)
}
