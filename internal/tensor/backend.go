package tensor

// Backend defines the interface that all compute backends must implement.
// It is deliberately narrow: one scaled general matrix-multiply primitive per
// data type. All batching and broadcasting policy lives above this interface,
// so CPU and GPU execution share a single dispatch algorithm.
//
// Implementations:
//   - internal/backend/cpu: gonum BLAS
//   - internal/backend/webgpu: WGSL compute shader
type Backend interface {
	// Sgemm computes c = alpha*op(a)*op(b) + beta*c for float32 column-major
	// matrices, where op(x) is x or xᵗ according to the transpose flags.
	// op(a) is m×k, op(b) is k×n, c is m×n; lda, ldb, ldc are the leading
	// dimensions of the stored (untransposed) operands.
	//
	// Shapes are a caller contract, not validated here. A failure of the
	// underlying primitive is fatal: implementations panic rather than return
	// a partially-computed result.
	Sgemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int)

	// Dgemm is the float64 variant of Sgemm. Backends without float64
	// support panic.
	Dgemm(transA, transB bool, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int)

	// Metadata.
	Name() string
	Device() Device
}
