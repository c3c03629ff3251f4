// Package cpu implements the CPU backend on top of gonum's native Go BLAS.
package cpu

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/gonum"

	"github.com/xunzhang/dynet/internal/tensor"
)

// CPUBackend implements the gemm primitive with gonum's BLAS implementation.
// Calls execute synchronously on the calling goroutine; any parallelism comes
// from inside gonum's gemm, below this interface.
type CPUBackend struct {
	device tensor.Device
	blas   gonum.Implementation
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// transpose converts a transpose flag to the BLAS enum.
func transpose(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

// Sgemm computes c = alpha*op(a)*op(b) + beta*c on column-major float32
// matrices.
//
// gonum's BLAS is row-major; the column-major product C = op(A)·op(B) is the
// row-major product Cᵗ = op(B)ᵗ·op(A)ᵗ, so the call swaps the operands and
// the flag positions while keeping flag values and leading dimensions.
func (cpu *CPUBackend) Sgemm(transA, transB bool, m, n, k int, alpha float32, a []float32, lda int, b []float32, ldb int, beta float32, c []float32, ldc int) {
	cpu.blas.Sgemm(transpose(transB), transpose(transA), n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
}

// Dgemm is the float64 variant of Sgemm.
func (cpu *CPUBackend) Dgemm(transA, transB bool, m, n, k int, alpha float64, a []float64, lda int, b []float64, ldb int, beta float64, c []float64, ldc int) {
	cpu.blas.Dgemm(transpose(transB), transpose(transA), n, m, k, alpha, b, ldb, a, lda, beta, c, ldc)
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)
