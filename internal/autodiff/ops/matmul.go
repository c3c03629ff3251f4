package ops

import (
	"github.com/xunzhang/dynet/internal/matmul"
	"github.com/xunzhang/dynet/internal/tensor"
)

// MatMulOp represents a batched matrix multiplication node: output = l @ r,
// with l optionally broadcast across r's batch dimension.
//
// Backward pass:
//   - d(l@r)/dl = outputGrad @ rᵗ
//   - d(l@r)/dr = lᵗ @ outputGrad
//
// When l is a shared parameter (batch 1), its gradient tensor also has one
// batch slot and the per-batch contributions sum into it.
type MatMulOp struct {
	inputs []*tensor.Tensor // [l, r]
	output *tensor.Tensor   // l @ r
}

// NewMatMulOp creates a new MatMulOp writing into output.
func NewMatMulOp(l, r, output *tensor.Tensor) *MatMulOp {
	return &MatMulOp{
		inputs: []*tensor.Tensor{l, r},
		output: output,
	}
}

// Forward overwrites the output with l @ r.
func (op *MatMulOp) Forward(backend tensor.Backend) {
	matmul.MatrixMultiply(backend, op.inputs[0], op.inputs[1], op.output, 0)
}

// Backward accumulates gradients for l and r into inputGrads.
func (op *MatMulOp) Backward(backend tensor.Backend, outputGrad *tensor.Tensor, inputGrads []*tensor.Tensor) {
	l, r := op.inputs[0], op.inputs[1]

	// grad_l += outputGrad @ rᵗ (batch-summed when grad_l has one slot)
	matmul.MatrixMultiplyTransposeAccumulate(backend, outputGrad, r, inputGrads[0])

	// grad_r += lᵗ @ outputGrad
	matmul.MatrixTransposeMultiplyAccumulate(backend, l, outputGrad, inputGrads[1])
}

// Inputs returns the input tensors [l, r].
func (op *MatMulOp) Inputs() []*tensor.Tensor {
	return op.inputs
}

// Output returns the output tensor l @ r.
func (op *MatMulOp) Output() *tensor.Tensor {
	return op.output
}

// Compile-time check that MatMulOp implements Operation.
var _ Operation = (*MatMulOp)(nil)
