// Package ops implements the differentiable graph nodes built on the batched
// matmul primitives.
//
// Each operation records its input and output tensors at construction. The
// forward pass writes the output in place; the backward pass accumulates into
// caller-owned gradient tensors, so repeated uses of a tensor in a graph sum
// their contributions without extra bookkeeping.
package ops

import "github.com/xunzhang/dynet/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Forward computes the output tensor in place on the given backend.
	Forward(backend tensor.Backend)

	// Backward accumulates input gradients given the output gradient.
	// inputGrads follows the order of Inputs(); every entry is accumulated
	// into, never overwritten.
	Backward(backend tensor.Backend, outputGrad *tensor.Tensor, inputGrads []*tensor.Tensor)

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.Tensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.Tensor
}
