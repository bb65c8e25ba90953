// Package ops defines the differentiable operations recorded on the
// gradient tape. Each operation stores the raw tensors of its forward pass
// and knows how to turn an output gradient into input gradients.
package ops

import "github.com/trek-rl/trek/internal/tensor"

// Operation is one recorded forward-pass step.
type Operation interface {
	// Inputs returns the forward-pass input tensors, in order.
	Inputs() []*tensor.RawTensor

	// Output returns the forward-pass output tensor.
	Output() *tensor.RawTensor

	// Backward computes input gradients from the output gradient.
	// The returned slice is parallel to Inputs(); entries may be nil for
	// non-differentiable inputs (e.g. integer index tensors).
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor
}

// zerosLike allocates a zero gradient matching t's shape and dtype.
func zerosLike(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	raw, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(err)
	}
	return raw
}

// unbroadcast reduces grad back to the given target shape by summing over
// broadcast dimensions. Required because binary ops broadcast their inputs:
// the gradient w.r.t. a [1, N] bias of a [B, N] output is the column sum.
func unbroadcast(grad *tensor.RawTensor, target tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	if grad.Shape().Equal(target) {
		return grad
	}

	// Sum away leading dimensions the target does not have.
	for len(grad.Shape()) > len(target) {
		grad = backend.SumDim(grad, 0, false)
	}

	// Sum dimensions where the target was size 1.
	for d := 0; d < len(target); d++ {
		if target[d] == 1 && grad.Shape()[d] != 1 {
			grad = backend.SumDim(grad, d, true)
		}
	}

	if !grad.Shape().Equal(target) {
		grad = backend.Reshape(grad, target)
	}
	return grad
}
