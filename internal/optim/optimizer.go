// Package optim implements gradient-based optimizers used to update
// model parameters from gradients produced by autodiff.
package optim

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Optimizer updates parameters from a gradient map keyed by the
// parameter's raw tensor, as produced by autodiff.Backward.
type Optimizer[B tensor.Backend] interface {
	// Step applies one update using the given gradients. Parameters
	// without a gradient entry are left unchanged.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears the gradient slot of every managed parameter.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate, for manual schedules.
	SetLR(lr float64)
}

// gradFor looks up the gradient for a parameter tensor and returns its
// float32 view, or nil when the parameter has no gradient.
func gradFor[B tensor.Backend](
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	param *tensor.Tensor[float32, B],
) []float32 {
	grad, ok := grads[param.Raw()]
	if !ok || grad == nil {
		return nil
	}
	if !grad.Shape().Equal(param.Shape()) {
		panic(fmt.Sprintf("optim: gradient shape %v does not match parameter shape %v",
			grad.Shape(), param.Shape()))
	}
	return grad.AsFloat32()
}
