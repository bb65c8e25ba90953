package a3c

import (
	"fmt"

	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/optim"
	"github.com/trek-rl/trek/internal/tensor"
)

// SyncStep pushes a worker's gradients onto the shared global model and
// pulls the updated weights back. grads is keyed by the local
// parameters' raw tensors, as produced by autodiff.Backward on the
// worker's loss. The optimizer must have been constructed over the
// global parameters.
//
// Local parameters without a gradient keep their global counterpart
// untouched, matching the behavior of skipping nil gradients.
func SyncStep[B tensor.Backend](
	opt optim.Optimizer[B],
	local, global []*nn.Parameter[B],
	grads map[*tensor.RawTensor]*tensor.RawTensor,
) {
	if len(local) != len(global) {
		panic(fmt.Sprintf("a3c: local/global parameter count mismatch: %d vs %d",
			len(local), len(global)))
	}

	// Re-key the gradients from local to global parameters so the
	// shared optimizer state applies to the global model.
	globalGrads := make(map[*tensor.RawTensor]*tensor.RawTensor, len(grads))
	for i, lp := range local {
		gp := global[i]
		if !lp.Tensor().Shape().Equal(gp.Tensor().Shape()) {
			panic(fmt.Sprintf("a3c: parameter %d shape mismatch: local %v vs global %v",
				i, lp.Tensor().Shape(), gp.Tensor().Shape()))
		}
		if grad, ok := grads[lp.Tensor().Raw()]; ok && grad != nil {
			globalGrads[gp.Tensor().Raw()] = grad
		}
	}

	opt.Step(globalGrads)

	// Pull the freshly updated global weights into the worker.
	for i, lp := range local {
		lp.Tensor().CopyFrom(global[i].Tensor())
	}
}
