// Package nn implements the neural-network building blocks the training
// utilities operate on: the Module interface, trainable Parameters, a Linear
// layer, activations and parameter initialization.
package nn

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Module is the base interface for neural-network components.
//
// Modules compose into networks:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(4, 64, backend),
//	    nn.NewTanh[B](),
//	    nn.NewLinear(64, 5, backend),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the module's output for the given input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters, including those of
	// nested modules. Modules without parameters return an empty slice.
	Parameters() []*Parameter[B]
}

// StateDict collects a module's parameters into a name -> RawTensor map.
// Parameter order determines naming: "0.weight", "1.bias", ... so layers
// reusing the same parameter names do not collide.
func StateDict[B tensor.Backend](m Module[B]) map[string]*tensor.RawTensor {
	dict := make(map[string]*tensor.RawTensor)
	for i, p := range m.Parameters() {
		dict[fmt.Sprintf("%d.%s", i, p.Name())] = p.Tensor().Raw()
	}
	return dict
}

// LoadStateDict copies matching entries of a state dict into a module's
// parameters in place. Missing entries are skipped; shape mismatches panic.
func LoadStateDict[B tensor.Backend](m Module[B], dict map[string]*tensor.RawTensor) {
	for i, p := range m.Parameters() {
		key := fmt.Sprintf("%d.%s", i, p.Name())
		raw, ok := dict[key]
		if !ok {
			continue
		}
		if !raw.Shape().Equal(p.Tensor().Shape()) {
			panic("LoadStateDict: shape mismatch for " + key)
		}
		copy(p.Tensor().Raw().Data(), raw.Data())
	}
}
