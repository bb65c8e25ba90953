package autodiff

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// BackwardCapable is satisfied by backends that carry a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	Tape() *Tape
}

// Backward seeds the output gradient with ones and walks the backend's tape,
// returning a map from forward-pass RawTensor to its gradient.
//
//	backend.Tape().StartRecording()
//	loss := ... // forward pass
//	grads := autodiff.Backward(loss, backend)
//	g := grads[param.Tensor().Raw()]
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.Tape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget Tape().StartRecording()?)")
	}

	outputGrad, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}
	switch t.DType() {
	case tensor.Float32:
		data := outputGrad.AsFloat32()
		for i := range data {
			data[i] = 1.0
		}
	case tensor.Float64:
		data := outputGrad.AsFloat64()
		for i := range data {
			data[i] = 1.0
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s", t.DType()))
	}

	return tape.Backward(outputGrad, backend)
}
