package nn

import "github.com/trek-rl/trek/internal/tensor"

// Sequential chains modules, feeding each output into the next input.
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a Sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

func (s *Sequential[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	for _, m := range s.modules {
		x = m.Forward(x)
	}
	return x
}

// Parameters returns the parameters of all contained modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Modules returns the contained modules.
func (s *Sequential[B]) Modules() []Module[B] { return s.modules }
