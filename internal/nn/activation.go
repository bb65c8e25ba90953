package nn

import "github.com/trek-rl/trek/internal/tensor"

// ReLU applies the rectified linear unit elementwise.
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] { return &ReLU[B]{} }

func (r *ReLU[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.ReLU()
}

func (r *ReLU[B]) Parameters() []*Parameter[B] { return nil }

// Tanh applies the hyperbolic tangent elementwise.
type Tanh[B tensor.Backend] struct{}

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] { return &Tanh[B]{} }

func (t *Tanh[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Tanh()
}

func (t *Tanh[B]) Parameters() []*Parameter[B] { return nil }

// Softmax normalizes the last dimension into a probability distribution.
type Softmax[B tensor.Backend] struct {
	dim int
}

// NewSoftmax creates a Softmax over the given dimension.
func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] { return &Softmax[B]{dim: dim} }

func (s *Softmax[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Softmax(s.dim)
}

func (s *Softmax[B]) Parameters() []*Parameter[B] { return nil }
