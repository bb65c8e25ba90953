package nn

import (
	"fmt"

	"github.com/trek-rl/trek/internal/tensor"
)

// Linear is a fully connected layer computing y = x @ W + b.
// Weight has shape [inFeatures, outFeatures], bias has shape [outFeatures].
type Linear[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]

	inFeatures  int
	outFeatures int
}

// NewLinear creates a Linear layer with Xavier-initialized weights and a
// zero bias.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	weight := Xavier(inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, backend)
	bias := Zeros(tensor.Shape{outFeatures}, backend)

	return &Linear[B]{
		weight:      NewParameter("weight", weight),
		bias:        NewParameter("bias", bias),
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
	}
}

// Forward computes x @ W + b. Input shape [batch, inFeatures].
func (l *Linear[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 2 || shape[1] != l.inFeatures {
		panic(fmt.Sprintf("linear: expected input [batch, %d], got %v", l.inFeatures, shape))
	}
	out := x.MatMul(l.weight.Tensor())
	// Reshape the bias to [1, out] so broadcasting over the batch has a
	// recorded op with a well-defined backward.
	b := l.bias.Tensor().Reshape(1, l.outFeatures)
	return out.Add(b)
}

// Parameters returns the weight and bias.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] { return l.bias }

// InFeatures returns the input dimension.
func (l *Linear[B]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the output dimension.
func (l *Linear[B]) OutFeatures() int { return l.outFeatures }
