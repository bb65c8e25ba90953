package nn

import (
	"math"
	"math/rand"

	"github.com/trek-rl/trek/internal/tensor"
)

// DefaultInitStd is the weight standard deviation InitLayers applies.
const DefaultInitStd = 0.1

// Normal creates a tensor initialized from N(0, std).
func Normal[B tensor.Backend](std float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.RandnScaled[float32](shape, 0, std, backend)
}

// Constant creates a tensor filled with value.
func Constant[B tensor.Backend](value float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Full[float32](shape, value, backend)
}

// Xavier creates a tensor with Xavier/Glorot uniform initialization:
// U(-sqrt(6/(fanIn+fanOut)), +sqrt(6/(fanIn+fanOut))).
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound) //nolint:gosec // reproducible ML randomness
	}
	return t
}

// Zeros creates a zero tensor, the usual bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// WeightBiased is implemented by layers holding a weight and an optional
// bias, letting initializers reach them without knowing the layer type.
type WeightBiased[B tensor.Backend] interface {
	Weight() *Parameter[B]
	Bias() *Parameter[B]
}

// Container is implemented by modules composed of submodules, such as
// Sequential. InitLayers descends into containers.
type Container[B tensor.Backend] interface {
	Modules() []Module[B]
}

// InitLayers re-initializes every layer that exposes a weight and bias:
// weights from N(0, DefaultInitStd), biases to zero. Containers are
// walked recursively; activations and other parameterless modules are
// left untouched.
func InitLayers[B tensor.Backend](modules ...Module[B]) {
	for _, m := range modules {
		if c, ok := m.(Container[B]); ok {
			InitLayers(c.Modules()...)
			continue
		}
		layer, ok := m.(WeightBiased[B])
		if !ok {
			continue
		}
		if w := layer.Weight(); w != nil {
			reinitNormal(w, DefaultInitStd)
		}
		if b := layer.Bias(); b != nil {
			data := b.Tensor().Data()
			for i := range data {
				data[i] = 0
			}
		}
	}
}

func reinitNormal[B tensor.Backend](p *Parameter[B], std float64) {
	fresh := tensor.RandnScaled[float32](p.Tensor().Shape(), 0, std, p.Tensor().Backend())
	copy(p.Tensor().Data(), fresh.Data())
}
