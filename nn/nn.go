// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

// Module is the interface every layer and model implements.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter is a named trainable tensor with an optional gradient.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter wraps a tensor as a named parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Linear is a fully connected layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a Linear layer with Xavier-initialized weights.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// ReLU is the rectified linear unit activation.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] { return nn.NewReLU[B]() }

// Tanh is the hyperbolic tangent activation.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] { return nn.NewTanh[B]() }

// Softmax normalizes a dimension into a probability distribution.
type Softmax[B tensor.Backend] = nn.Softmax[B]

// NewSoftmax creates a Softmax over the given dimension.
func NewSoftmax[B tensor.Backend](dim int) *Softmax[B] { return nn.NewSoftmax[B](dim) }

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// StateDict captures a model's parameters by name.
func StateDict[B tensor.Backend](m Module[B]) map[string]*tensor.RawTensor {
	return nn.StateDict[B](m)
}

// LoadStateDict copies a captured state into a model's parameters.
func LoadStateDict[B tensor.Backend](m Module[B], dict map[string]*tensor.RawTensor) {
	nn.LoadStateDict[B](m, dict)
}

// InitLayers re-initializes layers: weights from N(0, 0.1), biases to
// zero. Containers are walked recursively.
func InitLayers[B tensor.Backend](modules ...Module[B]) {
	nn.InitLayers[B](modules...)
}

// Xavier creates a tensor with Xavier/Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Normal creates a tensor initialized from N(0, std).
func Normal[B tensor.Backend](std float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Normal(std, shape, backend)
}
