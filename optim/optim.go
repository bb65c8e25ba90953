// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/optim"
	"github.com/trek-rl/trek/internal/tensor"
)

// Optimizer is the common interface for all optimizers.
type Optimizer[B tensor.Backend] = optim.Optimizer[B]

// SGD is the stochastic gradient descent optimizer with optional
// momentum and weight decay.
type SGD[B tensor.Backend] = optim.SGD[B]

// SGDConfig contains SGD hyperparameters.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer.
//
// Example:
//
//	model := nn.NewLinear(4, 2, backend)
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LearningRate: 0.01,
//	    Momentum:     0.9,
//	})
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], cfg SGDConfig) *SGD[B] {
	return optim.NewSGD(params, cfg)
}

// Adam is the adaptive moment estimation optimizer.
type Adam[B tensor.Backend] = optim.Adam[B]

// AdamConfig contains Adam hyperparameters.
type AdamConfig = optim.AdamConfig

// NewAdam creates an Adam optimizer with bias correction.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], cfg AdamConfig) *Adam[B] {
	return optim.NewAdam(params, cfg)
}
