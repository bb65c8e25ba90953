// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU, Tanh, Softmax
//   - Containers: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Normal, InitLayers
//
// # Basic Usage
//
//	import (
//	    "github.com/trek-rl/trek/backend/cpu"
//	    "github.com/trek-rl/trek/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    model := nn.NewSequential(
//	        nn.NewLinear(4, 64, backend),
//	        nn.NewReLU[*cpu.Backend](),
//	        nn.NewLinear(64, 2, backend),
//	    )
//
//	    output := model.Forward(input)
//	}
//
// # Parameter Synchronization
//
// StateDict/LoadStateDict copy weights between models with identical
// structure, the mechanism asynchronous training uses to pull global
// weights into workers.
package nn
