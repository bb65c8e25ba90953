// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the core tensor types and operations.
//
// # Overview
//
// Tensors are generic over their element type and compute backend:
//
//	import (
//	    "github.com/trek-rl/trek/backend/cpu"
//	    "github.com/trek-rl/trek/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// Operations dispatch to the backend, so the same code runs unchanged
// against the plain CPU backend or the autodiff decorator.
package tensor
