// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend for tensor operations.
//
// The backend implements NumPy-compatible broadcasting and parallelizes
// large element-wise and matrix operations across physical cores.
//
//	import (
//	    "github.com/trek-rl/trek/backend/cpu"
//	    "github.com/trek-rl/trek/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
package cpu

import (
	internalcpu "github.com/trek-rl/trek/internal/backend/cpu"
	"github.com/trek-rl/trek/tensor"
)

// Backend is the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
func New() *Backend {
	return internalcpu.New()
}
