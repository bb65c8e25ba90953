// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// It wraps any backend with a gradient tape that records operations
// during the forward pass:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//
//	backend.Tape().StartRecording()
//	loss := model.Forward(x) // operations recorded
//	grads := autodiff.Backward(loss, backend)
package autodiff

import (
	"github.com/trek-rl/trek/internal/autodiff"
	"github.com/trek-rl/trek/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.Backend[B]

// Tape records operations for automatic differentiation.
type Tape = autodiff.Tape

// BackwardCapable is satisfied by backends carrying a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// Backward computes gradients of t with respect to every tensor on the
// backend's tape, returning a map keyed by forward-pass RawTensor.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward[T, B](t, backend)
}
