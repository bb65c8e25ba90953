// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers.
//
// Optimizers update parameters from a gradient map keyed by the
// parameter's raw tensor, as produced by autodiff.Backward:
//
//	grads := autodiff.Backward(loss, backend)
//	opt.Step(grads)
//
// In asynchronous training a single optimizer is constructed over the
// global model's parameters and stepped by every worker through
// a3c.SyncStep.
package optim
