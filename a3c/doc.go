// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package a3c provides the worker-side utilities of asynchronous
// advantage actor-critic training.
//
// # Overview
//
// A3C trains with many worker goroutines, each holding a local copy of
// a shared global model. A worker runs an episode, computes a loss over
// the rollout, and synchronizes:
//
//	rets := a3c.Returns(rewards, gamma, bootstrap)
//	loss := a3c.ActorCriticLoss(logits, values, actions, returns, a3c.LossConfig{})
//	grads := autodiff.Backward(loss, backend)
//	a3c.SyncStep(opt, localParams, globalParams, grads)
//
// Episode outcomes flow through a ResultSink; checkpoint filenames come
// from CheckpointName. The package supplies these pieces and leaves
// orchestration (environments, episode loops, model architectures) to
// the caller; see examples/gridworld for a complete training loop.
package a3c
