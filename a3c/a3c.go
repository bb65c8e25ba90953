// Copyright 2025 The Trek Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package a3c

import (
	"github.com/rs/zerolog"

	"github.com/trek-rl/trek/internal/a3c"
	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/optim"
	"github.com/trek-rl/trek/internal/tensor"
)

// Returns computes discounted returns over a reward sequence using the
// backward recurrence v[i] = r[i] + gamma*v[i+1], seeded with
// bootstrap.
func Returns(rewards []float32, gamma, bootstrap float32) []float32 {
	return a3c.Returns(rewards, gamma, bootstrap)
}

// LossConfig weights the components of the actor-critic loss.
type LossConfig = a3c.LossConfig

// ActorCriticLoss computes the combined policy, value and entropy loss
// from action logits, value estimates, taken actions and discounted
// returns. Run it against an autodiff backend to obtain gradients.
func ActorCriticLoss[B tensor.Backend](
	logits, values *tensor.Tensor[float32, B],
	actions *tensor.Tensor[int32, B],
	returns *tensor.Tensor[float32, B],
	cfg LossConfig,
) *tensor.Tensor[float32, B] {
	return a3c.ActorCriticLoss[B](logits, values, actions, returns, cfg)
}

// SyncStep pushes a worker's gradients onto the shared global model
// and pulls the updated weights back into the local model.
func SyncStep[B tensor.Backend](
	opt optim.Optimizer[B],
	local, global []*nn.Parameter[B],
	grads map[*tensor.RawTensor]*tensor.RawTensor,
) {
	a3c.SyncStep[B](opt, local, global, grads)
}

// Result is the record a worker reports for one finished episode.
type Result = a3c.Result

// ResultSink is a channel-backed queue workers push episode results
// into, with structured logging on every push.
type ResultSink = a3c.ResultSink

// NewResultSink creates a sink buffering up to capacity results.
func NewResultSink(capacity int, log zerolog.Logger) *ResultSink {
	return a3c.NewResultSink(capacity, log)
}

// SPL computes the Success weighted by Path Length metric for one
// episode.
func SPL(success bool, shortest, taken float64) float64 {
	return a3c.SPL(success, shortest, taken)
}

// Checkpoint describes the model a checkpoint filename is generated
// for.
type Checkpoint = a3c.Checkpoint

// CheckpointName generates the deterministic checkpoint filename for a
// model.
func CheckpointName(c Checkpoint) string {
	return a3c.CheckpointName(c)
}
