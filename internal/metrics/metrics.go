// Package metrics provides loss averaging and plotting utilities for
// inspecting training progress.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/trek-rl/trek/internal/nn"
	"github.com/trek-rl/trek/internal/tensor"
)

// EpochLoss runs the model over every batch and returns the total loss
// divided by the number of samples. lossFn must return the summed (not
// averaged) loss for the batch; the first dimension of each batch is
// the sample count.
func EpochLoss[B tensor.Backend](
	model nn.Module[B],
	batches []*tensor.Tensor[float32, B],
	lossFn func(output, input *tensor.Tensor[float32, B]) float64,
) float64 {
	var total float64
	var samples int
	for _, batch := range batches {
		out := model.Forward(batch)
		total += lossFn(out, batch)
		samples += batch.Shape()[0]
	}
	if samples == 0 {
		return 0
	}
	return total / float64(samples)
}

// RunningAverage computes the boxcar moving average of xs with the
// given window, "valid" mode: the result has len(xs)-window+1 entries,
// each the mean of a full window. Returns nil when xs is shorter than
// the window.
func RunningAverage(xs []float64, window int) []float64 {
	if window <= 0 || len(xs) < window {
		return nil
	}
	out := make([]float64, len(xs)-window+1)
	sum := floats.Sum(xs[:window])
	out[0] = sum / float64(window)
	for i := 1; i < len(out); i++ {
		sum += xs[i+window-1] - xs[i-1]
		out[i] = sum / float64(window)
	}
	return out
}
