// Package a3c provides the worker-side utilities of asynchronous
// advantage actor-critic training: discounted returns, the gradient
// synchronization step between a local and a shared global model, the
// actor-critic loss, episode-result collection and checkpoint naming.
package a3c

// Returns computes discounted returns over a reward sequence using the
// backward recurrence v[i] = r[i] + gamma*v[i+1], seeded with bootstrap
// (the value estimate of the state following the last reward, or 0 for
// a terminal episode).
func Returns(rewards []float32, gamma float32, bootstrap float32) []float32 {
	out := make([]float32, len(rewards))
	value := bootstrap
	for i := len(rewards) - 1; i >= 0; i-- {
		value = rewards[i] + gamma*value
		out[i] = value
	}
	return out
}
