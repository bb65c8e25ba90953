package a3c

import "math"

// SPL computes the Success weighted by Path Length metric for one
// episode: shortest/max(taken, shortest) on success, 0 on failure.
// A non-positive taken path with success counts as a perfect episode.
func SPL(success bool, shortest, taken float64) float64 {
	if !success || shortest <= 0 {
		return 0
	}
	if taken <= 0 {
		return 1
	}
	return shortest / math.Max(taken, shortest)
}
